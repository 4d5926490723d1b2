package engine

import "time"

// FrameScheduler delivers frame callbacks to the game loop
type FrameScheduler interface {
	Frames() <-chan time.Time
	Stop()
}

// TickerScheduler schedules frames at a fixed interval
type TickerScheduler struct {
	ticker *time.Ticker
}

// NewTickerScheduler creates a scheduler firing every interval
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	return &TickerScheduler{ticker: time.NewTicker(interval)}
}

// Frames returns the frame channel
func (s *TickerScheduler) Frames() <-chan time.Time {
	return s.ticker.C
}

// Stop releases the ticker
func (s *TickerScheduler) Stop() {
	s.ticker.Stop()
}
