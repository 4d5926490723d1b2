package engine

import (
	"github.com/lixenwraith/vi-life/constants"
)

// Timer converts wall-clock progress into clamped game time.
// Each tick contributes min(realElapsed, maxStep) seconds, so a stalled frame
// (suspended terminal, debugger) cannot push the simulation forward in one jump
type Timer struct {
	clock TimeProvider

	gameTime          float64 // accumulated game seconds, never decreases
	maxStep           float64 // clamp ceiling for a single tick (seconds)
	wallLastTimestamp int64   // last observed wall instant, ms since epoch (0 before first tick)
}

// NewTimer creates a timer reading from clock. A non-positive maxStep selects constants.MaxStep
func NewTimer(clock TimeProvider, maxStep float64) *Timer {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if maxStep <= 0 {
		maxStep = constants.MaxStep
	}
	return &Timer{
		clock:   clock,
		maxStep: maxStep,
	}
}

// Tick observes the wall clock and returns the clamped game delta in seconds.
// The first tick measures from the epoch and therefore always yields maxStep
func (t *Timer) Tick() float64 {
	wallCurrent := t.clock.Now().UnixMilli()
	wallDelta := float64(wallCurrent-t.wallLastTimestamp) / 1000
	t.wallLastTimestamp = wallCurrent

	gameDelta := min(wallDelta, t.maxStep)
	// Wall clock stepped backwards
	if gameDelta < 0 {
		gameDelta = 0
	}
	t.gameTime += gameDelta
	return gameDelta
}

// GameTime returns accumulated game seconds
func (t *Timer) GameTime() float64 {
	return t.gameTime
}

// MaxStep returns the per-tick clamp
func (t *Timer) MaxStep() float64 {
	return t.maxStep
}
