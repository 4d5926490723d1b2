package engine

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"
)

// SurfaceCall is one recorded surface operation
type SurfaceCall struct {
	Op   string
	Args []float64
	Text string
	// Color is the active stroke or fill style for drawing ops
	Color color.Color
}

// RecordingSurface is a Surface that records every call, for tests
type RecordingSurface struct {
	Width, Height int
	Rect          image.Rectangle

	Calls []SurfaceCall
	Shows int
	Syncs int

	stroke color.Color
	fill   color.Color
	stack  [][2]color.Color
}

// NewRecordingSurface creates a recording surface of the given size at the client origin
func NewRecordingSurface(width, height int) *RecordingSurface {
	return &RecordingSurface{
		Width:  width,
		Height: height,
		Rect:   image.Rect(0, 0, width, height),
		stroke: color.Black,
		fill:   color.Black,
	}
}

func (s *RecordingSurface) record(op string, c color.Color, args ...float64) {
	s.Calls = append(s.Calls, SurfaceCall{Op: op, Args: args, Color: c})
}

func (s *RecordingSurface) Size() (int, int) { return s.Width, s.Height }
func (s *RecordingSurface) BoundingRect() image.Rectangle { return s.Rect }

func (s *RecordingSurface) ClearRect(x, y, w, h float64) { s.record("clearRect", nil, x, y, w, h) }
func (s *RecordingSurface) FillRect(x, y, w, h float64) { s.record("fillRect", s.fill, x, y, w, h) }

func (s *RecordingSurface) FillText(text string, x, y float64) {
	s.Calls = append(s.Calls, SurfaceCall{Op: "fillText", Args: []float64{x, y}, Text: text, Color: s.fill})
}

func (s *RecordingSurface) Save() {
	s.stack = append(s.stack, [2]color.Color{s.stroke, s.fill})
	s.record("save", nil)
}

func (s *RecordingSurface) Restore() {
	if n := len(s.stack); n > 0 {
		s.stroke, s.fill = s.stack[n-1][0], s.stack[n-1][1]
		s.stack = s.stack[:n-1]
	}
	s.record("restore", nil)
}

func (s *RecordingSurface) BeginPath() { s.record("beginPath", nil) }
func (s *RecordingSurface) ClosePath() { s.record("closePath", nil) }
func (s *RecordingSurface) Stroke() { s.record("stroke", s.stroke) }

func (s *RecordingSurface) Arc(x, y, radius, startAngle, endAngle float64, ccw bool) {
	s.record("arc", s.stroke, x, y, radius, startAngle, endAngle)
}

func (s *RecordingSurface) SetStrokeStyle(c color.Color) {
	s.stroke = c
	s.record("strokeStyle", c)
}

func (s *RecordingSurface) SetFillStyle(c color.Color) {
	s.fill = c
	s.record("fillStyle", c)
}

// Show counts presentations
func (s *RecordingSurface) Show() { s.Shows++ }

func (s *RecordingSurface) Sync() { s.Syncs++ }

// Count returns the number of recorded calls with op
func (s *RecordingSurface) Count(op string) int {
	n := 0
	for _, c := range s.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Ops returns the recorded op names in order
func (s *RecordingSurface) Ops() []string {
	ops := make([]string, len(s.Calls))
	for i, c := range s.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Reset drops recorded calls
func (s *RecordingSurface) Reset() {
	s.Calls = s.Calls[:0]
	s.Shows = 0
	s.Syncs = 0
}

// StrokeStyle returns the active stroke style
func (s *RecordingSurface) StrokeStyle() color.Color { return s.stroke }

func (s *RecordingSurface) String() string {
	return fmt.Sprintf("RecordingSurface(%dx%d, %d calls)", s.Width, s.Height, len(s.Calls))
}

// ManualScheduler delivers frames only when Trigger is called, for tests
type ManualScheduler struct {
	ch      chan time.Time
	once    sync.Once
	stopped chan struct{}
}

// NewManualScheduler creates a manual scheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{
		ch:      make(chan time.Time),
		stopped: make(chan struct{}),
	}
}

// Frames returns the frame channel
func (s *ManualScheduler) Frames() <-chan time.Time { return s.ch }

// Trigger blocks until the loop accepts one frame
func (s *ManualScheduler) Trigger() {
	select {
	case s.ch <- time.Now():
	case <-s.stopped:
	}
}

// Stop unblocks pending triggers
func (s *ManualScheduler) Stop() {
	s.once.Do(func() { close(s.stopped) })
}
