package entities

import (
	"fmt"

	"github.com/lixenwraith/vi-life/constants"
	"github.com/lixenwraith/vi-life/engine"
	"github.com/mattn/go-runewidth"
)

// BoardStats is the read side of the board shown in the status bar
type BoardStats interface {
	Generation() int64
	Population() int
}

// StatusBar draws the bottom line: pause icon, debug flag and board counters.
// It is the engine's pause indicator
type StatusBar struct {
	engine.BaseEntity

	stats BoardStats
	icon  engine.Icon
}

// NewStatusBar creates a status bar reading counters from stats, which may be nil
func NewStatusBar(game *engine.GameEngine, stats BoardStats) *StatusBar {
	return &StatusBar{
		BaseEntity: engine.NewBaseEntity(game, 0, 0),
		stats:      stats,
		icon:       engine.IconPause,
	}
}

// SetIcon implements engine.PauseIndicator
func (s *StatusBar) SetIcon(icon engine.Icon) {
	s.icon = icon
}

// Icon returns the icon currently shown
func (s *StatusBar) Icon() engine.Icon {
	return s.icon
}

// IconText returns the label for the current icon
func (s *StatusBar) IconText() string {
	if s.icon == engine.IconPlay {
		return constants.IconTextPlay
	}
	return constants.IconTextPause
}

// Metrics returns the right-aligned counter text
func (s *StatusBar) Metrics() string {
	var gen int64
	var pop int
	if s.stats != nil {
		gen, pop = s.stats.Generation(), s.stats.Population()
	}
	var gt float64
	if s.Game != nil {
		gt = s.Game.GameTime()
	}
	return fmt.Sprintf(" Gen: %d  Pop: %d  T: %.1fs ", gen, pop, gt)
}

// Update tracks the bottom row of the surface
func (s *StatusBar) Update() {
	if s.Game == nil {
		return
	}
	_, h := s.Game.Size()
	s.Y = float64(max(h-constants.StatusBarHeight, 0))
}

func (s *StatusBar) Draw(surface engine.Surface) {
	w, _ := surface.Size()
	s.X = 0
	surface.ClearRect(0, s.Y, float64(w), constants.StatusBarHeight)

	x := 0.0
	if s.icon == engine.IconPlay {
		surface.SetFillStyle(engine.ColorAccent)
	} else {
		surface.SetFillStyle(engine.ColorWarning)
	}
	surface.FillText(s.IconText(), x, s.Y)
	x += float64(runewidth.StringWidth(s.IconText()))

	if s.Game != nil && s.Game.Debug() {
		surface.SetFillStyle(engine.ColorWarning)
		surface.FillText(constants.DebugText, x, s.Y)
		x += float64(len(constants.DebugText))
	}

	// Right side, clamped so it never overwrites the left side
	metrics := s.Metrics()
	start := max(float64(w-len(metrics)), x)
	surface.SetFillStyle(engine.ColorText)
	surface.FillText(metrics, start, s.Y)
}
