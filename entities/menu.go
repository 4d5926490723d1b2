package entities

import (
	"github.com/lixenwraith/vi-life/constants"
	"github.com/lixenwraith/vi-life/engine"
	"github.com/mattn/go-runewidth"
)

// Menu is the start overlay, drawn until the first click leaves menu mode
type Menu struct {
	engine.BaseEntity

	lines []string
}

// NewMenu creates the overlay with the given help lines. Nil selects constants.MenuHelp
func NewMenu(game *engine.GameEngine, help []string) *Menu {
	if help == nil {
		help = constants.MenuHelp
	}
	lines := make([]string, 0, len(help)+3)
	lines = append(lines, constants.MenuTitle, "")
	lines = append(lines, help...)
	lines = append(lines, "", constants.MenuSubtitle)
	return &Menu{
		BaseEntity: engine.NewBaseEntity(game, 0, 0),
		lines:      lines,
	}
}

// Lines returns the overlay text top to bottom
func (m *Menu) Lines() []string {
	return m.lines
}

func (m *Menu) Draw(s engine.Surface) {
	if m.Game == nil || !m.Game.InMenu() {
		return
	}
	w, h := s.Size()

	boxW := 0
	for _, l := range m.lines {
		boxW = max(boxW, runewidth.StringWidth(l))
	}
	boxW += 4
	boxH := len(m.lines) + 2

	left := max((w-boxW)/2, 0)
	top := max((h-boxH)/2, 0)
	s.ClearRect(float64(left), float64(top), float64(boxW), float64(boxH))

	for i, l := range m.lines {
		x := left + (boxW-runewidth.StringWidth(l))/2
		if i == 0 {
			s.SetFillStyle(engine.ColorAccent)
		} else {
			s.SetFillStyle(engine.ColorText)
		}
		s.FillText(l, float64(x), float64(top+1+i))
	}
}
