package entities

import (
	"github.com/lixenwraith/vi-life/constants"
	"github.com/lixenwraith/vi-life/engine"
)

// Marker sits on the centre of the last toggled tile. Its outline shows in debug mode
type Marker struct {
	engine.BaseEntity
}

func NewMarker(game *engine.GameEngine) *Marker {
	return &Marker{BaseEntity: engine.NewBaseEntity(game, 0, 0)}
}

// Update follows the engine's last click
func (m *Marker) Update() {
	if m.Game == nil {
		return
	}
	pos, ok := m.Game.LastClick()
	if !ok {
		m.Radius = 0
		return
	}
	tw, th := m.Game.TileSize()
	m.X = float64(pos.Col*tw) + float64(tw)/2
	m.Y = float64(pos.Row*th) + float64(th)/2
	m.Radius = constants.MarkerRadius
}
