package engine

import "math"

// Entity is anything the engine updates and draws once per frame
type Entity interface {
	Update()
	Draw(s Surface)
}

// Removable entities are dropped from the engine after the update pass that reports them removed
type Removable interface {
	Removed() bool
}

// BaseEntity carries position and the engine back-reference. Embed it to get the
// default no-op Update and the debug outline Draw
type BaseEntity struct {
	Game *GameEngine // non-owning

	X, Y   float64
	Radius float64 // outline radius, 0 disables the outline

	RemoveFromWorld bool
}

// NewBaseEntity creates a base entity at (x, y)
func NewBaseEntity(game *GameEngine, x, y float64) BaseEntity {
	return BaseEntity{
		Game: game,
		X:    x,
		Y:    y,
	}
}

// Update does nothing
func (e *BaseEntity) Update() {}

// Draw strokes the entity's bounding circle while the engine is in debug mode
func (e *BaseEntity) Draw(s Surface) {
	if e.Game == nil || !e.Game.Debug() || e.Radius <= 0 {
		return
	}
	s.BeginPath()
	s.SetStrokeStyle(ColorOutline)
	s.Arc(e.X, e.Y, e.Radius, 0, math.Pi*2, false)
	s.Stroke()
	s.ClosePath()
}

// Removed reports the removal flag
func (e *BaseEntity) Removed() bool {
	return e.RemoveFromWorld
}
