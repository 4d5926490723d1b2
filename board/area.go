package board

import (
	"image/color"

	"github.com/lixenwraith/vi-life/constants"
	"github.com/lixenwraith/vi-life/engine"
)

// Area is the board entity: it renders live cells as tiles and, while the
// engine is not paused, advances one generation per step interval of game time
type Area struct {
	engine.BaseEntity

	life         *Life
	tileW, tileH float64
	stepInterval float64 // game seconds per generation
	accumulated  float64
	cellColor    color.Color

	sinks     []SnapshotSink
	published uint64
	hasPub    bool
}

// NewArea creates the board entity at the surface origin. A non-positive
// stepInterval selects constants.DefaultStepInterval
func NewArea(game *engine.GameEngine, life *Life, stepInterval float64, sinks ...SnapshotSink) *Area {
	if stepInterval <= 0 {
		stepInterval = constants.DefaultStepInterval
	}
	tw, th := constants.TileWidth, constants.TileHeight
	if game != nil {
		tw, th = game.TileSize()
	}
	return &Area{
		BaseEntity:   engine.NewBaseEntity(game, 0, 0),
		life:         life,
		tileW:        float64(tw),
		tileH:        float64(th),
		stepInterval: stepInterval,
		cellColor:    engine.ColorCell,
		sinks:        sinks,
	}
}

// Life returns the underlying board
func (a *Area) Life() *Life {
	return a.life
}

// AddSink registers another snapshot consumer
func (a *Area) AddSink(s SnapshotSink) {
	a.sinks = append(a.sinks, s)
}

// Update steps the simulation on game time and publishes changes
func (a *Area) Update() {
	if a.Game != nil && !a.Game.Paused() {
		a.accumulated += a.Game.ClockTick()
		for a.accumulated >= a.stepInterval {
			a.life.NextStep()
			a.accumulated -= a.stepInterval
		}
	}
	a.publish()
}

// Draw fills one tile per live cell
func (a *Area) Draw(s engine.Surface) {
	s.SetFillStyle(a.cellColor)
	for r := 0; r < a.life.rows; r++ {
		row := a.life.cells[r]
		for c, v := range row {
			if v == 1 {
				s.FillRect(a.X+float64(c)*a.tileW, a.Y+float64(r)*a.tileH, a.tileW, a.tileH)
			}
		}
	}
	a.BaseEntity.Draw(s)
}

func (a *Area) publish() {
	if len(a.sinks) == 0 {
		return
	}
	v := a.life.Version()
	if a.hasPub && v == a.published {
		return
	}
	snap := a.life.Snapshot()
	for _, sink := range a.sinks {
		sink.Publish(snap)
	}
	a.published = v
	a.hasPub = true
}

// DrawSnapshot renders a snapshot onto a surface with the given tile size
func DrawSnapshot(s engine.Surface, snap Snapshot, tileW, tileH float64, background, cell color.Color) {
	w, h := float64(snap.Cols)*tileW, float64(snap.Rows)*tileH
	s.ClearRect(0, 0, w, h)
	s.Save()
	if background != nil {
		s.SetFillStyle(background)
		s.FillRect(0, 0, w, h)
	}
	s.SetFillStyle(cell)
	for r := 0; r < snap.Rows; r++ {
		for c := 0; c < snap.Cols; c++ {
			if snap.Alive(r, c) {
				s.FillRect(float64(c)*tileW, float64(r)*tileH, tileW, tileH)
			}
		}
	}
	s.Restore()
}
