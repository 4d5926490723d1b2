package board

import (
	"reflect"
	"testing"
	"time"

	"github.com/lixenwraith/vi-life/engine"
)

type recordingSink struct {
	snaps []Snapshot
}

func (r *recordingSink) Publish(s Snapshot) { r.snaps = append(r.snaps, s) }

func newAreaEngine(t *testing.T, life *Life) (*engine.GameEngine, *engine.RecordingSurface, *engine.MockTimeProvider) {
	t.Helper()
	clock := engine.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	g := engine.NewGameEngine(engine.Options{
		Board:      life,
		Clock:      clock,
		TileWidth:  2,
		TileHeight: 1,
	})
	surface := engine.NewRecordingSurface(life.Cols()*2, life.Rows()+1)
	if err := g.Init(surface); err != nil {
		t.Fatal(err)
	}
	return g, surface, clock
}

func TestAreaRespectsPause(t *testing.T) {
	life := NewLife(5, 5, Conway, false)
	seed(life, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	g, _, clock := newAreaEngine(t, life)
	g.AddEntity(NewArea(g, life, 0.1))

	for i := 0; i < 5; i++ {
		_ = g.Loop()
		clock.Advance(50 * time.Millisecond)
	}
	if life.Generation() != 0 {
		t.Errorf("Expected no generations while paused, got %d", life.Generation())
	}

	_ = g.Dispatch(engine.ActionTogglePause)
	for i := 0; i < 4; i++ {
		_ = g.Loop()
		clock.Advance(50 * time.Millisecond)
	}
	if life.Generation() != 2 {
		t.Errorf("Expected 2 generations from 0.2s of game time, got %d", life.Generation())
	}
}

func TestAreaStepsAreClamped(t *testing.T) {
	life := NewLife(3, 3, Conway, false)
	g, _, clock := newAreaEngine(t, life)
	g.AddEntity(NewArea(g, life, 0.1))
	_ = g.Dispatch(engine.ActionTogglePause)

	_ = g.Loop()
	clock.Advance(5 * time.Second)
	_ = g.Loop()

	// Two frames contribute at most 2 * MaxStep
	if life.Generation() != 1 {
		t.Errorf("Expected a stalled frame to advance one generation, got %d", life.Generation())
	}
}

func TestAreaDrawsLiveTiles(t *testing.T) {
	life := NewLife(3, 4, Conway, false)
	seed(life, [2]int{0, 0}, [2]int{2, 3})
	g, surface, _ := newAreaEngine(t, life)
	g.AddEntity(NewArea(g, life, 0.1))

	g.Draw()

	var fills [][]float64
	for _, c := range surface.Calls {
		if c.Op == "fillRect" {
			fills = append(fills, c.Args)
			if c.Color != engine.ColorCell {
				t.Errorf("Expected cell color, got %v", c.Color)
			}
		}
	}
	expected := [][]float64{{0, 0, 2, 1}, {6, 2, 2, 1}}
	if !reflect.DeepEqual(fills, expected) {
		t.Errorf("Expected fills %v, got %v", expected, fills)
	}
}

func TestAreaPublishesOnChange(t *testing.T) {
	life := NewLife(3, 3, Conway, false)
	g, _, _ := newAreaEngine(t, life)
	sink := &recordingSink{}
	g.AddEntity(NewArea(g, life, 0.1, sink))

	_ = g.Loop()
	_ = g.Loop()
	if len(sink.snaps) != 1 {
		t.Fatalf("Expected one initial snapshot, got %d", len(sink.snaps))
	}

	_ = g.HandleClick(0, 0) // menu
	_ = g.HandleClick(2, 1)
	_ = g.Loop()

	if len(sink.snaps) != 2 {
		t.Fatalf("Expected snapshot after toggle, got %d", len(sink.snaps))
	}
	if !sink.snaps[1].Alive(1, 1) {
		t.Error("Expected toggled cell in snapshot")
	}
}

func TestDrawSnapshot(t *testing.T) {
	life := NewLife(2, 2, Conway, false)
	life.SetCell(1, 0, 1)
	surface := engine.NewRecordingSurface(20, 20)

	DrawSnapshot(surface, life.Snapshot(), 10, 10, engine.ColorText, engine.ColorCell)

	expected := []string{"clearRect", "save", "fillStyle", "fillRect", "fillStyle", "fillRect", "restore"}
	if ops := surface.Ops(); !reflect.DeepEqual(ops, expected) {
		t.Fatalf("Expected ops %v, got %v", expected, ops)
	}
	if args := surface.Calls[5].Args; !reflect.DeepEqual(args, []float64{0, 10, 10, 10}) {
		t.Errorf("Expected live tile at (0,10), got %v", args)
	}
}
