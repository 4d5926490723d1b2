package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vi-life/engine"
)

func newSimSurface(t *testing.T, w, h int) (tcell.SimulationScreen, *TerminalSurface) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen, NewTerminalSurface(screen)
}

func cellAt(screen tcell.Screen, x, y int) (rune, tcell.Color, tcell.Color) {
	r, _, style, _ := screen.GetContent(x, y)
	fg, bg, _ := style.Decompose()
	return r, fg, bg
}

func TestTerminalSurfaceSize(t *testing.T) {
	_, s := newSimSurface(t, 20, 10)

	w, h := s.Size()
	if w != 20 || h != 10 {
		t.Fatalf("Expected size 20x10, got %dx%d", w, h)
	}

	s.SetOrigin(2, 1)
	if got, want := s.BoundingRect(), image.Rect(2, 1, 20, 10); got != want {
		t.Errorf("Expected bounding rect %v, got %v", want, got)
	}
}

func TestTerminalSurfaceSyncsOnResize(t *testing.T) {
	screen, s := newSimSurface(t, 20, 10)

	var surface engine.Surface = s
	syncer, ok := surface.(engine.Syncer)
	if !ok {
		t.Fatal("Expected TerminalSurface to repaint on resize")
	}

	screen.SetSize(30, 12)
	syncer.Sync()
	if w, h := s.Size(); w != 30 || h != 12 {
		t.Errorf("Expected 30x12 after resize, got %dx%d", w, h)
	}
}

func TestTerminalSurfaceFillRect(t *testing.T) {
	screen, s := newSimSurface(t, 10, 5)

	fill := RGB{230, 230, 230}
	s.SetFillStyle(fill.Color())
	s.FillRect(2, 1, 2, 1)

	for x := 2; x < 4; x++ {
		if _, _, bg := cellAt(screen, x, 1); bg != fill.Tcell() {
			t.Errorf("Cell (%d,1) background = %v, want fill", x, bg)
		}
	}
	if _, _, bg := cellAt(screen, 4, 1); bg == fill.Tcell() {
		t.Error("Cell (4,1) outside the rectangle was filled")
	}

	s.ClearRect(0, 0, 10, 5)
	if _, _, bg := cellAt(screen, 2, 1); bg != RGBBackground.Tcell() {
		t.Errorf("ClearRect left background %v", bg)
	}
}

func TestTerminalSurfaceFillTextClipped(t *testing.T) {
	screen, s := newSimSurface(t, 6, 2)

	s.FillText("generation", 2, 1)

	want := "gene"
	for i, r := range want {
		if got, _, _ := cellAt(screen, 2+i, 1); got != r {
			t.Errorf("Cell (%d,1) = %q, want %q", 2+i, got, r)
		}
	}
	// Out of range rows are dropped
	s.FillText("x", 0, 5)
}

func TestTerminalSurfaceSaveRestore(t *testing.T) {
	_, s := newSimSurface(t, 4, 4)

	s.SetStrokeStyle(color.RGBA{0, 200, 0, 255})
	s.Save()
	s.SetStrokeStyle(color.RGBA{200, 0, 0, 255})
	s.Restore()

	if s.stroke != (RGB{0, 200, 0}) {
		t.Errorf("Expected stroke restored to green, got %+v", s.stroke)
	}

	// Unbalanced restore must not panic
	s.Restore()
	s.Restore()
}

func TestTerminalSurfaceStrokeArc(t *testing.T) {
	screen, s := newSimSurface(t, 30, 15)

	s.SetStrokeStyle(color.RGBA{0, 200, 0, 255})
	s.BeginPath()
	s.Arc(10, 7, 3, 0, 2*math.Pi, false)
	s.Stroke()
	s.ClosePath()

	// Rightmost point is stretched by the cell aspect
	r, fg, _ := cellAt(screen, 10+3*int(terminalAspect), 7)
	if r != outlineRune {
		t.Errorf("Expected outline at right extreme, got %q", r)
	}
	if fg != (RGB{0, 200, 0}).Tcell() {
		t.Errorf("Expected green outline, got %v", fg)
	}
	if r, _, _ := cellAt(screen, 10, 4); r != outlineRune {
		t.Errorf("Expected outline at top extreme, got %q", r)
	}
	if r, _, _ := cellAt(screen, 10, 7); r == outlineRune {
		t.Error("Center must not be plotted")
	}

	// BeginPath discards previous arcs
	s.ClearRect(0, 0, 30, 15)
	s.BeginPath()
	s.Stroke()
	if r, _, _ := cellAt(screen, 16, 7); r == outlineRune {
		t.Error("Stroke after BeginPath redrew a discarded arc")
	}
}

func TestRGBFromColor(t *testing.T) {
	dst := RGB{0, 0, 0}

	if got := dst.FromColor(color.RGBA{10, 20, 30, 255}); got != (RGB{10, 20, 30}) {
		t.Errorf("Opaque conversion = %+v", got)
	}
	if got := dst.FromColor(nil); got != dst {
		t.Errorf("nil color should keep dst, got %+v", got)
	}
	if got := dst.FromColor(color.NRGBA{200, 200, 200, 0}); got != dst {
		t.Errorf("Transparent color should keep dst, got %+v", got)
	}
	half := dst.FromColor(color.NRGBA{200, 100, 0, 128})
	if half.R < 95 || half.R > 105 {
		t.Errorf("Half alpha red = %d, want ~100", half.R)
	}
}
