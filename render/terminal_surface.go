package render

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	// terminalAspect widens arcs horizontally so circles look round in 1:2 cells
	terminalAspect = 2.0
	outlineRune    = '·'
)

type terminalState struct {
	stroke, fill RGB
}

type arcSegment struct {
	x, y, radius float64
	start, end   float64
	ccw          bool
}

// TerminalSurface implements engine.Surface on a tcell screen, one unit per cell
type TerminalSurface struct {
	screen tcell.Screen
	origin image.Point

	background RGB
	stroke     RGB
	fill       RGB
	stack      []terminalState
	path       []arcSegment
}

// NewTerminalSurface wraps screen. The surface covers the whole screen
func NewTerminalSurface(screen tcell.Screen) *TerminalSurface {
	return &TerminalSurface{
		screen:     screen,
		background: RGBBackground,
		stroke:     RGB{255, 255, 255},
		fill:       RGB{255, 255, 255},
	}
}

// SetOrigin moves the surface within the screen
func (s *TerminalSurface) SetOrigin(x, y int) {
	s.origin = image.Pt(x, y)
}

// Size returns the drawable cell dimensions
func (s *TerminalSurface) Size() (int, int) {
	w, h := s.screen.Size()
	return max(w-s.origin.X, 0), max(h-s.origin.Y, 0)
}

// BoundingRect returns the surface rectangle in screen cells
func (s *TerminalSurface) BoundingRect() image.Rectangle {
	w, h := s.Size()
	return image.Rect(s.origin.X, s.origin.Y, s.origin.X+w, s.origin.Y+h)
}

func (s *TerminalSurface) baseStyle() tcell.Style {
	return tcell.StyleDefault.Background(s.background.Tcell())
}

// cellRect converts a float rectangle to the covered cell range
func (s *TerminalSurface) cellRect(x, y, w, h float64) image.Rectangle {
	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	)
	sw, sh := s.Size()
	return r.Intersect(image.Rect(0, 0, sw, sh))
}

// ClearRect resets cells to the background
func (s *TerminalSurface) ClearRect(x, y, w, h float64) {
	style := s.baseStyle()
	r := s.cellRect(x, y, w, h)
	for cy := r.Min.Y; cy < r.Max.Y; cy++ {
		for cx := r.Min.X; cx < r.Max.X; cx++ {
			s.screen.SetContent(s.origin.X+cx, s.origin.Y+cy, ' ', nil, style)
		}
	}
}

// FillRect paints cell backgrounds with the fill style
func (s *TerminalSurface) FillRect(x, y, w, h float64) {
	style := s.baseStyle().Background(s.fill.Tcell())
	r := s.cellRect(x, y, w, h)
	for cy := r.Min.Y; cy < r.Max.Y; cy++ {
		for cx := r.Min.X; cx < r.Max.X; cx++ {
			s.screen.SetContent(s.origin.X+cx, s.origin.Y+cy, ' ', nil, style)
		}
	}
}

// FillText writes text starting at (x, y) in the fill color, clipped to the
// surface. Wide runes advance two cells
func (s *TerminalSurface) FillText(text string, x, y float64) {
	style := s.baseStyle().Foreground(s.fill.Tcell())
	sw, sh := s.Size()
	cy := int(math.Floor(y))
	if cy < 0 || cy >= sh {
		return
	}
	cx := int(math.Floor(x))
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if cx+w > sw {
			break
		}
		if cx >= 0 {
			s.screen.SetContent(s.origin.X+cx, s.origin.Y+cy, r, nil, style)
		}
		cx += w
	}
}

// Save pushes stroke and fill styles
func (s *TerminalSurface) Save() {
	s.stack = append(s.stack, terminalState{stroke: s.stroke, fill: s.fill})
}

// Restore pops stroke and fill styles. Unbalanced calls are ignored
func (s *TerminalSurface) Restore() {
	n := len(s.stack)
	if n == 0 {
		return
	}
	st := s.stack[n-1]
	s.stack = s.stack[:n-1]
	s.stroke, s.fill = st.stroke, st.fill
}

// BeginPath discards the current path
func (s *TerminalSurface) BeginPath() {
	s.path = s.path[:0]
}

// ClosePath has no visible effect for arc-only paths
func (s *TerminalSurface) ClosePath() {}

// Arc appends an arc to the current path
func (s *TerminalSurface) Arc(x, y, radius, startAngle, endAngle float64, ccw bool) {
	s.path = append(s.path, arcSegment{x: x, y: y, radius: radius, start: startAngle, end: endAngle, ccw: ccw})
}

// Stroke plots the current path with the stroke color
func (s *TerminalSurface) Stroke() {
	style := s.baseStyle().Foreground(s.stroke.Tcell())
	sw, sh := s.Size()
	plotted := make(map[image.Point]struct{})

	for _, seg := range s.path {
		sweep := seg.end - seg.start
		if seg.ccw {
			sweep = -math.Mod(2*math.Pi-math.Mod(sweep, 2*math.Pi), 2*math.Pi)
			if sweep == 0 {
				sweep = -2 * math.Pi
			}
		}
		// Sample densely enough to touch every cell on the circumference
		steps := max(int(math.Ceil(math.Abs(sweep)*seg.radius*terminalAspect*2)), 8)
		for i := 0; i <= steps; i++ {
			a := seg.start + sweep*float64(i)/float64(steps)
			p := image.Pt(
				int(math.Round(seg.x+math.Cos(a)*seg.radius*terminalAspect)),
				int(math.Round(seg.y+math.Sin(a)*seg.radius)),
			)
			if p.X < 0 || p.Y < 0 || p.X >= sw || p.Y >= sh {
				continue
			}
			if _, ok := plotted[p]; ok {
				continue
			}
			plotted[p] = struct{}{}
			s.screen.SetContent(s.origin.X+p.X, s.origin.Y+p.Y, outlineRune, nil, style)
		}
	}
}

// SetStrokeStyle sets the outline color
func (s *TerminalSurface) SetStrokeStyle(c color.Color) {
	s.stroke = s.background.FromColor(c)
}

// SetFillStyle sets the fill color
func (s *TerminalSurface) SetFillStyle(c color.Color) {
	s.fill = s.background.FromColor(c)
}

// Show flushes the frame to the terminal
func (s *TerminalSurface) Show() {
	s.screen.Show()
}

// Sync repaints the whole terminal, used after resize
func (s *TerminalSurface) Sync() {
	s.screen.Sync()
}
