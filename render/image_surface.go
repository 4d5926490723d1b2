package render

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
)

type imageState struct {
	stroke, fill color.Color
}

// ImageSurface implements engine.Surface on an in-memory gg context, one unit per pixel
type ImageSurface struct {
	dc         *gg.Context
	background color.Color
	stroke     color.Color
	fill       color.Color
	stack      []imageState
}

// NewImageSurface creates a width x height surface cleared to background
func NewImageSurface(width, height int, background color.Color) *ImageSurface {
	if background == nil {
		background = RGBBackground.Color()
	}
	s := &ImageSurface{
		dc:         gg.NewContext(width, height),
		background: background,
		stroke:     color.White,
		fill:       color.White,
	}
	s.dc.SetLineWidth(1)
	s.ClearRect(0, 0, float64(width), float64(height))
	return s
}

func (s *ImageSurface) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

func (s *ImageSurface) BoundingRect() image.Rectangle {
	return image.Rect(0, 0, s.dc.Width(), s.dc.Height())
}

// ClearRect paints the background over the rectangle
func (s *ImageSurface) ClearRect(x, y, w, h float64) {
	s.dc.Push()
	s.dc.SetColor(s.background)
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Fill()
	s.dc.Pop()
}

func (s *ImageSurface) FillRect(x, y, w, h float64) {
	s.dc.SetColor(s.fill)
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Fill()
}

// FillText draws text with its top-left corner at (x, y)
func (s *ImageSurface) FillText(text string, x, y float64) {
	s.dc.SetColor(s.fill)
	s.dc.DrawStringAnchored(text, x, y, 0, 1)
}

func (s *ImageSurface) Save() {
	s.stack = append(s.stack, imageState{stroke: s.stroke, fill: s.fill})
	s.dc.Push()
}

func (s *ImageSurface) Restore() {
	n := len(s.stack)
	if n == 0 {
		return
	}
	st := s.stack[n-1]
	s.stack = s.stack[:n-1]
	s.stroke, s.fill = st.stroke, st.fill
	s.dc.Pop()
}

func (s *ImageSurface) BeginPath() {
	s.dc.ClearPath()
}

func (s *ImageSurface) Arc(x, y, radius, startAngle, endAngle float64, ccw bool) {
	if ccw && endAngle > startAngle {
		endAngle -= 2 * math.Pi
	}
	s.dc.DrawArc(x, y, radius, startAngle, endAngle)
}

func (s *ImageSurface) Stroke() {
	s.dc.SetColor(s.stroke)
	s.dc.Stroke()
}

func (s *ImageSurface) ClosePath() {
	s.dc.ClosePath()
}

func (s *ImageSurface) SetStrokeStyle(c color.Color) { s.stroke = c }
func (s *ImageSurface) SetFillStyle(c color.Color) { s.fill = c }

// SetLineWidth sets the stroke width in pixels
func (s *ImageSurface) SetLineWidth(w float64) {
	s.dc.SetLineWidth(w)
}

// Image returns the backing image
func (s *ImageSurface) Image() image.Image {
	return s.dc.Image()
}

// EncodePNG writes the surface as PNG
func (s *ImageSurface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}
