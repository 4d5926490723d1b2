package engine

import (
	"image"
	"image/color"
)

// Surface is the 2D drawing contract the engine and entities render through.
// Units are surface-native: terminal cells for the tcell surface, pixels for image surfaces
type Surface interface {
	// Size returns the drawable width and height
	Size() (width, height int)
	// BoundingRect returns the surface placement in client coordinates, used to
	// translate pointer positions into surface space
	BoundingRect() image.Rectangle

	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)
	FillText(text string, x, y float64)

	// Save pushes the current style state, Restore pops it
	Save()
	Restore()

	BeginPath()
	Arc(x, y, radius, startAngle, endAngle float64, counterClockwise bool)
	Stroke()
	ClosePath()

	SetStrokeStyle(c color.Color)
	SetFillStyle(c color.Color)
}

// Presenter is implemented by surfaces that buffer drawing until shown
type Presenter interface {
	Show()
}

// Syncer is implemented by surfaces that repaint fully after a resize
type Syncer interface {
	Sync()
}

// Colors shared by entities
var (
	ColorOutline = color.RGBA{R: 0, G: 128, B: 0, A: 255} // CSS green
	ColorCell    = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	ColorText    = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	ColorAccent  = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	ColorWarning = color.RGBA{R: 255, G: 200, B: 0, A: 255}
)
