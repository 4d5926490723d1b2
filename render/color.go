package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack      = RGB{0, 0, 0}
	RGBBackground = RGB{26, 27, 38} // Tokyo Night background
)

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// FromColor converts any color to RGB, compositing translucent colors over dst
func (dst RGB) FromColor(c color.Color) RGB {
	if c == nil {
		return dst
	}
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	src := RGB{nrgba.R, nrgba.G, nrgba.B}
	return dst.Blend(src, float64(nrgba.A)/255)
}

// Tcell returns the tcell true color
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Color returns the image/color equivalent
func (c RGB) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
