package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orbit-weave/vmath"
)

// RGB is an opaque 24-bit color
type RGB struct {
	R, G, B uint8
}

// Predefined default color
var RGBBlack = RGB{0, 0, 0}

// FromRGBA splits a straight-alpha color into RGB and a [0,1] alpha
func FromRGBA(c color.RGBA) (RGB, float64) {
	return RGB{c.R, c.G, c.B}, float64(c.A) / 255.0
}

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Blend is source-over alpha blending
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	inv := 1.0 - alpha

	return RGB{
		R: clamp(float64(src.R)*alpha + float64(c.R)*inv + 0.5),
		G: clamp(float64(src.G)*alpha + float64(c.G)*inv + 0.5),
		B: clamp(float64(src.B)*alpha + float64(c.B)*inv + 0.5),
	}
}

// add is addition with clamping
func add(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// Add performs additive blend with clamping and alpha blending
func Add(c, src RGB, alpha float64) RGB {
	if alpha <= 0.0 {
		return c
	}

	added := RGB{
		R: add(c.R, src.R),
		G: add(c.G, src.G),
		B: add(c.B, src.B),
	}

	if alpha >= 1.0 {
		return added
	}

	return Blend(c, added, alpha)
}

// Scale multiplies all channels by factor
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// LerpRGBA interpolates straight-alpha colors, alpha included
// t=0 returns a, t=1 returns b
func LerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ch := func(x, y uint8) uint8 {
		return uint8(vmath.Lerp(float64(x), float64(y), t) + 0.5)
	}
	return color.RGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}

// Average returns the per-channel mean of two colors
func Average(a, b RGB) RGB {
	return RGB{
		R: uint8((int(a.R) + int(b.R)) / 2),
		G: uint8((int(a.G) + int(b.G)) / 2),
		B: uint8((int(a.B) + int(b.B)) / 2),
	}
}

// RGBToTcell converts RGB to tcell.Color
func RGBToTcell(rgb RGB) tcell.Color {
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// RGBAToTcell drops alpha and converts to tcell.Color
func RGBAToTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
