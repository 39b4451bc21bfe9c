package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Viewport maps world coordinates onto a pixel canvas
// Uniform scale, centered, so orbits stay circular
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// FitViewport fits a world of worldW x worldH into pixW x pixH pixels
func FitViewport(worldW, worldH float64, pixW, pixH int) Viewport {
	if worldW <= 0 || worldH <= 0 || pixW <= 0 || pixH <= 0 {
		return Viewport{Scale: 1}
	}
	s := math.Min(float64(pixW)/worldW, float64(pixH)/worldH)
	return Viewport{
		Scale:   s,
		OffsetX: (float64(pixW) - worldW*s) / 2,
		OffsetY: (float64(pixH) - worldH*s) / 2,
	}
}

// ToPixel converts a world point to fractional pixel coordinates
func (v Viewport) ToPixel(p r2.Vec) (float64, float64) {
	return p.X*v.Scale + v.OffsetX, p.Y*v.Scale + v.OffsetY
}

// ToCell converts a world point to the terminal cell containing it
func (v Viewport) ToCell(p r2.Vec) (int, int) {
	x, y := v.ToPixel(p)
	return int(math.Floor(x)), int(math.Floor(y / 2))
}
