package render

import (
	"image/color"
	"math"
)

// BlendMode selects how a stroke combines with the canvas
type BlendMode uint8

const (
	BlendAlpha BlendMode = iota // source-over
	BlendAdd                    // additive, saturating
)

// Canvas is a pixel buffer composited with source-over blending
// Two pixels stack vertically in every terminal cell
type Canvas struct {
	pix    []RGB
	width  int
	height int
}

// NewCanvas creates a canvas filled with black
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize adjusts dimensions, reallocating only if capacity is insufficient
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(c.pix) < size {
		c.pix = make([]RGB, size)
	} else {
		c.pix = c.pix[:size]
	}
	c.width, c.height = width, height
}

// Bounds returns canvas dimensions in pixels
func (c *Canvas) Bounds() (int, int) {
	return c.width, c.height
}

// Fill sets every pixel to bg using exponential copy
func (c *Canvas) Fill(bg RGB) {
	if len(c.pix) == 0 {
		return
	}
	c.pix[0] = bg
	for filled := 1; filled < len(c.pix); filled *= 2 {
		copy(c.pix[filled:], c.pix[:filled])
	}
}

// CopyFrom copies src pixels, dimensions must match
func (c *Canvas) CopyFrom(src *Canvas) {
	c.Resize(src.width, src.height)
	copy(c.pix, src.pix)
}

// At returns the pixel at x,y or black when out of bounds
func (c *Canvas) At(x, y int) RGB {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return RGBBlack
	}
	return c.pix[y*c.width+x]
}

// Plot blends src over the pixel at x,y
func (c *Canvas) Plot(x, y int, src RGB, alpha float64) {
	c.plot(x, y, src, alpha, BlendAlpha)
}

func (c *Canvas) plot(x, y int, src RGB, alpha float64, mode BlendMode) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	i := y*c.width + x
	if mode == BlendAdd {
		c.pix[i] = Add(c.pix[i], Scale(src, alpha), 1)
		return
	}
	c.pix[i] = Blend(c.pix[i], src, alpha)
}

// Line rasterizes a DDA line, color and alpha interpolated end to end
func (c *Canvas) Line(x0, y0, x1, y1 float64, c0, c1 color.RGBA, mode BlendMode) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		rgb, a := FromRGBA(c0)
		c.plot(int(math.Round(x0)), int(math.Round(y0)), rgb, a, mode)
		return
	}

	inv := 1.0 / float64(steps)
	for i := 0; i <= steps; i++ {
		t := float64(i) * inv
		rgb, a := FromRGBA(LerpRGBA(c0, c1, t))
		c.plot(int(math.Round(x0+dx*t)), int(math.Round(y0+dy*t)), rgb, a, mode)
	}
}

// Circle draws a one-pixel outline using the midpoint algorithm
func (c *Canvas) Circle(cx, cy, r float64, col color.RGBA) {
	rgb, a := FromRGBA(col)
	x0, y0 := int(math.Round(cx)), int(math.Round(cy))
	radius := int(math.Round(r))
	if radius <= 0 {
		c.Plot(x0, y0, rgb, a)
		return
	}

	x, y := radius, 0
	err := 1 - radius
	for x >= y {
		c.plotOctants(x0, y0, x, y, rgb, a)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

func (c *Canvas) plotOctants(x0, y0, x, y int, rgb RGB, a float64) {
	pts := [8][2]int{
		{x0 + x, y0 + y}, {x0 + y, y0 + x}, {x0 - y, y0 + x}, {x0 - x, y0 + y},
		{x0 - x, y0 - y}, {x0 - y, y0 - x}, {x0 + y, y0 - x}, {x0 + x, y0 - y},
	}
	// Axis and diagonal points repeat, blend each pixel once
	for i, p := range pts {
		dup := false
		for j := 0; j < i; j++ {
			if pts[j] == p {
				dup = true
				break
			}
		}
		if !dup {
			c.Plot(p[0], p[1], rgb, a)
		}
	}
}
