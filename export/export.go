// Package export renders a recorded trail to an image file
package export

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/lixenwraith/orbit-weave/parameter"
	"github.com/lixenwraith/orbit-weave/system"
)

// View describes the world area exported and the orbits drawn beneath the trail
type View struct {
	Width       float64
	Height      float64
	Center      r2.Vec
	InnerRadius float64
	OuterRadius float64
}

// DefaultView is the stock 600x900 world with both orbits
func DefaultView() View {
	return View{
		Width:       parameter.ViewWidth,
		Height:      parameter.ViewHeight,
		Center:      r2.Vec{X: parameter.ViewWidth / 2, Y: parameter.ViewHeight / 2},
		InnerRadius: parameter.InnerRadius,
		OuterRadius: parameter.OuterRadius,
	}
}

// pointsPerUnit maps world units to output size, 600 units = 6 inches
const pointsPerUnit = vg.Inch / 100

// circleSteps is the polyline resolution for orbit outlines
const circleSteps = 256

// Trail writes segments to path; format follows the extension (.png, .svg, .pdf)
func Trail(segments []system.Segment, view View, path string) error {
	if view.Width <= 0 || view.Height <= 0 {
		return fmt.Errorf("export: invalid view %gx%g", view.Width, view.Height)
	}

	p := plot.New()
	p.HideAxes()
	p.BackgroundColor = parameter.BackgroundColor
	p.X.Min, p.X.Max = 0, view.Width
	p.Y.Min, p.Y.Max = 0, view.Height

	if view.InnerRadius > 0 {
		if err := addOrbit(p, view, view.InnerRadius, parameter.InnerOrbitColor); err != nil {
			return err
		}
	}
	if view.OuterRadius > 0 {
		if err := addOrbit(p, view, view.OuterRadius, parameter.OuterOrbitColor); err != nil {
			return err
		}
	}
	p.Add(&trailPlotter{segs: segments, height: view.Height, width: vg.Points(0.5)})

	w := vg.Length(view.Width) * pointsPerUnit
	h := vg.Length(view.Height) * pointsPerUnit
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

func addOrbit(p *plot.Plot, view View, radius float64, col color.RGBA) error {
	pts := make(plotter.XYs, circleSteps+1)
	for i := range pts {
		s, c := math.Sincos(2 * math.Pi * float64(i) / circleSteps)
		pts[i] = plotter.XY{X: view.Center.X + radius*c, Y: flipY(view.Center.Y+radius*s, view.Height)}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("export: orbit outline: %w", err)
	}
	line.Color = col
	line.Width = vg.Points(0.75)
	p.Add(line)
	return nil
}

// flipY converts screen-down world coordinates to plot-up
func flipY(y, height float64) float64 {
	return height - y
}

// trailPlotter strokes each trail segment with its start color
type trailPlotter struct {
	segs   []system.Segment
	height float64
	width  vg.Length
}

// Plot implements plot.Plotter
func (s *trailPlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, seg := range s.segs {
		sty := draw.LineStyle{Color: seg.ColorStart, Width: s.width}
		c.StrokeLine2(sty,
			trX(seg.Start.X), trY(flipY(seg.Start.Y, s.height)),
			trX(seg.End.X), trY(flipY(seg.End.Y, s.height)))
	}
}

// DataRange implements plot.DataRanger
func (s *trailPlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(s.segs) == 0 {
		return 0, 0, 0, 0
	}
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, seg := range s.segs {
		for _, p := range [2]r2.Vec{seg.Start, seg.End} {
			y := flipY(p.Y, s.height)
			xmin, xmax = math.Min(xmin, p.X), math.Max(xmax, p.X)
			ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
		}
	}
	return xmin, xmax, ymin, ymax
}
