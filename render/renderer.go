package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit-weave/engine"
	"github.com/lixenwraith/orbit-weave/parameter"
	"github.com/lixenwraith/orbit-weave/status"
	"github.com/lixenwraith/orbit-weave/system"
)

// halfBlock paints the top pixel as foreground, bottom as background
const halfBlock = '▀'

// Screen is the subset of tcell.Screen the renderer draws to
type Screen interface {
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// Scene is the static geometry drawn under the trail
type Scene struct {
	WorldWidth  float64
	WorldHeight float64
	Center      r2.Vec
	InnerRadius float64
	OuterRadius float64
}

// SceneFromSession derives the scene from a session setup
func SceneFromSession(cfg engine.SessionConfig, worldW, worldH float64) Scene {
	return Scene{
		WorldWidth:  worldW,
		WorldHeight: worldH,
		Center:      cfg.Center,
		InnerRadius: cfg.Inner.Radius,
		OuterRadius: cfg.Outer.Radius,
	}
}

// Renderer composites the trail and live elements onto a terminal screen
// The trail is rasterized once per segment into a persistent layer
type Renderer struct {
	screen  Screen
	scene   Scene
	metrics *status.Registry

	cols, rows int
	vp         Viewport
	layer      *Canvas // background, orbits, recorded trail
	frame      *Canvas // layer plus live line

	// Layer sync state against the recorder
	layerGen     uint64
	layerDrawn   int
	layerEvicted int
	layerValid   bool

	message       string
	messageFrames int
}

// NewRenderer creates a renderer sized to the screen
func NewRenderer(screen Screen, scene Scene, metrics *status.Registry) *Renderer {
	r := &Renderer{
		screen:  screen,
		scene:   scene,
		metrics: metrics,
		layer:   NewCanvas(0, 0),
		frame:   NewCanvas(0, 0),
	}
	r.Resize()
	return r
}

// Resize re-reads screen dimensions and invalidates the trail layer
func (r *Renderer) Resize() {
	r.cols, r.rows = r.screen.Size()
	pixRows := max(r.rows-1, 0) * 2 // bottom row is the HUD
	r.layer.Resize(r.cols, pixRows)
	r.frame.Resize(r.cols, pixRows)
	r.vp = FitViewport(r.scene.WorldWidth, r.scene.WorldHeight, r.cols, pixRows)
	r.layerValid = false
}

// Viewport returns the current world→pixel mapping
func (r *Renderer) Viewport() Viewport {
	return r.vp
}

// Flash shows msg in the HUD for the given number of frames
func (r *Renderer) Flash(msg string, frames int) {
	r.message = msg
	r.messageFrames = frames
}

// Draw renders one frame
func (r *Renderer) Draw(f engine.Frame, trail *system.TrailRecorder) {
	r.syncLayer(trail)

	r.frame.CopyFrom(r.layer)
	if f.HasLive {
		r.drawSegment(r.frame, f.Live, BlendAlpha)
	}

	r.flush()
	r.drawBodies(f)
	r.drawHUD()
	r.screen.Show()
}

// syncLayer brings the trail layer up to date with the recorder
// Clear, resize and ring eviction force a full rebuild, otherwise only new segments are drawn
func (r *Renderer) syncLayer(trail *system.TrailRecorder) {
	segs := trail.Segments()

	if !r.layerValid || r.layerGen != trail.Generation() || r.layerEvicted != trail.Evicted() {
		r.paintBase()
		for _, s := range segs {
			r.drawSegment(r.layer, s, BlendAdd)
		}
		r.layerGen = trail.Generation()
		r.layerDrawn = trail.Appended()
		r.layerEvicted = trail.Evicted()
		r.layerValid = true
		return
	}

	fresh := trail.Appended() - r.layerDrawn
	if fresh <= 0 {
		return
	}
	fresh = min(fresh, len(segs))
	for _, s := range segs[len(segs)-fresh:] {
		r.drawSegment(r.layer, s, BlendAdd)
	}
	r.layerDrawn = trail.Appended()
}

func (r *Renderer) paintBase() {
	bg, _ := FromRGBA(parameter.BackgroundColor)
	r.layer.Fill(bg)

	cx, cy := r.vp.ToPixel(r.scene.Center)
	r.layer.Circle(cx, cy, r.scene.InnerRadius*r.vp.Scale, parameter.InnerOrbitColor)
	r.layer.Circle(cx, cy, r.scene.OuterRadius*r.vp.Scale, parameter.OuterOrbitColor)
}

func (r *Renderer) drawSegment(c *Canvas, s system.Segment, mode BlendMode) {
	x0, y0 := r.vp.ToPixel(s.Start)
	x1, y1 := r.vp.ToPixel(s.End)
	c.Line(x0, y0, x1, y1, s.ColorStart, s.ColorEnd, mode)
}

// flush writes the pixel canvas to the screen as half-block cells
func (r *Renderer) flush() {
	for y := 0; y < r.rows-1; y++ {
		for x := 0; x < r.cols; x++ {
			top := r.frame.At(x, y*2)
			bottom := r.frame.At(x, y*2+1)
			style := tcell.StyleDefault.Foreground(RGBToTcell(top)).Background(RGBToTcell(bottom))
			r.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
}

func (r *Renderer) drawBodies(f engine.Frame) {
	r.glyph(r.scene.Center, parameter.SunGlyph, parameter.SunColor)
	r.glyph(f.Inner, parameter.InnerGlyph, parameter.InnerBodyColor)
	r.glyph(f.Outer, OuterGlyph(f.Spin), parameter.OuterBodyColor)
}

// OuterGlyph picks the spin phase glyph for a rotation in degrees
func OuterGlyph(spin float64) rune {
	n := len(parameter.OuterGlyphs)
	idx := int(spin/360*float64(n)) % n
	if idx < 0 {
		idx += n
	}
	return parameter.OuterGlyphs[idx]
}

// glyph draws a body over its cell, keeping the cell's mean color as background
func (r *Renderer) glyph(p r2.Vec, ch rune, fg color.RGBA) {
	x, y := r.vp.ToCell(p)
	if x < 0 || x >= r.cols || y < 0 || y >= r.rows-1 {
		return
	}
	bg := Average(r.frame.At(x, y*2), r.frame.At(x, y*2+1))
	style := tcell.StyleDefault.Foreground(RGBAToTcell(fg)).Background(RGBToTcell(bg))
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *Renderer) drawHUD() {
	if r.rows < 1 {
		return
	}
	y := r.rows - 1

	text := ""
	if r.metrics != nil {
		text = r.metrics.Line()
	}
	fg := parameter.HUDColor
	if r.messageFrames > 0 {
		text = r.message
		fg = parameter.HUDHighlightColor
		r.messageFrames--
	}

	bg, _ := FromRGBA(parameter.BackgroundColor)
	style := tcell.StyleDefault.Foreground(RGBAToTcell(fg)).Background(RGBToTcell(bg))
	runes := []rune(text)
	for x := 0; x < r.cols; x++ {
		ch := ' '
		if x < len(runes) {
			ch = runes[x]
		}
		r.screen.SetContent(x, y, ch, nil, style)
	}
}
