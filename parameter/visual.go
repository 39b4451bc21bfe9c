package parameter

import "image/color"

// Scene colors
var (
	BackgroundColor   = color.RGBA{R: 0, G: 0, B: 12, A: 255}
	InnerOrbitColor   = color.RGBA{R: 255, G: 255, B: 255, A: 90}
	OuterOrbitColor   = color.RGBA{R: 255, G: 255, B: 255, A: 70}
	SunColor          = color.RGBA{R: 255, G: 214, B: 102, A: 255}
	InnerBodyColor    = color.RGBA{R: 214, G: 96, B: 64, A: 255}
	OuterBodyColor    = color.RGBA{R: 222, G: 184, B: 135, A: 255}
	HUDColor          = color.RGBA{R: 140, G: 150, B: 170, A: 255}
	HUDHighlightColor = color.RGBA{R: 230, G: 245, B: 255, A: 255}
)

// Glyphs
const (
	SunGlyph   = '☼'
	InnerGlyph = '●'
)

// OuterGlyphs cycle with the outer body's spin
var OuterGlyphs = []rune{'◐', '◓', '◑', '◒'}
