package parameter

import (
	"image/color"
	"math"
	"time"
)

// World canvas, in world units (9:16 portrait)
const (
	ViewWidth  = 600.0
	ViewHeight = 900.0
)

// Orbits
const (
	InnerRadius = 52.0
	OuterRadius = 136.0

	// InnerSpeed is one revolution per simulated time unit
	InnerSpeed = 2 * math.Pi
)

// Golden is the golden ratio
var Golden = (1 + math.Sqrt(5)) / 2

// SpeedRatio is the inner/outer angular speed ratio
var SpeedRatio = 5 + Golden

// Sampling and time
const (
	// TicksPerRevolution caps trail records per outer revolution
	TicksPerRevolution = 800

	// TimeScale converts wall seconds into simulated time
	TimeScale = 0.86

	// MaxFrameDelta of 0 leaves frame deltas unclamped
	MaxFrameDelta = 0.0

	// SpinRate is the outer body's self rotation in degrees per real second
	SpinRate = 10.0

	// TrailCap of 0 keeps the trail unbounded
	TrailCap = 0
)

// Segment shortening, world units
const (
	InnerOffset = 7.0
	OuterOffset = 13.0

	// MinSegmentLength at or below which a tick records nothing
	MinSegmentLength = 4.0
)

// Frame pacing
const (
	FPS                 = 60
	FrameUpdateInterval = time.Second / FPS
)

// Trail colors, alpha is the per-segment contribution
var (
	TrailColorStart = color.RGBA{R: 255, G: 255, B: 255, A: 42}
	TrailColorEnd   = color.RGBA{R: 230, G: 245, B: 255, A: 46}

	LiveColorStart = color.RGBA{R: 255, G: 255, B: 255, A: 180}
	LiveColorEnd   = color.RGBA{R: 200, G: 230, B: 255, A: 200}
)
