package engine

import "math"

// SimulationClock accumulates scaled simulated time from frame deltas
// Owned by a single Session; not safe for concurrent use
type SimulationClock struct {
	time     float64
	scale    float64
	maxDelta float64
	paused   bool
}

// NewSimulationClock creates a clock at zero
// maxDelta <= 0 leaves frame deltas unclamped
func NewSimulationClock(scale, maxDelta float64) *SimulationClock {
	if maxDelta < 0 {
		maxDelta = 0
	}
	return &SimulationClock{scale: scale, maxDelta: maxDelta}
}

// Advance adds frameDelta*scale and returns the new simulated time
// Negative and non-finite deltas are ignored
func (c *SimulationClock) Advance(frameDelta float64) float64 {
	if c.paused || !(frameDelta > 0) || math.IsInf(frameDelta, 1) {
		return c.time
	}
	if c.maxDelta > 0 && frameDelta > c.maxDelta {
		frameDelta = c.maxDelta
	}
	c.time += frameDelta * c.scale
	return c.time
}

// Now returns simulated time
func (c *SimulationClock) Now() float64 {
	return c.time
}

// Scale returns the time-scale multiplier
func (c *SimulationClock) Scale() float64 {
	return c.scale
}

// Pause freezes simulated time
func (c *SimulationClock) Pause() {
	c.paused = true
}

// Resume continues simulated time advancement
func (c *SimulationClock) Resume() {
	c.paused = false
}

// IsPaused returns current pause state
func (c *SimulationClock) IsPaused() bool {
	return c.paused
}

// Reset sets simulated time back to zero, pause state is kept
func (c *SimulationClock) Reset() {
	c.time = 0
}
