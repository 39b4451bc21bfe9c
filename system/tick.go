package system

import (
	"github.com/lixenwraith/orbit-weave/parameter"
	"github.com/lixenwraith/orbit-weave/vmath"
)

// NoTick is the quantizer sentinel before the first firing
const NoTick = -1

// TickQuantizer turns a continuous revolution angle into discrete tick events
// Recording density depends on ticks per revolution only, never on frame rate
type TickQuantizer struct {
	ticks int
	last  int
}

// NewTickQuantizer creates a quantizer with ticks steps per revolution
// Non-positive ticks fall back to the default
func NewTickQuantizer(ticks int) *TickQuantizer {
	if ticks <= 0 {
		ticks = parameter.TicksPerRevolution
	}
	return &TickQuantizer{ticks: ticks, last: NoTick}
}

// TicksPerRevolution returns the configured step count
func (q *TickQuantizer) TicksPerRevolution() int {
	return q.ticks
}

// Index maps angle to its step in [0, ticks) without touching state
func (q *TickQuantizer) Index(angle float64) int {
	idx := int(vmath.RevolutionFraction(angle) * float64(q.ticks))
	// fraction just below 1 can round up to ticks
	return vmath.ClampInt(idx, 0, q.ticks-1)
}

// Step returns the index for angle and whether it starts a new tick
// Fires on any index change, including the wrap from ticks-1 back to 0
func (q *TickQuantizer) Step(angle float64) (int, bool) {
	idx := q.Index(angle)
	if idx == q.last || idx < 0 {
		return idx, false
	}
	q.last = idx
	return idx, true
}

// Last returns the most recently fired index, NoTick after reset
func (q *TickQuantizer) Last() int {
	return q.last
}

// Reset restores the sentinel so the next Step always fires
func (q *TickQuantizer) Reset() {
	q.last = NoTick
}
