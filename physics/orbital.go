package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit-weave/vmath"
)

// OrbitSpec describes a circular orbit around a fixed center
// AngularSpeed is in radians per simulated time unit, sign sets direction
type OrbitSpec struct {
	Radius       float64
	AngularSpeed float64
}

// Angle returns the unbounded orbital angle at time t
func Angle(spec OrbitSpec, t float64) float64 {
	return spec.AngularSpeed * t
}

// Position returns the body's coordinate at time t
// Pure: identical inputs always yield identical output
func Position(spec OrbitSpec, center r2.Vec, t float64) r2.Vec {
	return PositionAt(spec, center, Angle(spec, t))
}

// PositionAt returns the coordinate for an explicit angle
func PositionAt(spec OrbitSpec, center r2.Vec, angle float64) r2.Vec {
	sin, cos := math.Sincos(angle)
	return r2.Add(center, r2.Vec{X: spec.Radius * cos, Y: spec.Radius * sin})
}

// Period returns simulated time for one revolution, +Inf when stationary
func Period(spec OrbitSpec) float64 {
	if spec.AngularSpeed == 0 {
		return math.Inf(1)
	}
	return vmath.Tau / math.Abs(spec.AngularSpeed)
}

// GoldenPair returns inner and outer specs whose speed ratio is ratio
// ratio <= 0 selects 5 + golden ratio
func GoldenPair(innerRadius, outerRadius, innerSpeed, ratio float64) (inner, outer OrbitSpec) {
	if ratio <= 0 {
		ratio = 5 + (1+math.Sqrt(5))/2
	}
	inner = OrbitSpec{Radius: innerRadius, AngularSpeed: innerSpeed}
	outer = OrbitSpec{Radius: outerRadius, AngularSpeed: innerSpeed / ratio}
	return inner, outer
}
