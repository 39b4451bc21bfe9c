package vmath

import "math"

// Tau is one full revolution in radians
const Tau = 2 * math.Pi

// WrapAngle returns angle reduced to [0, Tau)
// Negative remainders are shifted up by Tau; non-finite input returns 0
func WrapAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	r := math.Mod(angle, Tau)
	if r < 0 {
		r += Tau
	}
	// r+Tau rounds to Tau for tiny negative remainders
	if r >= Tau {
		r = 0
	}
	return r
}

// RevolutionFraction returns progress through one revolution in [0, 1)
func RevolutionFraction(angle float64) float64 {
	f := WrapAngle(angle) / Tau
	if f >= 1 {
		return 0
	}
	return f
}

// Revolutions returns the number of whole revolutions contained in angle
// Rounds toward negative infinity so reverse orbits count down past zero
func Revolutions(angle float64) int64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	return int64(math.Floor(angle / Tau))
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
