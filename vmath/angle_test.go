package vmath

import (
	"math"
	"testing"
)

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  float64
	}{
		{"Zero", 0, 0},
		{"Quarter", math.Pi / 2, math.Pi / 2},
		{"Full turn", Tau, 0},
		{"One and a half", 3 * math.Pi, math.Pi},
		{"Negative quarter", -math.Pi / 2, 3 * math.Pi / 2},
		{"Negative full", -Tau, 0},
		{"NaN", math.NaN(), 0},
		{"Inf", math.Inf(1), 0},
		{"Negative Inf", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapAngle(tt.angle)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("WrapAngle(%v) = %v, want %v", tt.angle, got, tt.want)
			}
			if got < 0 || got >= Tau {
				t.Errorf("WrapAngle(%v) = %v out of [0, Tau)", tt.angle, got)
			}
		})
	}
}

func TestWrapAngle_TinyNegative(t *testing.T) {
	// -1e-18 + Tau rounds to Tau in float64
	got := WrapAngle(-1e-18)
	if got != 0 {
		t.Errorf("Expected tiny negative angle to fold to 0, got %v", got)
	}
}

func TestRevolutionFraction_Range(t *testing.T) {
	angles := []float64{
		0, 1e-300, 0.5, math.Pi, Tau - 1e-15, Tau, -1e-9, -100.25,
		1e6 * Tau, 1e6*Tau + 0.3, -1e9, 123456789.123,
	}

	for _, a := range angles {
		f := RevolutionFraction(a)
		if math.IsNaN(f) || f < 0 || f >= 1 {
			t.Errorf("RevolutionFraction(%v) = %v, want finite in [0,1)", a, f)
		}
	}
}

func TestRevolutionFraction_Monotonic(t *testing.T) {
	prev := -1.0
	for i := 0; i < 10000; i++ {
		a := float64(i) / 10000 * Tau
		f := RevolutionFraction(a)
		if f < prev {
			t.Fatalf("Fraction decreased at step %d: %v < %v", i, f, prev)
		}
		prev = f
	}
}

func TestRevolutions(t *testing.T) {
	tests := []struct {
		angle float64
		want  int64
	}{
		{0, 0},
		{Tau - 0.001, 0},
		{Tau, 1},
		{2.5 * Tau, 2},
		{-0.001, -1},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := Revolutions(tt.angle); got != tt.want {
			t.Errorf("Revolutions(%v) = %d, want %d", tt.angle, got, tt.want)
		}
	}
}

func TestClampAndLerp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Errorf("Clamp high: got %v", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Errorf("Clamp low: got %v", got)
	}
	if got := ClampInt(7, 0, 3); got != 3 {
		t.Errorf("ClampInt: got %v", got)
	}
	if got := Lerp(10, 20, 0.25); got != 12.5 {
		t.Errorf("Lerp: got %v", got)
	}
}
