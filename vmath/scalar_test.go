package vmath

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
	if got := ClampInt(900, 0, 799); got != 799 {
		t.Errorf("ClampInt upper = %d, want 799", got)
	}
	if got := ClampInt(-3, 0, 799); got != 0 {
		t.Errorf("ClampInt lower = %d, want 0", got)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(10, 20, 0); got != 10 {
		t.Errorf("Lerp t=0 = %v", got)
	}
	if got := Lerp(10, 20, 1); got != 20 {
		t.Errorf("Lerp t=1 = %v", got)
	}
	if got := Lerp(10, 20, 1.5); got != 25 {
		t.Errorf("Lerp should not clamp, got %v", got)
	}
}
