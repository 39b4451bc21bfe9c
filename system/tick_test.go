package system

import (
	"math"
	"testing"

	"github.com/lixenwraith/orbit-weave/vmath"
)

func TestTickQuantizer_FirstStepFires(t *testing.T) {
	q := NewTickQuantizer(800)
	if q.Last() != NoTick {
		t.Fatalf("Expected sentinel before first step, got %d", q.Last())
	}

	idx, fired := q.Step(0)
	if !fired {
		t.Fatal("Expected first step to fire")
	}
	if idx != 0 {
		t.Errorf("Expected index 0 at angle 0, got %d", idx)
	}
}

func TestTickQuantizer_Debounce(t *testing.T) {
	q := NewTickQuantizer(800)
	angle := 1.2345

	fires := 0
	for i := 0; i < 100; i++ {
		if _, fired := q.Step(angle); fired {
			fires++
		}
	}
	if fires != 1 {
		t.Errorf("Expected exactly 1 fire for repeated angle, got %d", fires)
	}
}

func TestTickQuantizer_MonotonicWithinRevolution(t *testing.T) {
	q := NewTickQuantizer(800)
	prev := -1
	for i := 0; i < 50000; i++ {
		angle := float64(i) / 50000 * vmath.Tau
		idx, _ := q.Step(angle)
		if idx < prev {
			t.Fatalf("Index decreased at step %d: %d < %d", i, idx, prev)
		}
		if idx < 0 || idx >= 800 {
			t.Fatalf("Index out of range: %d", idx)
		}
		prev = idx
	}
	if prev != 799 {
		t.Errorf("Expected to reach last index 799, got %d", prev)
	}
}

func TestTickQuantizer_IndexValues(t *testing.T) {
	q := NewTickQuantizer(4)

	tests := []struct {
		name  string
		angle float64
		want  int
	}{
		{"Zero", 0, 0},
		{"Just under quarter", math.Pi/2 - 1e-9, 0},
		{"Quarter", math.Pi/2 + 1e-9, 1},
		{"Half", math.Pi + 1e-9, 2},
		{"Almost full", vmath.Tau - 1e-12, 3},
		{"Full wraps", vmath.Tau, 0},
		{"Negative eighth", -math.Pi / 4, 3},
		{"NaN", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := q.Index(tt.angle); got != tt.want {
				t.Errorf("Index(%v) = %d, want %d", tt.angle, got, tt.want)
			}
		})
	}
}

func TestTickQuantizer_WrapFires(t *testing.T) {
	q := NewTickQuantizer(800)

	if _, fired := q.Step(vmath.Tau - 1e-6); !fired {
		t.Fatal("Expected fire at end of revolution")
	}
	if q.Last() != 799 {
		t.Fatalf("Expected last index 799, got %d", q.Last())
	}

	// Exactly one revolution folds to fraction 0
	idx, fired := q.Step(vmath.Tau)
	if !fired || idx != 0 {
		t.Errorf("Expected wrap to fire index 0, got idx=%d fired=%v", idx, fired)
	}
}

func TestTickQuantizer_Reset(t *testing.T) {
	q := NewTickQuantizer(800)
	q.Step(2.0)
	if _, fired := q.Step(2.0); fired {
		t.Fatal("Expected no fire for same angle before reset")
	}

	q.Reset()
	if q.Last() != NoTick {
		t.Errorf("Expected sentinel after reset, got %d", q.Last())
	}
	if _, fired := q.Step(2.0); !fired {
		t.Error("Expected fire for same angle after reset")
	}
}

func TestTickQuantizer_TwoRevolutionsBound(t *testing.T) {
	q := NewTickQuantizer(800)
	steps := 1_000_000
	end := 2 * vmath.Tau

	fires := 0
	for i := 0; i <= steps; i++ {
		// Stop short of exactly 2 revolutions so the final wrap tick is excluded
		angle := end * float64(i) / float64(steps+1)
		if _, fired := q.Step(angle); fired {
			fires++
		}
	}
	if fires > 1600 {
		t.Errorf("Expected at most 1600 fires over 2 revolutions, got %d", fires)
	}
	if fires != 1600 {
		t.Errorf("Expected every tick to fire with a fine step, got %d", fires)
	}
}

func TestTickQuantizer_DefaultTicks(t *testing.T) {
	for _, n := range []int{0, -5} {
		q := NewTickQuantizer(n)
		if q.TicksPerRevolution() != 800 {
			t.Errorf("NewTickQuantizer(%d) ticks = %d, want 800", n, q.TicksPerRevolution())
		}
	}
}

func TestTickQuantizer_LongRun(t *testing.T) {
	q := NewTickQuantizer(800)
	angle := 1e6*vmath.Tau + 0.5
	idx, fired := q.Step(angle)
	if !fired || idx < 0 || idx >= 800 {
		t.Errorf("Long-run step idx=%d fired=%v", idx, fired)
	}
}
