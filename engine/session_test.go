package engine

import (
	"io"
	"log"
	"math"
	"os"
	"testing"

	"github.com/lixenwraith/orbit-weave/physics"
	"github.com/lixenwraith/orbit-weave/vmath"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

const frameDt = 1.0 / 60

func TestSession_FirstFrameFires(t *testing.T) {
	s := NewSession(DefaultSessionConfig())

	f := s.Advance(0)
	if !f.Fired {
		t.Fatal("Expected first frame to fire a tick")
	}
	if f.Tick != 0 {
		t.Errorf("Expected tick 0 at t=0, got %d", f.Tick)
	}
	if !f.Recorded || s.Trail().Len() != 1 {
		t.Errorf("Expected one recorded segment, got recorded=%v len=%d", f.Recorded, s.Trail().Len())
	}
	if !f.HasLive {
		t.Error("Expected a live segment")
	}
}

func TestSession_PositionsMatchKinematics(t *testing.T) {
	cfg := DefaultSessionConfig()
	s := NewSession(cfg)

	var f Frame
	for i := 0; i < 37; i++ {
		f = s.Advance(frameDt)
	}

	wantInner := physics.Position(cfg.Inner, cfg.Center, f.Time)
	wantOuter := physics.Position(cfg.Outer, cfg.Center, f.Time)
	if f.Inner != wantInner || f.Outer != wantOuter {
		t.Errorf("Frame positions differ from kinematics: %v %v vs %v %v", f.Inner, f.Outer, wantInner, wantOuter)
	}
	if math.Abs(f.Time-37*frameDt*cfg.TimeScale) > 1e-9 {
		t.Errorf("Unexpected simulated time %v", f.Time)
	}
}

func TestSession_DebounceSameFrame(t *testing.T) {
	s := NewSession(DefaultSessionConfig())
	s.Advance(frameDt)

	// Zero deltas keep the angle, no new tick
	for i := 0; i < 10; i++ {
		if f := s.Advance(0); f.Fired {
			t.Fatalf("Unexpected fire on zero delta at iteration %d", i)
		}
	}
}

func TestSession_ResetCompleteness(t *testing.T) {
	s := NewSession(DefaultSessionConfig())
	for i := 0; i < 500; i++ {
		s.Advance(frameDt)
	}
	if s.Trail().Len() == 0 {
		t.Fatal("Expected trail to accumulate before reset")
	}
	oldID := s.ID()
	spin := s.Advance(0).Spin

	s.Reset()

	if s.Time() != 0 {
		t.Errorf("Expected simulated time 0, got %v", s.Time())
	}
	if s.Trail().Len() != 0 {
		t.Errorf("Expected empty trail, got %d", s.Trail().Len())
	}
	if s.Quantizer().Last() != -1 {
		t.Errorf("Expected quantizer sentinel, got %d", s.Quantizer().Last())
	}
	if s.Revolutions() != 0 {
		t.Errorf("Expected 0 revolutions, got %d", s.Revolutions())
	}
	if s.ID() == oldID {
		t.Error("Expected new session id after reset")
	}

	f := s.Advance(0)
	if !f.Fired {
		t.Error("Expected next step after reset to fire immediately")
	}
	if spin == 0 || f.Spin != spin {
		t.Errorf("Expected spin %v to survive reset, got %v", spin, f.Spin)
	}
}

func TestSession_TwoRevolutionsBound(t *testing.T) {
	cfg := DefaultSessionConfig()
	s := NewSession(cfg)

	// Fine wall step so every tick is observed
	period := physics.Period(cfg.Outer) / cfg.TimeScale
	dt := period / 8000
	target := 2 * vmath.Tau

	// Stop before the frame that reaches the second boundary, it fires tick 0 of the third revolution
	fired := 0
	for physics.Angle(cfg.Outer, s.Time()+dt*cfg.TimeScale) < target {
		if f := s.Advance(dt); f.Fired {
			fired++
		}
	}

	if fired > 1600 {
		t.Errorf("Expected at most 1600 ticks over 2 revolutions, got %d", fired)
	}
	if s.Trail().Len() > 1600 {
		t.Errorf("Expected at most 1600 segments, got %d", s.Trail().Len())
	}
	if s.Trail().Len()+s.Trail().Skipped() != fired {
		t.Errorf("Every tick must either record or skip: len=%d skipped=%d fired=%d",
			s.Trail().Len(), s.Trail().Skipped(), fired)
	}
	if s.Revolutions() != 1 {
		t.Errorf("Expected 1 completed revolution before the second boundary, got %d", s.Revolutions())
	}
}

func TestSession_RevolutionCount(t *testing.T) {
	cfg := DefaultSessionConfig()
	s := NewSession(cfg)

	fired, frames := 0, 0
	for s.Revolutions() < 2 {
		if f := s.Advance(1.0 / 60); f.Fired {
			fired++
		}
		frames++
		if frames > 100000 {
			t.Fatal("Revolutions never reached 2")
		}
	}

	if s.Revolutions() != 2 {
		t.Errorf("Expected 2 revolutions, got %d", s.Revolutions())
	}
	// 1600 ticks plus tick 0 of the third revolution fired on the crossing frame
	if fired > 1601 {
		t.Errorf("Expected at most 1601 ticks, got %d", fired)
	}
	if s.Trail().Len()+s.Trail().Skipped() != fired {
		t.Errorf("Every tick must either record or skip: len=%d skipped=%d fired=%d",
			s.Trail().Len(), s.Trail().Skipped(), fired)
	}
}

func TestSession_FrameRateIndependence(t *testing.T) {
	cfg := DefaultSessionConfig()
	period := physics.Period(cfg.Outer) / cfg.TimeScale

	count := func(fps float64) int {
		s := NewSession(cfg)
		dt := 1 / fps
		for elapsed := 0.0; elapsed < period*0.999; elapsed += dt {
			s.Advance(dt)
		}
		return s.Trail().Len() + s.Trail().Skipped()
	}

	slow, fast := count(240), count(2400)
	if slow > 800 || fast > 800 {
		t.Errorf("Ticks exceed one revolution's budget: %d %d", slow, fast)
	}
	if fast < slow {
		t.Errorf("Higher frame rate recorded fewer ticks: %d < %d", fast, slow)
	}
}

func TestSession_Pause(t *testing.T) {
	s := NewSession(DefaultSessionConfig())
	s.Advance(frameDt)
	before := s.Time()
	spin := s.Advance(0).Spin

	if !s.TogglePaused() {
		t.Fatal("Expected paused after toggle")
	}
	for i := 0; i < 60; i++ {
		f := s.Advance(frameDt)
		if f.Fired {
			t.Fatal("Unexpected tick while paused")
		}
		if f.Spin != spin {
			t.Fatal("Spin advanced while paused")
		}
	}
	if s.Time() != before {
		t.Errorf("Time advanced during pause: %v -> %v", before, s.Time())
	}

	s.SetPaused(false)
	s.Advance(frameDt)
	if s.Time() <= before {
		t.Error("Expected time to advance after resume")
	}
}

func TestSession_Spin(t *testing.T) {
	cfg := DefaultSessionConfig()
	cfg.SpinRate = 90
	s := NewSession(cfg)

	var f Frame
	for i := 0; i < 5; i++ {
		f = s.Advance(1)
	}
	// 450 degrees wraps to 90
	if math.Abs(f.Spin-90) > 1e-9 {
		t.Errorf("Spin = %v, want 90", f.Spin)
	}
}

func TestSession_RevolutionCompleted(t *testing.T) {
	cfg := DefaultSessionConfig()
	s := NewSession(cfg)
	period := physics.Period(cfg.Outer) / cfg.TimeScale

	completed := 0
	for elapsed := 0.0; elapsed < 3.5*period; elapsed += frameDt {
		if f := s.Advance(frameDt); f.Completed {
			completed++
		}
	}
	if completed != 3 || s.Revolutions() != 3 {
		t.Errorf("Expected 3 completed revolutions, got events=%d count=%d", completed, s.Revolutions())
	}
}

func TestSession_LongRunStability(t *testing.T) {
	cfg := DefaultSessionConfig()
	s := NewSession(cfg)

	// Jump to ~1e6 outer revolutions in a single unclamped frame
	jump := 1e6 * physics.Period(cfg.Outer) / cfg.TimeScale
	f := s.Advance(jump)

	for _, v := range []float64{f.Inner.X, f.Inner.Y, f.Outer.X, f.Outer.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Non-finite position after long run: %+v", f)
		}
	}
	frac := vmath.RevolutionFraction(f.OuterAngle)
	if frac < 0 || frac >= 1 {
		t.Errorf("Fraction out of range: %v", frac)
	}
	if f.Tick < 0 || f.Tick >= cfg.TicksPerRevolution {
		t.Errorf("Tick out of range: %d", f.Tick)
	}
}
