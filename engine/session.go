package engine

import (
	"log"
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit-weave/parameter"
	"github.com/lixenwraith/orbit-weave/physics"
	"github.com/lixenwraith/orbit-weave/system"
	"github.com/lixenwraith/orbit-weave/vmath"
)

// SessionConfig is fixed for the lifetime of a Session
type SessionConfig struct {
	Inner  physics.OrbitSpec
	Outer  physics.OrbitSpec
	Center r2.Vec

	TicksPerRevolution int
	TimeScale          float64
	MaxFrameDelta      float64 // 0 = unclamped
	SpinRate           float64 // degrees per real second

	Trail system.TrailConfig
}

// DefaultSessionConfig returns the stock two-body setup centered in the view
func DefaultSessionConfig() SessionConfig {
	inner, outer := physics.GoldenPair(parameter.InnerRadius, parameter.OuterRadius, parameter.InnerSpeed, parameter.SpeedRatio)
	return SessionConfig{
		Inner:              inner,
		Outer:              outer,
		Center:             r2.Vec{X: parameter.ViewWidth / 2, Y: parameter.ViewHeight / 2},
		TicksPerRevolution: parameter.TicksPerRevolution,
		TimeScale:          parameter.TimeScale,
		MaxFrameDelta:      parameter.MaxFrameDelta,
		SpinRate:           parameter.SpinRate,
		Trail:              system.DefaultTrailConfig(),
	}
}

// Frame is the per-frame snapshot handed to renderers
type Frame struct {
	Time       float64
	Inner      r2.Vec
	Outer      r2.Vec
	OuterAngle float64
	Spin       float64 // outer body self rotation, degrees in [0, 360)

	Tick     int
	Fired    bool
	Recorded bool
	Segment  system.Segment // valid when Recorded

	Live    system.Segment
	HasLive bool

	Revolutions int64
	Completed   bool // an outer revolution finished this frame
}

// Session owns the clock, quantizer and trail recorder of one run
// All methods run on the frame loop goroutine
type Session struct {
	cfg       SessionConfig
	clock     *SimulationClock
	quantizer *system.TickQuantizer
	recorder  *system.TrailRecorder

	id          string
	spin        float64
	lastRev     int64
	revolutions int64
	frames      uint64
}

// NewSession creates a session at simulated time zero
func NewSession(cfg SessionConfig) *Session {
	s := &Session{
		cfg:       cfg,
		clock:     NewSimulationClock(cfg.TimeScale, cfg.MaxFrameDelta),
		quantizer: system.NewTickQuantizer(cfg.TicksPerRevolution),
		recorder:  system.NewTrailRecorder(cfg.Trail),
		id:        uuid.NewString(),
	}
	log.Printf("session %s started: ticks=%d scale=%.3f cap=%d", s.id, s.quantizer.TicksPerRevolution(), cfg.TimeScale, cfg.Trail.Cap)
	return s
}

// Advance runs one frame: clock, kinematics, quantizer, recorder
func (s *Session) Advance(frameDeltaSeconds float64) Frame {
	s.frames++
	t := s.clock.Advance(frameDeltaSeconds)

	outerAngle := physics.Angle(s.cfg.Outer, t)
	f := Frame{
		Time:       t,
		Inner:      physics.Position(s.cfg.Inner, s.cfg.Center, t),
		Outer:      physics.PositionAt(s.cfg.Outer, s.cfg.Center, outerAngle),
		OuterAngle: outerAngle,
	}

	f.Tick, f.Fired = s.quantizer.Step(outerAngle)
	if f.Fired {
		f.Segment, f.Recorded = s.recorder.OnTick(f.Tick, f.Inner, f.Outer)
	}
	f.Live, f.HasLive = s.recorder.Live(f.Inner, f.Outer)

	if !s.clock.IsPaused() && frameDeltaSeconds > 0 && !math.IsInf(frameDeltaSeconds, 1) {
		s.spin = math.Mod(s.spin+s.cfg.SpinRate*frameDeltaSeconds, 360)
		if s.spin < 0 {
			s.spin += 360
		}
	}
	f.Spin = s.spin

	if rev := vmath.Revolutions(outerAngle); rev != s.lastRev {
		delta := rev - s.lastRev
		if delta < 0 {
			delta = -delta
		}
		s.revolutions += delta
		s.lastRev = rev
		f.Completed = true
	}
	f.Revolutions = s.revolutions

	return f
}

// Reset clears time, trail and quantizer together
// The next Advance fires a tick regardless of angle; spin is cosmetic and carries over
func (s *Session) Reset() {
	log.Printf("session %s cleared: t=%.2f segments=%d revolutions=%d", s.id, s.clock.Now(), s.recorder.Len(), s.revolutions)
	s.clock.Reset()
	s.recorder.Clear()
	s.quantizer.Reset()
	s.lastRev = 0
	s.revolutions = 0
	s.id = uuid.NewString()
	log.Printf("session %s started", s.id)
}

// SetPaused freezes or resumes simulated time and spin
func (s *Session) SetPaused(paused bool) {
	if paused {
		s.clock.Pause()
	} else {
		s.clock.Resume()
	}
}

// TogglePaused flips pause state and returns the new state
func (s *Session) TogglePaused() bool {
	s.SetPaused(!s.clock.IsPaused())
	return s.clock.IsPaused()
}

// Paused returns current pause state
func (s *Session) Paused() bool {
	return s.clock.IsPaused()
}

// Time returns current simulated time
func (s *Session) Time() float64 {
	return s.clock.Now()
}

// Trail returns the recorder for read-only access
func (s *Session) Trail() *system.TrailRecorder {
	return s.recorder
}

// Quantizer returns the tick quantizer for inspection
func (s *Session) Quantizer() *system.TickQuantizer {
	return s.quantizer
}

// Config returns the session configuration
func (s *Session) Config() SessionConfig {
	return s.cfg
}

// ID returns the current session id, regenerated on Reset
func (s *Session) ID() string {
	return s.id
}

// Revolutions returns completed outer revolutions since the last Reset
func (s *Session) Revolutions() int64 {
	return s.revolutions
}

// Frames returns frames advanced since creation
func (s *Session) Frames() uint64 {
	return s.frames
}
