package main

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/orbit-weave/config"
	"github.com/lixenwraith/orbit-weave/engine"
	"github.com/lixenwraith/orbit-weave/export"
	"github.com/lixenwraith/orbit-weave/parameter"
	"github.com/lixenwraith/orbit-weave/status"
)

// headlessStep is the fixed frame delta used without a terminal
var headlessStep = parameter.FrameUpdateInterval.Seconds()

// maxHeadlessFrames bounds a headless run regardless of configuration
const maxHeadlessFrames = 10_000_000

// exportView maps configuration onto the export geometry
func exportView(cfg config.Config) export.View {
	sc := cfg.Session()
	return export.View{
		Width:       cfg.View.Width,
		Height:      cfg.View.Height,
		Center:      sc.Center,
		InnerRadius: sc.Inner.Radius,
		OuterRadius: sc.Outer.Radius,
	}
}

// runHeadless simulates n outer revolutions at a fixed step and writes the trail to path
func runHeadless(cfg config.Config, path string, revolutions int) (*engine.Session, error) {
	if revolutions <= 0 {
		return nil, fmt.Errorf("revolutions must be > 0, got %d", revolutions)
	}

	s := engine.NewSession(cfg.Session())
	if s.Config().Outer.AngularSpeed == 0 || s.Config().TimeScale == 0 {
		return nil, fmt.Errorf("outer body is stationary, revolutions never complete")
	}

	target := int64(revolutions)
	frames := 0
	for s.Revolutions() < target {
		if frames >= maxHeadlessFrames {
			return nil, fmt.Errorf("gave up after %d frames at %d revolutions", frames, s.Revolutions())
		}
		s.Advance(headlessStep)
		frames++
	}
	log.Printf("headless run %s: %d frames, %d segments", s.ID(), frames, s.Trail().Len())

	if err := export.Trail(s.Trail().Segments(), exportView(cfg), path); err != nil {
		return nil, err
	}
	return s, nil
}

// snapshotName returns a unique export path inside dir
func snapshotName(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("orbit-weave-%d.png", now.Unix()))
}

// applyColorMode hints tcell's color detection through its environment variables
func applyColorMode(mode string) {
	switch mode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}
}

// publish mirrors the session state into the status registry
func publish(reg *status.Registry, s *engine.Session, f engine.Frame, fps float64) {
	reg.Float(status.KeySimTime).Set(f.Time)
	reg.Float(status.KeyFPS).Set(fps)
	reg.Int(status.KeyTick).Store(int64(f.Tick))
	reg.Int(status.KeyRevolutions).Store(f.Revolutions)
	reg.Int(status.KeySegments).Store(int64(s.Trail().Len()))
	reg.Int(status.KeySkipped).Store(int64(s.Trail().Skipped()))
	reg.Int(status.KeyEvicted).Store(int64(s.Trail().Evicted()))
	reg.Bool(status.KeyPaused).Store(s.Paused())
}

// fpsMeter averages frame rate over one-second windows
type fpsMeter struct {
	start  time.Time
	frames int
	value  float64
}

func (m *fpsMeter) tick(now time.Time) float64 {
	if m.start.IsZero() {
		m.start = now
	}
	m.frames++
	if elapsed := now.Sub(m.start).Seconds(); elapsed >= 1 {
		m.value = math.Round(float64(m.frames) / elapsed)
		m.frames = 0
		m.start = now
	}
	return m.value
}
