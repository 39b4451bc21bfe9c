package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit-weave/engine"
	"github.com/lixenwraith/orbit-weave/input"
	"github.com/lixenwraith/orbit-weave/parameter"
	"github.com/lixenwraith/orbit-weave/physics"
	"github.com/lixenwraith/orbit-weave/system"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("config: invalid value")

// Orbit holds the two orbit definitions
type Orbit struct {
	InnerRadius float64 `toml:"inner_radius"`
	OuterRadius float64 `toml:"outer_radius"`
	InnerSpeed  float64 `toml:"inner_speed"`
	SpeedRatio  float64 `toml:"speed_ratio"` // 0 = 5 + golden ratio
}

// Trail holds segment shortening geometry
type Trail struct {
	InnerOffset float64 `toml:"inner_offset"`
	OuterOffset float64 `toml:"outer_offset"`
	MinLength   float64 `toml:"min_length"`
}

// View is the world canvas size the orbits are centered in
type View struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Keys lists key names per action
type Keys struct {
	Clear  []string `toml:"clear"`
	Pause  []string `toml:"pause"`
	Export []string `toml:"export"`
	Quit   []string `toml:"quit"`
}

// Config is the full runtime configuration, fixed after startup
type Config struct {
	TicksPerRevolution int     `toml:"ticks_per_revolution"`
	TimeScale          float64 `toml:"time_scale"`
	MaxFrameDelta      float64 `toml:"max_frame_delta"`
	SpinRate           float64 `toml:"spin_rate"`
	TrailCap           int     `toml:"trail_cap"`
	FPS                int     `toml:"fps"`
	ExportDir          string  `toml:"export_dir"`

	Orbit Orbit `toml:"orbit"`
	Trail Trail `toml:"trail"`
	View  View  `toml:"view"`
	Keys  Keys  `toml:"keys"`
}

// Default returns the stock configuration
func Default() Config {
	kb := input.DefaultBindings()
	return Config{
		TicksPerRevolution: parameter.TicksPerRevolution,
		TimeScale:          parameter.TimeScale,
		MaxFrameDelta:      parameter.MaxFrameDelta,
		SpinRate:           parameter.SpinRate,
		TrailCap:           parameter.TrailCap,
		FPS:                parameter.FPS,
		ExportDir:          ".",
		Orbit: Orbit{
			InnerRadius: parameter.InnerRadius,
			OuterRadius: parameter.OuterRadius,
			InnerSpeed:  parameter.InnerSpeed,
		},
		Trail: Trail{
			InnerOffset: parameter.InnerOffset,
			OuterOffset: parameter.OuterOffset,
			MinLength:   parameter.MinSegmentLength,
		},
		View: View{
			Width:  parameter.ViewWidth,
			Height: parameter.ViewHeight,
		},
		Keys: Keys{
			Clear:  kb.Clear,
			Pause:  kb.Pause,
			Export: kb.Export,
			Quit:   kb.Quit,
		},
	}
}

// Load reads a TOML file over the defaults
// Empty path returns the defaults unchanged
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := cfg.decode(string(data)); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults and validates the result
func Parse(text string) (Config, error) {
	cfg := Default()
	if err := cfg.decode(text); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(text string) error {
	md, err := toml.Decode(text, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func invalid(field, rule string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalid, field, rule)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks ranges; all failures wrap ErrInvalid
func (c Config) Validate() error {
	switch {
	case c.TicksPerRevolution <= 0:
		return invalid("ticks_per_revolution", "must be > 0")
	case !finite(c.TimeScale) || c.TimeScale <= 0:
		return invalid("time_scale", "must be > 0")
	case !finite(c.MaxFrameDelta) || c.MaxFrameDelta < 0:
		return invalid("max_frame_delta", "must be >= 0")
	case !finite(c.SpinRate):
		return invalid("spin_rate", "must be finite")
	case c.TrailCap < 0:
		return invalid("trail_cap", "must be >= 0")
	case c.FPS <= 0 || c.FPS > 240:
		return invalid("fps", "must be in 1..240")
	case !finite(c.Orbit.InnerRadius) || c.Orbit.InnerRadius <= 0:
		return invalid("orbit.inner_radius", "must be > 0")
	case !finite(c.Orbit.OuterRadius) || c.Orbit.OuterRadius <= 0:
		return invalid("orbit.outer_radius", "must be > 0")
	case !finite(c.Orbit.InnerSpeed):
		return invalid("orbit.inner_speed", "must be finite")
	case !finite(c.Orbit.SpeedRatio) || c.Orbit.SpeedRatio < 0:
		return invalid("orbit.speed_ratio", "must be >= 0")
	case !finite(c.Trail.InnerOffset) || c.Trail.InnerOffset < 0:
		return invalid("trail.inner_offset", "must be >= 0")
	case !finite(c.Trail.OuterOffset) || c.Trail.OuterOffset < 0:
		return invalid("trail.outer_offset", "must be >= 0")
	case !finite(c.Trail.MinLength) || c.Trail.MinLength < 0:
		return invalid("trail.min_length", "must be >= 0")
	case !finite(c.View.Width) || !finite(c.View.Height) || c.View.Width <= 0 || c.View.Height <= 0:
		return invalid("view", "width and height must be > 0")
	}
	if _, err := input.NewKeyTable(c.Bindings()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Bindings converts the [keys] section
func (c Config) Bindings() input.Bindings {
	return input.Bindings{
		Clear:  c.Keys.Clear,
		Pause:  c.Keys.Pause,
		Export: c.Keys.Export,
		Quit:   c.Keys.Quit,
	}
}

// Session converts the configuration into a session setup
func (c Config) Session() engine.SessionConfig {
	ratio := c.Orbit.SpeedRatio
	if ratio == 0 {
		ratio = parameter.SpeedRatio
	}
	inner, outer := physics.GoldenPair(c.Orbit.InnerRadius, c.Orbit.OuterRadius, c.Orbit.InnerSpeed, ratio)

	trail := system.DefaultTrailConfig()
	trail.InnerOffset = c.Trail.InnerOffset
	trail.OuterOffset = c.Trail.OuterOffset
	trail.MinLength = c.Trail.MinLength
	trail.Cap = c.TrailCap

	return engine.SessionConfig{
		Inner:              inner,
		Outer:              outer,
		Center:             r2.Vec{X: c.View.Width / 2, Y: c.View.Height / 2},
		TicksPerRevolution: c.TicksPerRevolution,
		TimeScale:          c.TimeScale,
		MaxFrameDelta:      c.MaxFrameDelta,
		SpinRate:           c.SpinRate,
		Trail:              trail,
	}
}
