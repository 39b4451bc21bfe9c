// Package audio plays short cues for trail events
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/orbit-weave/vmath"
)

const (
	sampleRate = beep.SampleRate(48000)

	chimeFreq     = 880.0
	chimeOvertone = 1320.0
	chimeDuration = 400 * time.Millisecond

	clearFreq     = 160.0
	clearDuration = 120 * time.Millisecond
)

// SoundManager owns the speaker mixer; every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundManager creates a sound manager with linear volume in [0,1]
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: vmath.Clamp(volume, 0, 1),
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences the mixer
// beep has no speaker close, clearing the mixer stops all output
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// PlayChime plays a bright two-tone chime for a completed revolution
func (sm *SoundManager) PlayChime() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s, err := Chime()
	if err != nil {
		return
	}
	sm.add(s)
}

// PlayClear plays a short low blip for a trail clear
func (sm *SoundManager) PlayClear() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s, err := Blip()
	if err != nil {
		return
	}
	sm.add(s)
}

func (sm *SoundManager) add(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(newVolume(s, sm.volume))
	speaker.Unlock()
}

// Chime builds the revolution cue: fundamental plus fifth with exponential decay
func Chime() (beep.Streamer, error) {
	fund, err := generators.SineTone(sampleRate, chimeFreq)
	if err != nil {
		return nil, err
	}
	over, err := generators.SineTone(sampleRate, chimeOvertone)
	if err != nil {
		return nil, err
	}
	n := sampleRate.N(chimeDuration)
	mixed := beep.Mix(
		newVolume(fund, 0.25),
		newVolume(over, 0.1),
	)
	return beep.Take(n, newDecay(mixed, n, 6)), nil
}

// Blip builds the clear cue
func Blip() (beep.Streamer, error) {
	tone, err := generators.SineTone(sampleRate, clearFreq)
	if err != nil {
		return nil, err
	}
	n := sampleRate.N(clearDuration)
	return beep.Take(n, newDecay(newVolume(tone, 0.3), n, 4)), nil
}

// decay applies exp(-rate * t/len) with a short linear attack
type decay struct {
	streamer beep.Streamer
	length   int
	rate     float64
	attack   int
	pos      int
}

func newDecay(s beep.Streamer, length int, rate float64) *decay {
	return &decay{
		streamer: s,
		length:   max(length, 1),
		rate:     rate,
		attack:   sampleRate.N(5 * time.Millisecond),
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := math.Exp(-d.rate * float64(d.pos) / float64(d.length))
		if d.pos < d.attack {
			g *= float64(d.pos) / float64(d.attack)
		}
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume wraps s at linear gain vol; zero is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
