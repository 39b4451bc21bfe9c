package system

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/orbit-weave/parameter"
)

// Segment is one recorded connecting line, immutable once appended
type Segment struct {
	Start, End r2.Vec
	ColorStart color.RGBA
	ColorEnd   color.RGBA
	Tick       int // quantizer index that produced it
}

// TrailConfig holds the recorder's fixed geometry and colors
type TrailConfig struct {
	InnerOffset float64
	OuterOffset float64
	MinLength   float64

	// Cap > 0 evicts the oldest segment once reached, 0 keeps everything
	Cap int

	ColorStart color.RGBA
	ColorEnd   color.RGBA
	LiveStart  color.RGBA
	LiveEnd    color.RGBA
}

// DefaultTrailConfig returns the stock offsets, threshold and colors
func DefaultTrailConfig() TrailConfig {
	return TrailConfig{
		InnerOffset: parameter.InnerOffset,
		OuterOffset: parameter.OuterOffset,
		MinLength:   parameter.MinSegmentLength,
		Cap:         parameter.TrailCap,
		ColorStart:  parameter.TrailColorStart,
		ColorEnd:    parameter.TrailColorEnd,
		LiveStart:   parameter.LiveColorStart,
		LiveEnd:     parameter.LiveColorEnd,
	}
}

// Shorten trims the inner→outer line at both ends so it clears the body glyphs
// ok is false when the bodies are within minLength of each other
func Shorten(inner, outer r2.Vec, innerOffset, outerOffset, minLength float64) (start, end r2.Vec, ok bool) {
	d := r2.Sub(outer, inner)
	length := r2.Norm(d)
	if length <= minLength {
		return r2.Vec{}, r2.Vec{}, false
	}
	start = r2.Add(inner, r2.Scale(innerOffset/length, d))
	end = r2.Sub(outer, r2.Scale(outerOffset/length, d))
	return start, end, true
}

// TrailRecorder owns the ordered trail history
// Single writer; readers get a capacity-clipped view
type TrailRecorder struct {
	cfg TrailConfig

	segments []Segment
	head     int       // oldest slot once the ring is full
	view     []Segment // ordered scratch for ring reads

	lastTick   int
	appended   int
	skipped    int
	evicted    int
	generation uint64
}

// NewTrailRecorder creates an empty recorder
func NewTrailRecorder(cfg TrailConfig) *TrailRecorder {
	if cfg.Cap < 0 {
		cfg.Cap = 0
	}
	r := &TrailRecorder{
		cfg:      cfg,
		lastTick: NoTick,
	}
	if cfg.Cap > 0 {
		r.segments = make([]Segment, 0, cfg.Cap)
	}
	return r
}

// Config returns the recorder configuration
func (r *TrailRecorder) Config() TrailConfig {
	return r.cfg
}

// OnTick records the shortened inner→outer segment for tick
// Returns false for degenerate geometry or a repeat of the previous tick
// A degenerate tick still counts as observed for the repeat check
func (r *TrailRecorder) OnTick(tick int, inner, outer r2.Vec) (Segment, bool) {
	if tick == r.lastTick {
		return Segment{}, false
	}

	r.lastTick = tick

	start, end, ok := Shorten(inner, outer, r.cfg.InnerOffset, r.cfg.OuterOffset, r.cfg.MinLength)
	if !ok {
		r.skipped++
		return Segment{}, false
	}

	seg := Segment{
		Start:      start,
		End:        end,
		ColorStart: r.cfg.ColorStart,
		ColorEnd:   r.cfg.ColorEnd,
		Tick:       tick,
	}
	r.push(seg)
	r.appended++
	return seg, true
}

func (r *TrailRecorder) push(seg Segment) {
	if r.cfg.Cap == 0 || len(r.segments) < r.cfg.Cap {
		r.segments = append(r.segments, seg)
		return
	}
	r.segments[r.head] = seg
	r.head = (r.head + 1) % r.cfg.Cap
	r.evicted++
}

// Live returns the bright current connecting line without recording it
func (r *TrailRecorder) Live(inner, outer r2.Vec) (Segment, bool) {
	start, end, ok := Shorten(inner, outer, r.cfg.InnerOffset, r.cfg.OuterOffset, r.cfg.MinLength)
	if !ok {
		return Segment{}, false
	}
	return Segment{
		Start:      start,
		End:        end,
		ColorStart: r.cfg.LiveStart,
		ColorEnd:   r.cfg.LiveEnd,
		Tick:       NoTick,
	}, true
}

// Segments returns the history oldest first
// The slice is read-only and valid until the next OnTick or Clear
func (r *TrailRecorder) Segments() []Segment {
	n := len(r.segments)
	if r.head == 0 {
		return r.segments[:n:n]
	}
	r.view = append(r.view[:0], r.segments[r.head:]...)
	r.view = append(r.view, r.segments[:r.head]...)
	return r.view[:n:n]
}

// Len returns the number of retained segments
func (r *TrailRecorder) Len() int {
	return len(r.segments)
}

// Appended returns segments recorded since the last Clear, evicted ones included
func (r *TrailRecorder) Appended() int {
	return r.appended
}

// Skipped returns degenerate ticks since the last Clear
func (r *TrailRecorder) Skipped() int {
	return r.skipped
}

// Evicted returns segments dropped by the cap since the last Clear
func (r *TrailRecorder) Evicted() int {
	return r.evicted
}

// Generation changes on every Clear
func (r *TrailRecorder) Generation() uint64 {
	return r.generation
}

// Clear empties the history and keeps the backing array
func (r *TrailRecorder) Clear() {
	clear(r.segments)
	r.segments = r.segments[:0]
	r.view = r.view[:0]
	r.head = 0
	r.lastTick = NoTick
	r.appended = 0
	r.skipped = 0
	r.evicted = 0
	r.generation++
}
