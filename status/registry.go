package status

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
)

// Well-known metric keys published by the frame loop
const (
	KeySimTime     = "sim.time"
	KeyFPS         = "sim.fps"
	KeyTick        = "tick.index"
	KeyRevolutions = "tick.revolutions"
	KeySegments    = "trail.segments"
	KeySkipped     = "trail.skipped"
	KeyEvicted     = "trail.evicted"
	KeyPaused      = "sim.paused"
)

// metricMap is a registry for metrics of type T
// Registration takes the lock; cached pointers are lock-free
type metricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func newMetricMap[T any]() *metricMap[T] {
	return &metricMap[T]{items: make(map[string]*T)}
}

// get returns the metric pointer for key, creating if absent
func (m *metricMap[T]) get(key string) *T {
	m.mu.RLock()
	if ptr, ok := m.items[key]; ok {
		m.mu.RUnlock()
		return ptr
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr := new(T)
	m.items[key] = ptr
	return ptr
}

func (m *metricMap[T]) each(fn func(key string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for k, v := range m.items {
		fn(k, v)
	}
}

// Registry holds HUD metrics
// The frame loop caches pointers at startup and writes atomics directly
type Registry struct {
	ints   *metricMap[atomic.Int64]
	floats *metricMap[AtomicFloat]
	bools  *metricMap[atomic.Bool]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		ints:   newMetricMap[atomic.Int64](),
		floats: newMetricMap[AtomicFloat](),
		bools:  newMetricMap[atomic.Bool](),
	}
}

// Int returns the integer metric for key
func (r *Registry) Int(key string) *atomic.Int64 { return r.ints.get(key) }

// Float returns the float metric for key
func (r *Registry) Float(key string) *AtomicFloat { return r.floats.get(key) }

// Bool returns the boolean metric for key
func (r *Registry) Bool(key string) *atomic.Bool { return r.bools.get(key) }

// Entry is one formatted metric
type Entry struct {
	Key   string
	Value string
}

// Snapshot returns all metrics formatted and sorted by key
func (r *Registry) Snapshot() []Entry {
	var out []Entry
	r.ints.each(func(k string, v *atomic.Int64) {
		out = append(out, Entry{Key: k, Value: strconv.FormatInt(v.Load(), 10)})
	})
	r.floats.each(func(k string, v *AtomicFloat) {
		out = append(out, Entry{Key: k, Value: strconv.FormatFloat(v.Get(), 'f', 2, 64)})
	})
	r.bools.each(func(k string, v *atomic.Bool) {
		out = append(out, Entry{Key: k, Value: strconv.FormatBool(v.Load())})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Line formats the snapshot as a single "key=value" line
func (r *Registry) Line() string {
	var s string
	for i, e := range r.Snapshot() {
		if i > 0 {
			s += "  "
		}
		s += fmt.Sprintf("%s=%s", e.Key, e.Value)
	}
	return s
}
