package status

import (
	"maps"
	"math"
	"slices"
	"sync"
	"sync/atomic"
)

// LabelWidth caps label values so the debug overlay stays on one line
const LabelWidth = 32

// Gauge holds the latest float64 sample and the highest one seen
// Zero value reads 0
type Gauge struct {
	cur  atomic.Uint64
	peak atomic.Uint64
}

// Set records v and raises the peak when exceeded
func (g *Gauge) Set(v float64) {
	g.cur.Store(math.Float64bits(v))
	for {
		old := g.peak.Load()
		if math.Float64frombits(old) >= v {
			return
		}
		if g.peak.CompareAndSwap(old, math.Float64bits(v)) {
			return
		}
	}
}

// Get returns the latest sample
func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.cur.Load())
}

// Peak returns the highest sample since creation
func (g *Gauge) Peak() float64 {
	return math.Float64frombits(g.peak.Load())
}

// Label is a short string readable from any goroutine
type Label struct {
	ptr atomic.Pointer[string]
}

// Store replaces the value, cut to LabelWidth bytes
func (l *Label) Store(v string) {
	if len(v) > LabelWidth {
		v = v[:LabelWidth]
	}
	l.ptr.Store(&v)
}

func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

// family maps names to lazily created metrics of one kind
// Callers keep the returned pointer and write it without the lock
type family[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func newFamily[T any]() *family[T] {
	return &family[T]{items: make(map[string]*T)}
}

func (f *family[T]) get(name string) *T {
	f.mu.RLock()
	p, ok := f.items[name]
	f.mu.RUnlock()
	if ok {
		return p
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.items[name]; ok {
		return p
	}
	p = new(T)
	f.items[name] = p
	return p
}

func (f *family[T]) has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.items[name]
	return ok
}

func (f *family[T]) len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.items)
}

// each visits metrics in name order
func (f *family[T]) each(fn func(name string, p *T)) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, name := range slices.Sorted(maps.Keys(f.items)) {
		fn(name, f.items[name])
	}
}
