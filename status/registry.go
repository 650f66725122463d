package status

import (
	"fmt"
	"sync/atomic"
)

// Registry collects loop tick counters, state gauges and source labels
// Loops cache pointers when mounted and write them directly on each tick
type Registry struct {
	counters *family[atomic.Int64]
	gauges   *family[Gauge]
	labels   *family[Label]
}

func NewRegistry() *Registry {
	return &Registry{
		counters: newFamily[atomic.Int64](),
		gauges:   newFamily[Gauge](),
		labels:   newFamily[Label](),
	}
}

// Counter returns the named counter, creating it on first use
func (r *Registry) Counter(name string) *atomic.Int64 {
	return r.counters.get(name)
}

// Gauge returns the named gauge, creating it on first use
func (r *Registry) Gauge(name string) *Gauge {
	return r.gauges.get(name)
}

// Label returns the named label, creating it on first use
func (r *Registry) Label(name string) *Label {
	return r.labels.get(name)
}

// Has reports whether any metric kind holds name
func (r *Registry) Has(name string) bool {
	return r.counters.has(name) || r.gauges.has(name) || r.labels.has(name)
}

func (r *Registry) Len() int {
	return r.counters.len() + r.gauges.len() + r.labels.len()
}

// Lines formats every metric for the debug overlay: counters, then gauges
// with their peak, then labels, each group sorted by name
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.Len())
	r.counters.each(func(name string, c *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s %d", name, c.Load()))
	})
	r.gauges.each(func(name string, g *Gauge) {
		lines = append(lines, fmt.Sprintf("%s %.2f/%.2f", name, g.Get(), g.Peak()))
	})
	r.labels.each(func(name string, l *Label) {
		lines = append(lines, fmt.Sprintf("%s %s", name, l.Load()))
	})
	return lines
}
