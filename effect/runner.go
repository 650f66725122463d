package effect

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/voidglitch/loop"
	"github.com/lixenwraith/voidglitch/render"
)

// OpacityFunc animates a layer's composite alpha
type OpacityFunc func(elapsed time.Duration, intensity float64) float64

// Runner binds a drawer to a layer and a scoped loop
type Runner struct {
	name      string
	drawer    Drawer
	layer     *render.Layer
	interval  time.Duration
	intensity func() float64
	opacity   OpacityFunc
	ticks     *atomic.Int64

	// rng is owned by whichever goroutine calls Step; the loop serializes ticks
	rng *rand.Rand

	mu      sync.Mutex
	handle  *loop.Handle
	started time.Time
}

// NewRunner creates a stopped runner
func NewRunner(name string, d Drawer, layer *render.Layer, interval time.Duration, intensity func() float64, rng *rand.Rand) *Runner {
	if rng == nil {
		rng = NewRand(uint64(time.Now().UnixNano()))
	}
	layer.SetVisible(false)
	return &Runner{
		name:      name,
		drawer:    d,
		layer:     layer,
		interval:  interval,
		intensity: intensity,
		rng:       rng,
	}
}

// WithOpacity sets the layer opacity animation
func (r *Runner) WithOpacity(fn OpacityFunc) *Runner {
	r.opacity = fn
	return r
}

// WithCounter counts ticks into an external metric
func (r *Runner) WithCounter(c *atomic.Int64) *Runner {
	r.ticks = c
	return r
}

// Name returns the runner name
func (r *Runner) Name() string {
	return r.name
}

// Layer returns the layer the runner draws into
func (r *Runner) Layer() *render.Layer {
	return r.layer
}

// Start acquires the loop and shows the layer. No-op if running.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handle != nil && r.handle.Running() {
		return
	}
	r.started = time.Now()
	r.layer.SetVisible(true)
	r.handle = loop.Every(r.interval, r.Step)
}

// Stop releases the loop and hides the layer. Waits for an in-flight tick.
func (r *Runner) Stop() {
	r.mu.Lock()
	h := r.handle
	r.handle = nil
	r.mu.Unlock()

	h.Stop()
	r.layer.SetVisible(false)
}

// Running reports whether the loop is held
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handle != nil && r.handle.Running()
}

// Step runs one tick synchronously
func (r *Runner) Step(now time.Time) {
	r.mu.Lock()
	started := r.started
	r.mu.Unlock()
	if started.IsZero() {
		started = now
	}

	f := Frame{
		Now:       now,
		Elapsed:   now.Sub(started),
		Intensity: r.intensity(),
		Rand:      r.rng,
	}

	drawn := false
	r.layer.Draw(func(buf *render.Buffer) {
		if buf.Empty() {
			return
		}
		r.drawer.Draw(buf, f)
		drawn = true
	})
	if !drawn {
		return
	}

	if r.opacity != nil {
		r.layer.SetOpacity(r.opacity(f.Elapsed, f.Intensity))
	}
	if r.ticks != nil {
		r.ticks.Add(1)
	}
}

// TrianglePulse oscillates linearly lo -> hi -> lo over period
func TrianglePulse(lo, hi float64, period time.Duration) OpacityFunc {
	return func(elapsed time.Duration, _ float64) float64 {
		if period <= 0 {
			return lo
		}
		phase := float64(elapsed%period) / float64(period)
		if phase < 0.5 {
			return lo + (hi-lo)*phase*2
		}
		return hi - (hi-lo)*(phase-0.5)*2
	}
}

// FadeIn ramps from 0 to target over d, then holds
func FadeIn(target float64, d time.Duration) OpacityFunc {
	return func(elapsed time.Duration, _ float64) float64 {
		if d <= 0 || elapsed >= d {
			return target
		}
		return target * float64(elapsed) / float64(d)
	}
}
