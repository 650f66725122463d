package engine

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/lixenwraith/voidglitch/constants"
	"github.com/lixenwraith/voidglitch/loop"
	"github.com/lixenwraith/voidglitch/state"
)

const (
	timerBoot  = "boot"
	timerEvent = "event"
)

// Timers drives the boot transition and the periodic intensity/error events
type Timers struct {
	store *state.Store
	group *loop.Group

	bootDelay     time.Duration
	eventInterval time.Duration

	// rng is shared by the event loop and direct Tick calls
	mu  sync.Mutex
	rng *rand.Rand
}

// NewTimers creates stopped timers writing into store
func NewTimers(store *state.Store, rng *rand.Rand) *Timers {
	return &Timers{
		store:         store,
		group:         loop.NewGroup(),
		bootDelay:     constants.BootDelay,
		eventInterval: constants.EventInterval,
		rng:           rng,
	}
}

// WithIntervals overrides the boot delay and event period
func (t *Timers) WithIntervals(boot, event time.Duration) *Timers {
	t.bootDelay = boot
	t.eventInterval = event
	return t
}

// Start arms the boot timer and the event loop
func (t *Timers) Start() {
	t.Rearm()
	t.group.Set(timerEvent, loop.Every(t.eventInterval, func(time.Time) { t.Tick() }))
}

// Rearm restarts the boot countdown, replacing a pending one
// Must not be called from the boot callback
func (t *Timers) Rearm() {
	t.group.Set(timerBoot, loop.After(t.bootDelay, t.Boot))
}

// Stop releases both timers and waits for in-flight callbacks
func (t *Timers) Stop() {
	t.group.StopAll()
}

// Running reports whether the event loop is held
func (t *Timers) Running() bool {
	return t.group.Active(timerEvent)
}

// Boot applies the boot transition
func (t *Timers) Boot() {
	t.store.Update(state.State.Booted)
}

// Tick applies one event transition
func (t *Timers) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.store.Update(func(s state.State) state.State {
		return s.EventTick(t.rng)
	})
}
