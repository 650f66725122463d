// Package loop provides scoped loop handles for timers and animation loops.
// A handle is acquired when a view starts drawing and released when it is
// removed; release waits for the loop goroutine so no tick runs afterwards.
package loop

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/voidglitch/core"
)

// Handle owns one loop goroutine
type Handle struct {
	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
	ticks    atomic.Uint64
}

func newHandle() *Handle {
	h := &Handle{
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
	h.running.Store(true)
	return h
}

func (h *Handle) finish() {
	h.running.Store(false)
	close(h.done)
}

// stopped reports a pending stop without blocking
func (h *Handle) stopped() bool {
	select {
	case <-h.stopChan:
		return true
	default:
		return false
	}
}

// Every calls fn on each interval tick until the handle is stopped
func Every(interval time.Duration, fn func(now time.Time)) *Handle {
	h := newHandle()
	core.Go(func() {
		defer h.finish()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-h.stopChan:
				return
			case now := <-ticker.C:
				// Stop may race a ready tick; stop wins
				if h.stopped() {
					return
				}
				fn(now)
				h.ticks.Add(1)
			}
		}
	})
	return h
}

// After calls fn once after d unless the handle is stopped first
func After(d time.Duration, fn func()) *Handle {
	h := newHandle()
	core.Go(func() {
		defer h.finish()

		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-h.stopChan:
			return
		case <-timer.C:
			if h.stopped() {
				return
			}
			fn()
			h.ticks.Add(1)
		}
	})
	return h
}

// Stop releases the loop and waits for its goroutine to exit.
// Safe to call repeatedly and on a nil handle. Must not be called from the
// handle's own callback.
func (h *Handle) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() {
		close(h.stopChan)
	})
	<-h.done
}

// Running returns true until the loop goroutine exits
func (h *Handle) Running() bool {
	return h != nil && h.running.Load()
}

// Ticks returns the number of completed callbacks
func (h *Handle) Ticks() uint64 {
	if h == nil {
		return 0
	}
	return h.ticks.Load()
}

// Done is closed once the loop goroutine has exited
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
