package state

import "sync"

// Store owns the current State. Loops apply pure transitions through Update
// and read snapshots; no component keeps a private copy of shared values.
type Store struct {
	mu       sync.RWMutex
	current  State
	version  uint64
	watchers []func(prev, next State)
}

// NewStore creates a store holding initial
func NewStore(initial State) *Store {
	return &Store{current: initial}
}

// Snapshot returns the current state
func (st *Store) Snapshot() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Intensity returns the current intensity
func (st *Store) Intensity() float64 {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current.Intensity
}

// Version increments on every Update
func (st *Store) Version() uint64 {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.version
}

// Update applies fn to the current state and returns the result.
// Watchers run after the lock is released, in registration order.
func (st *Store) Update(fn func(State) State) State {
	st.mu.Lock()
	prev := st.current
	next := fn(prev)
	next.Intensity = Clamp(next.Intensity)
	st.current = next
	st.version++
	watchers := st.watchers
	st.mu.Unlock()

	for _, w := range watchers {
		w(prev, next)
	}
	return next
}

// Watch registers fn to observe every transition
func (st *Store) Watch(fn func(prev, next State)) {
	st.mu.Lock()
	st.watchers = append(st.watchers, fn)
	st.mu.Unlock()
}
