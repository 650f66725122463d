package loop

import "sync"

// Group tracks named handles so views can swap or release their loop by name
type Group struct {
	mu      sync.Mutex
	handles map[string]*Handle
}

// NewGroup creates an empty group
func NewGroup() *Group {
	return &Group{handles: make(map[string]*Handle)}
}

// Set installs h under name, releasing any previous handle with that name
func (g *Group) Set(name string, h *Handle) {
	g.mu.Lock()
	prev := g.handles[name]
	g.handles[name] = h
	g.mu.Unlock()

	prev.Stop()
}

// Release stops and forgets the handle under name
func (g *Group) Release(name string) {
	g.mu.Lock()
	h := g.handles[name]
	delete(g.handles, name)
	g.mu.Unlock()

	h.Stop()
}

// Active reports whether name holds a running handle
func (g *Group) Active(name string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.handles[name].Running()
}

// Len returns the number of tracked handles
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.handles)
}

// StopAll releases every handle
func (g *Group) StopAll() {
	g.mu.Lock()
	handles := g.handles
	g.handles = make(map[string]*Handle)
	g.mu.Unlock()

	for _, h := range handles {
		h.Stop()
	}
}
