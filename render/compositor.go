package render

import "sync"

// Priority orders layers back to front
type Priority int

// Layer priorities, lower draws first
const (
	PriorityBackground Priority = 0
	PriorityGrid       Priority = 3
	PriorityGlitch     Priority = 4
	PriorityScene      Priority = 5
	PriorityNeural     Priority = 6
	PriorityVisualizer Priority = 7
	PriorityPanel      Priority = 10
	PriorityOverlay    Priority = 20
)

// Filter post-processes the composed frame
type Filter func(frame *Buffer)

type layerEntry struct {
	layer    *Layer
	priority Priority
	index    int // registration order for stable sort
}

// Compositor flattens registered layers into one frame buffer
type Compositor struct {
	mu       sync.Mutex
	frame    *Buffer
	layers   []layerEntry
	regCount int
}

// NewCompositor creates a compositor for the given frame size
func NewCompositor(width, height int) *Compositor {
	return &Compositor{
		frame:  NewBuffer(width, height),
		layers: make([]layerEntry, 0, 16),
	}
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (c *Compositor) Register(l *Layer, priority Priority) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := layerEntry{
		layer:    l,
		priority: priority,
		index:    c.regCount,
	}
	c.regCount++

	pos := len(c.layers)
	for i, e := range c.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	c.layers = append(c.layers, layerEntry{})
	copy(c.layers[pos+1:], c.layers[pos:])
	c.layers[pos] = entry
}

// Unregister removes a layer
func (c *Compositor) Unregister(l *Layer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.layers {
		if e.layer == l {
			c.layers = append(c.layers[:i], c.layers[i+1:]...)
			return
		}
	}
}

// Resize updates the frame dimensions
func (c *Compositor) Resize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frame.Resize(width, height)
}

// Size returns the frame dimensions
func (c *Compositor) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame.width, c.frame.height
}

// Compose clears the frame, composites all visible layers in priority order,
// then runs filters. The returned buffer is reused by the next call.
func (c *Compositor) Compose(filters ...Filter) *Buffer {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.frame.Clear()
	for _, e := range c.layers {
		e.layer.compositeInto(c.frame)
	}
	for _, f := range filters {
		if f != nil {
			f(c.frame)
		}
	}
	return c.frame
}
