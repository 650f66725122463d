package render

import (
	"math"
	"sync"
	"sync/atomic"
)

// Layer is a buffer owned by one drawer and placed on the frame
// Draw and Composite serialize on the layer mutex
type Layer struct {
	mu      sync.Mutex
	buf     *Buffer
	x, y    int
	mode    BlendMode
	opacity atomic.Uint64
	visible atomic.Bool
}

// NewLayer creates a visible, fully opaque layer
func NewLayer(mode BlendMode) *Layer {
	l := &Layer{
		buf:  NewBuffer(0, 0),
		mode: mode,
	}
	l.SetOpacity(1)
	l.visible.Store(true)
	return l
}

// SetBounds moves and resizes the layer, clearing it on size change
func (l *Layer) SetBounds(x, y, w, h int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.x, l.y = x, y
	if l.buf.width != w || l.buf.height != h {
		l.buf.Resize(w, h)
	}
}

// Bounds returns the layer origin and size
func (l *Layer) Bounds() (x, y, w, h int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.x, l.y, l.buf.width, l.buf.height
}

// Draw runs fn with exclusive access to the layer buffer
func (l *Layer) Draw(fn func(buf *Buffer)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.buf)
}

// SetOpacity sets the composite alpha, clamped to [0,1]
func (l *Layer) SetOpacity(a float64) {
	a = math.Max(0, math.Min(1, a))
	l.opacity.Store(math.Float64bits(a))
}

// Opacity returns the composite alpha
func (l *Layer) Opacity() float64 {
	return math.Float64frombits(l.opacity.Load())
}

// SetVisible shows or hides the layer
func (l *Layer) SetVisible(v bool) {
	l.visible.Store(v)
}

// Visible reports whether the layer is composited
func (l *Layer) Visible() bool {
	return l.visible.Load()
}

// compositeInto draws the layer onto dst
func (l *Layer) compositeInto(dst *Buffer) {
	if !l.Visible() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	dst.Composite(l.buf, l.x, l.y, l.mode, l.Opacity())
}
