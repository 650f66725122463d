// Package effect implements the procedural drawers layered behind the panels.
// Each drawer paints one render.Layer on its own loop and reads the shared
// intensity when its tick fires.
package effect

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/voidglitch/constants"
	"github.com/lixenwraith/voidglitch/render"
)

// Frame carries the per-tick inputs of a drawer
type Frame struct {
	Now       time.Time
	Elapsed   time.Duration // since the drawer's loop was acquired
	Intensity float64
	Rand      *rand.Rand
}

// Seconds returns Elapsed as float seconds
func (f Frame) Seconds() float64 {
	return f.Elapsed.Seconds()
}

// Millis returns wall-clock milliseconds, the phase source of the wave animations
func (f Frame) Millis() float64 {
	return float64(f.Now.UnixMilli())
}

// Drawer paints one frame into its layer buffer
// Draw is never called with an empty buffer
type Drawer interface {
	Draw(buf *render.Buffer, f Frame)
}

// DrawerFunc adapts a function to Drawer
type DrawerFunc func(buf *render.Buffer, f Frame)

func (fn DrawerFunc) Draw(buf *render.Buffer, f Frame) { fn(buf, f) }

// pxToCols converts canvas pixels to terminal columns
func pxToCols(px float64) float64 {
	return px / constants.CellWidthPx
}

// pxToRows converts canvas pixels to terminal rows
func pxToRows(px float64) float64 {
	return px / constants.CellHeightPx
}

// NewRand returns a seeded PCG source for a drawer
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
}
