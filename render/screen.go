package render

import (
	"github.com/gdamore/tcell/v2"
)

// TermScreen writes composed frames to a tcell screen
type TermScreen struct {
	screen tcell.Screen
}

// NewTermScreen wraps an initialized tcell screen
func NewTermScreen(screen tcell.Screen) *TermScreen {
	return &TermScreen{screen: screen}
}

// Screen returns the wrapped tcell screen
func (t *TermScreen) Screen() tcell.Screen {
	return t.screen
}

// Size returns the terminal dimensions
func (t *TermScreen) Size() (int, int) {
	return t.screen.Size()
}

// Show flushes buf to the terminal
func (t *TermScreen) Show(buf *Buffer) {
	for y := 0; y < buf.height; y++ {
		row := y * buf.width
		for x := 0; x < buf.width; x++ {
			c := buf.cells[row+x]
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(c.Fg.R), int32(c.Fg.G), int32(c.Fg.B))).
				Background(tcell.NewRGBColor(int32(c.Bg.R), int32(c.Bg.G), int32(c.Bg.B)))
			t.screen.SetContent(x, y, r, nil, style)
		}
	}
	t.screen.Show()
}

// Sync forces a full redraw after resize
func (t *TermScreen) Sync() {
	t.screen.Sync()
}
