package engine

import (
	"unicode/utf8"

	"github.com/lixenwraith/voidglitch/constants"
)

// Panel sizes in cells, sized from pixel panels at 8x16 per cell
const (
	terminalCols = 62
	terminalRows = 25
	visualCols   = 50
	visualRows   = 15
	gameCols     = 50
	gameRows     = 28
	neuralCols   = 100
	neuralRows   = 38

	marginCols = 4
	marginRows = 2

	titleRow    = 1
	subtitleRow = 3
	buttonRow   = 5
	errorsRow   = 7
)

// DistressLabel is the clickable distress button text
const DistressLabel = "[ " + constants.DistressButtonText + " ]"

// Rect is a cell rectangle
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell x,y lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Empty reports a zero-area rectangle
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Layout places every fixed element for one screen size
type Layout struct {
	Screen     Rect
	Title      Rect
	Subtitle   Rect
	Button     Rect
	Errors     Rect
	Terminal   Rect
	Visualizer Rect
	Game       Rect
	Neural     Rect
}

// fit shrinks want to the space left after margins
func fit(want, total, margin int) int {
	return max(0, min(want, total-2*margin))
}

// ComputeLayout places panels for a w x h screen: terminal bottom-right,
// visualizer bottom-left, game and neural view centered
func ComputeLayout(w, h int) Layout {
	w, h = max(w, 0), max(h, 0)
	l := Layout{Screen: Rect{0, 0, w, h}}

	l.Title = Rect{0, titleRow, w, 1}
	l.Subtitle = Rect{0, subtitleRow, w, 1}
	bw := utf8.RuneCountInString(DistressLabel)
	l.Button = Rect{(w - bw) / 2, buttonRow, bw, 1}
	l.Errors = Rect{0, errorsRow, w, constants.ErrorLogCap}

	tw, th := fit(terminalCols, w, marginCols), fit(terminalRows, h, marginRows)
	l.Terminal = Rect{w - marginCols - tw, h - marginRows - th, tw, th}

	vw, vh := fit(visualCols, w, marginCols), fit(visualRows, h, marginRows)
	l.Visualizer = Rect{marginCols, h - marginRows - vh, vw, vh}

	gw, gh := fit(gameCols, w, marginCols), fit(gameRows, h, marginRows)
	l.Game = Rect{(w - gw) / 2, (h - gh) / 2, gw, gh}

	nw, nh := fit(neuralCols, w, marginCols), fit(neuralRows, h, marginRows)
	l.Neural = Rect{(w - nw) / 2, (h - nh) / 2, nw, nh}

	if w == 0 || h == 0 {
		l.Button = Rect{}
	}
	return l
}
