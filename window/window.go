// Package window presents the composed frame in an ebiten window, feeding
// ebiten keyboard and mouse input back into the engine. It also builds for
// js/wasm, where the static server hosts it.
package window

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/lixenwraith/voidglitch/constants"
	"github.com/lixenwraith/voidglitch/engine"
	"github.com/lixenwraith/voidglitch/render"
)

const (
	Title        = "VOID//GLITCH"
	fontSize     = 13.0
	defaultCols  = 140
	defaultRows  = 45
	minCols      = 40
	minRows      = 15
	glyphYOffset = 1.0
)

// Window is the ebiten.Game of the windowed frontend
type Window struct {
	app  *engine.App
	face *text.GoTextFace

	cols, rows int
	cellW      float64
	cellH      float64

	keys  []ebiten.Key
	chars []rune

	mouseX, mouseY int
}

// New loads the Go Mono face and sizes the window for the default grid
func New(app *engine.App) (*Window, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load mono font: %w", err)
	}
	w := &Window{
		app:    app,
		face:   &text.GoTextFace{Source: src, Size: fontSize},
		cellW:  constants.CellWidthPx,
		cellH:  constants.CellHeightPx,
		mouseX: -1,
		mouseY: -1,
	}

	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowSize(int(defaultCols*w.cellW), int(defaultRows*w.cellH))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(int(minCols*w.cellW), int(minRows*w.cellH), -1, -1)
	ebiten.SetTPS(int(time.Second / constants.FrameUpdateInterval))
	return w, nil
}

// Run blocks in the ebiten loop until quit or window close
func (w *Window) Run() error {
	return ebiten.RunGame(w)
}

func (w *Window) Update() error {
	w.keys = inpututil.AppendJustPressedKeys(w.keys[:0])
	w.chars = ebiten.AppendInputChars(w.chars[:0])
	for _, k := range translate(w.keys, w.chars, modifiers()) {
		if !w.app.HandleKey(k) {
			return ebiten.Termination
		}
	}

	px, py := ebiten.CursorPosition()
	cx, cy := int(float64(px)/w.cellW), int(float64(py)/w.cellH)
	click := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	if click || cx != w.mouseX || cy != w.mouseY {
		w.mouseX, w.mouseY = cx, cy
		w.app.HandleMouse(cx, cy, click)
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	frame := w.app.Frame(time.Now())
	screen.Fill(color.Black)

	for y := 0; y < frame.Height(); y++ {
		for x := 0; x < frame.Width(); x++ {
			c, _ := frame.Get(x, y)
			if c.Bg != render.RGBBlack {
				vector.DrawFilledRect(screen,
					float32(float64(x)*w.cellW), float32(float64(y)*w.cellH),
					float32(w.cellW), float32(w.cellH), rgba(c.Bg), false)
			}
		}
		w.drawRow(screen, frame, y)
	}
}

// drawRow draws runs of same-colored glyphs with one text.Draw each
func (w *Window) drawRow(screen *ebiten.Image, frame *render.Buffer, y int) {
	var run []rune
	var runFg render.RGB
	runX := 0

	flush := func() {
		if len(run) == 0 {
			return
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(runX)*w.cellW, float64(y)*w.cellH+glyphYOffset)
		op.ColorScale.ScaleWithColor(rgba(runFg))
		text.Draw(screen, string(run), w.face, op)
		run = run[:0]
	}

	for x := 0; x < frame.Width(); x++ {
		c, _ := frame.Get(x, y)
		if c.Rune == 0 || c.Rune == ' ' {
			flush()
			continue
		}
		if len(run) > 0 && c.Fg != runFg {
			flush()
		}
		if len(run) == 0 {
			runX, runFg = x, c.Fg
		}
		run = append(run, c.Rune)
	}
	flush()
}

// Layout maps the window to a cell grid and resizes the engine when it changes
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	cols := max(1, int(float64(outsideWidth)/w.cellW))
	rows := max(1, int(float64(outsideHeight)/w.cellH))
	if cols != w.cols || rows != w.rows {
		w.cols, w.rows = cols, rows
		w.app.Resize(cols, rows)
	}
	return outsideWidth, outsideHeight
}

func rgba(c render.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
