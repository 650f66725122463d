package engine

import (
	"github.com/lixenwraith/voidglitch/audio"
	"github.com/lixenwraith/voidglitch/constants"
	"github.com/lixenwraith/voidglitch/effect"
	"github.com/lixenwraith/voidglitch/input"
	"github.com/lixenwraith/voidglitch/state"
)

// HandleKey routes one key press. Bound keys run their action; anything else
// edits the terminal line while the terminal is open.
// Returns false when the key requested quit.
func (a *App) HandleKey(k input.Key) bool {
	a.registry.Counter("input.keys").Add(1)
	switch a.keys.Dispatch(k) {
	case input.ActionQuit:
		return false
	case input.ActionNone:
		if a.store.Snapshot().Panels[state.PanelTerminal] {
			a.editLine(k)
		}
	}
	return true
}

// Keys exposes the dispatcher for keymap swaps
func (a *App) Keys() *input.Dispatcher {
	return a.keys
}

func (a *App) editLine(k input.Key) {
	c := a.console
	switch k.Code {
	case input.KeyRune:
		if k.Mod&(input.ModCtrl|input.ModAlt|input.ModMeta) == 0 {
			c.Insert(k.Rune)
		}
	case input.KeyEnter:
		c.Submit()
	case input.KeyBackspace:
		c.Backspace()
	case input.KeyLeft:
		c.CursorLeft()
	case input.KeyRight:
		c.CursorRight()
	case input.KeyUp:
		c.HistoryUp()
	case input.KeyDown:
		c.HistoryDown()
	}
}

// HandleMouse moves the scene pointer and the hover targets to cell x,y.
// click reports a primary button press at that cell.
func (a *App) HandleMouse(x, y int, click bool) {
	lay := a.Layout()
	w, h := lay.Screen.W, lay.Screen.H
	if w == 0 || h == 0 {
		return
	}
	a.scene.SetPointer(float64(x)/float64(w)*2-1, -(float64(y)/float64(h))*2+1)

	if click && lay.Button.Contains(x, y) {
		a.Distress()
		return
	}

	panels := a.store.Snapshot().Panels
	if panels[state.PanelAudio] {
		a.mouseVisualizer(lay.Visualizer, x, y, click)
	}
	if panels[state.PanelGame] {
		a.mouseGame(lay.Game, x, y, click)
	}
}

func (a *App) mouseVisualizer(r Rect, x, y int, click bool) {
	inside := r.Contains(x, y)

	a.mu.Lock()
	entered := inside && !a.hovering
	a.hovering = inside
	pulse := entered && a.rng.Float64() < constants.HoverPulseChance
	a.mu.Unlock()

	if pulse {
		a.play(audio.SoundPulse)
	}
	if !inside || !click {
		return
	}
	switch a.visualizer.ButtonAt(x-r.X, y-r.Y) {
	case effect.ButtonGlitch:
		a.play(audio.SoundGlitch)
	case effect.ButtonError:
		a.play(audio.SoundError)
	}
}

func (a *App) mouseGame(r Rect, x, y int, click bool) {
	bx, by, ok := a.gameView.CellToBoard(x-r.X, y-r.Y, r.W, r.H)
	if !ok {
		a.board.Hover(-constants.GameBoardSize, -constants.GameBoardSize)
		return
	}
	id := a.board.Hover(bx, by)
	if click && id >= 0 {
		a.board.Clean(id)
	}
}
