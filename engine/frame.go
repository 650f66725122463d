package engine

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lixenwraith/voidglitch/render"
	"github.com/lixenwraith/voidglitch/state"
)

const (
	meterWidth      = 20
	godModePeriod   = 2 * time.Second
	shakeRowChance  = 0.3
	shakeMaxOffset  = 2
	keyHints        = "^G distort  ^T term  ^A audio  ^P game  ^N neural  ^R reboot  Esc stop  ^Q quit"
	distressBgAlpha = 0.8
)

var (
	buttonBg   = render.RGB{R: 153, G: 0, B: 0}
	errorColor = render.RGB{R: 255, G: 68, B: 68}
)

// Frame redraws the per-frame panels and returns the composed screen.
// The buffer is reused by the next call.
func (a *App) Frame(now time.Time) *render.Buffer {
	snap := a.store.Snapshot()
	lay := a.Layout()

	a.hudLayer.Draw(func(buf *render.Buffer) {
		buf.Clear()
		a.drawHUD(buf, snap, lay)
	})
	if snap.Panels[state.PanelTerminal] {
		a.terminalLayer.Draw(func(buf *render.Buffer) {
			buf.Clear()
			a.consoleView.Draw(buf, now)
		})
	}
	if snap.Panels[state.PanelGame] {
		a.gameLayer.Draw(func(buf *render.Buffer) {
			buf.Clear()
			a.gameView.Draw(buf)
		})
	}

	a.registry.Counter("frames").Add(1)

	var filters []render.Filter
	if snap.GodMode(now) {
		filters = append(filters, rainbow(now))
	}
	if snap.Glitching(now) {
		filters = append(filters, a.shake)
	}
	return a.comp.Compose(filters...)
}

func (a *App) drawHUD(buf *render.Buffer, s state.State, lay Layout) {
	if buf.Empty() {
		return
	}
	w, h := buf.Width(), buf.Height()

	// Intensity meter
	x := buf.Text(0, 0, fmt.Sprintf("INTENSITY %3.0f%% ", s.Intensity*100), render.RGBGray)
	filled := int(s.Intensity*meterWidth + 0.5)
	meterColor := render.Lerp(render.RGBGreen, render.RGBRed, s.Intensity)
	buf.Text(x, 0, strings.Repeat("█", filled), meterColor)
	buf.Text(x+filled, 0, strings.Repeat("░", meterWidth-filled), render.RGBDarkGray)
	if s.Panels[state.PanelGame] {
		buf.Text(x+meterWidth+2, 0, fmt.Sprintf("SCORE %d", s.Score), render.RGBYellow)
	}

	if !lay.Button.Empty() {
		buf.FillRect(lay.Button.X, lay.Button.Y, lay.Button.W, 1, buttonBg, render.BlendAlpha, distressBgAlpha)
		buf.Text(lay.Button.X, lay.Button.Y, DistressLabel, render.RGBWhite)
	}

	for i, msg := range s.Errors.Entries() {
		buf.Text((w-utf8.RuneCountInString(msg))/2, lay.Errors.Y+i, msg, errorColor)
	}

	buf.Text(0, h-1, keyHints, render.RGBDarkGray)

	if a.opts.Debug {
		for i, line := range a.registry.Lines() {
			if i >= h-2 {
				break
			}
			buf.Text(w-utf8.RuneCountInString(line), i+1, line, render.RGBDimGreen)
		}
	}
}

// rainbow rotates every cell hue, a full turn per godModePeriod
func rainbow(now time.Time) render.Filter {
	deg := float64(now.UnixMilli()%godModePeriod.Milliseconds()) / float64(godModePeriod.Milliseconds()) * 360
	return func(frame *render.Buffer) {
		frame.Each(func(_, _ int, c *render.Cell) {
			c.Fg = render.HueRotate(c.Fg, deg)
			c.Bg = render.HueRotate(c.Bg, deg)
		})
	}
}

// shake offsets random rows sideways
func (a *App) shake(frame *render.Buffer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for y := 0; y < frame.Height(); y++ {
		if a.rng.Float64() < shakeRowChance {
			frame.ShiftRow(y, a.rng.IntN(2*shakeMaxOffset+1)-shakeMaxOffset)
		}
	}
}
