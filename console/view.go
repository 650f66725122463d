package console

import (
	"time"

	"github.com/lixenwraith/voidglitch/constants"
	"github.com/lixenwraith/voidglitch/render"
)

var (
	promptUserColor = render.RGBMagenta
	promptPathColor = render.RGBCyan
	inputColor      = render.RGBYellow
	outputColor     = render.RGB{R: 0, G: 255, B: 0}
	bootColor       = render.RGBCyan
	outputIndent    = 2
)

type styledLine struct {
	segments []segment
}

type segment struct {
	text  string
	color render.RGB
}

func promptSegments(input string) []segment {
	return []segment{
		{constants.PromptUser, promptUserColor},
		{constants.PromptPath + " ", promptPathColor},
		{input, inputColor},
	}
}

// View renders a console into a panel buffer
type View struct {
	console *Console
	boot    *BootSequence
	opened  time.Time
}

// NewView creates a view that starts the boot sequence at opened
func NewView(c *Console, boot *BootSequence, opened time.Time) *View {
	return &View{console: c, boot: boot, opened: opened}
}

// Console returns the viewed console
func (v *View) Console() *Console {
	return v.console
}

// Restart replays the boot sequence from now
func (v *View) Restart(now time.Time) {
	v.opened = now
}

// Draw paints scrollback then the edit line on the bottom row
func (v *View) Draw(buf *render.Buffer, now time.Time) {
	w, h := buf.Width(), buf.Height()
	if w == 0 || h == 0 {
		return
	}
	buf.FillRect(0, 0, w, h, render.RGBBlack, render.BlendAlpha, 0.9)

	var lines []styledLine
	if v.boot != nil {
		if boot, shown := v.boot.At(now.Sub(v.opened)); shown {
			for _, l := range boot {
				lines = append(lines, styledLine{[]segment{{l, bootColor}}})
			}
		}
	}
	for _, e := range v.console.Entries() {
		lines = append(lines, styledLine{promptSegments(e.Input)})
		for _, o := range e.Output {
			lines = append(lines, styledLine{[]segment{{spaces(outputIndent) + o, outputColor}}})
		}
	}

	// Keep the newest lines above the edit row
	rows := h - 1
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	for y, l := range lines {
		x := 0
		for _, s := range l.segments {
			x += buf.Text(x, y, s.text, s.color)
		}
	}

	line, cursor := v.console.Line()
	x := 0
	for _, s := range promptSegments("") {
		x += buf.Text(x, h-1, s.text, s.color)
	}
	buf.Text(x, h-1, line, inputColor)
	buf.Set(x+cursor, h-1, 0, render.RGBBlack, render.RGBCyan, render.BlendReplace, 1)
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
