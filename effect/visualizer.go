package effect

import (
	"math"
	"sync"
	"time"

	"github.com/lixenwraith/voidglitch/render"
)

// SpectrumSource supplies byte-scaled frequency bins
// The returned slice is owned by the source and valid until the next call
type SpectrumSource interface {
	Spectrum(now time.Time, intensity float64) []uint8
	Live() bool
}

// Button identifies a visualizer control
type Button int

const (
	ButtonNone Button = iota
	ButtonGlitch
	ButtonError
)

const (
	LabelLive      = "AUDIO INPUT ACTIVE"
	LabelSynthetic = "SYNTHETIC AUDIO"

	visualizerFadeAlpha = 0.2
	visualizerBarScale  = 0.8
	visualizerBarWidth  = 2.5
)

var barGlyphs = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

type buttonRect struct {
	button Button
	x, y   int
	w      int
}

// Visualizer draws spectrum bars with a waveform overlay, a source label
// on the first row and the sound buttons on the last row
type Visualizer struct {
	mu      sync.Mutex
	source  SpectrumSource
	buttons []buttonRect
}

// NewVisualizer creates a visualizer reading from src
func NewVisualizer(src SpectrumSource) *Visualizer {
	return &Visualizer{source: src}
}

// SetSource swaps the spectrum source
func (v *Visualizer) SetSource(src SpectrumSource) {
	v.mu.Lock()
	v.source = src
	v.mu.Unlock()
}

// Source returns the active spectrum source
func (v *Visualizer) Source() SpectrumSource {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.source
}

// Label returns the source caption
func (v *Visualizer) Label() string {
	if src := v.Source(); src != nil && src.Live() {
		return LabelLive
	}
	return LabelSynthetic
}

// ButtonAt hit-tests layer-local cell coordinates against the last drawn buttons
func (v *Visualizer) ButtonAt(x, y int) Button {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, b := range v.buttons {
		if y == b.y && x >= b.x && x < b.x+b.w {
			return b.button
		}
	}
	return ButtonNone
}

// barColor is the vertical gradient hue -> cyan -> magenta, t=0 at bar top
func barColor(hue, t float64) render.RGB {
	top := render.HSL(hue, 1, 0.5)
	if t < 0.5 {
		return render.Lerp(top, render.RGBCyan, t*2)
	}
	return render.Lerp(render.RGBCyan, render.RGBMagenta, (t-0.5)*2)
}

func (v *Visualizer) Draw(buf *render.Buffer, f Frame) {
	w, h := buf.Width(), buf.Height()
	src := v.Source()

	buf.Fade(render.RGBVoid, visualizerFadeAlpha)

	// Header and footer rows are solid
	buf.FillRect(0, 0, w, 1, render.RGBBlack, render.BlendReplace, 1)
	buf.FillRect(0, h-1, w, 1, render.RGBBlack, render.BlendReplace, 1)
	buf.Text(0, 0, v.Label(), render.RGBCyan)

	hueShift := f.Intensity * 360
	top, rows := 1, h-2
	if rows > 0 && src != nil {
		data := src.Spectrum(f.Now, f.Intensity)
		n := len(data)
		if n > 0 {
			v.drawBars(buf, data, top, rows, hueShift)
			v.drawWave(buf, data, top, rows, hueShift)
		}
	}

	v.drawButtons(buf, h-1)
}

func (v *Visualizer) drawBars(buf *render.Buffer, data []uint8, top, rows int, hueShift float64) {
	w := buf.Width()
	n := len(data)
	bw := float64(w) / float64(n) * visualizerBarWidth
	gap := 1.0 / 8 // one canvas px

	x := 0.0
	for i := 0; i < n && int(x) < w; i++ {
		hue := float64(i) * 360 / float64(n)
		height := float64(data[i]) / 255 * float64(rows) * visualizerBarScale
		full := int(height)
		frac := int((height - float64(full)) * 8)

		x0 := int(x)
		x1 := max(x0+1, int(x+bw))
		for col := x0; col < x1 && col < w; col++ {
			for r := 0; r <= full && r < rows; r++ {
				glyph := barGlyphs[8]
				if r == full {
					if frac == 0 {
						break
					}
					glyph = barGlyphs[frac]
				}
				y := top + rows - 1 - r
				t := 0.0
				if height > 0 {
					t = 1 - float64(r)/height
				}
				buf.SetFg(col, y, glyph, render.HueRotate(barColor(hue, math.Max(0, t)), hueShift))
			}
		}
		x += bw + gap
	}
}

func (v *Visualizer) drawWave(buf *render.Buffer, data []uint8, top, rows int, hueShift float64) {
	w := buf.Width()
	n := len(data)
	color := render.HueRotate(render.RGBCyan, hueShift)

	var px, py int
	for i := 0; i < n; i++ {
		x := i * w / n
		y := top + int(float64(data[i])/255*float64(rows)/2)
		if i > 0 {
			render.Line(px, py, x, y, func(lx, ly int) {
				buf.SetFg(lx, ly, '•', color)
			})
		}
		px, py = x, y
	}
}

func (v *Visualizer) drawButtons(buf *render.Buffer, y int) {
	labels := []struct {
		b    Button
		text string
	}{
		{ButtonGlitch, "[GLITCH]"},
		{ButtonError, "[ERROR]"},
	}

	rects := make([]buttonRect, 0, len(labels))
	x := 0
	for _, l := range labels {
		n := buf.TextBg(x, y, l.text, render.RGBMagenta, render.RGBDarkGray)
		rects = append(rects, buttonRect{button: l.b, x: x, y: y, w: n})
		x += n + 2
	}

	v.mu.Lock()
	v.buttons = rects
	v.mu.Unlock()
}
