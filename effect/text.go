package effect

import (
	"math/rand/v2"
	"sync"
	"unicode/utf8"

	"github.com/lixenwraith/voidglitch/render"
)

// GlitchGlyphs replace characters of distorted text
const GlitchGlyphs = "!@#$%^&*()_+-=[]{}|;:,.<>?/~`"

const (
	distortChance      = 0.1
	distortGhostLevel  = 0.7
	distortJitterLevel = 0.5
	distortGhostAlpha  = 0.3
)

// jitter offsets in cells, one step per 33ms
var jitterPath = []int{0, -1, 1, -1, 1, 0}

// Distort replaces each rune with a glitch glyph with probability intensity*0.1
// Intensity 0 returns text unchanged
func Distort(text string, intensity float64, r *rand.Rand) string {
	if intensity <= 0 {
		return text
	}
	out := []rune(text)
	for i := range out {
		if r.Float64() < intensity*distortChance {
			out[i] = rune(GlitchGlyphs[r.IntN(len(GlitchGlyphs))])
		}
	}
	return string(out)
}

// DistortedText draws one centered line that degrades with intensity
type DistortedText struct {
	mu      sync.Mutex
	source  string
	current string
	color   render.RGB
}

// NewDistortedText creates a drawer for text
func NewDistortedText(text string) *DistortedText {
	return &DistortedText{source: text, current: text, color: render.RGB{R: 240, G: 240, B: 240}}
}

// SetText changes the source text
func (d *DistortedText) SetText(text string) {
	d.mu.Lock()
	d.source = text
	d.mu.Unlock()
}

// Current returns the last drawn rendition
func (d *DistortedText) Current() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *DistortedText) Draw(buf *render.Buffer, f Frame) {
	d.mu.Lock()
	source := d.source
	d.mu.Unlock()

	shown := Distort(source, f.Intensity, f.Rand)

	d.mu.Lock()
	d.current = shown
	d.mu.Unlock()

	buf.Clear()
	n := utf8.RuneCountInString(source)
	x := (buf.Width() - n) / 2
	y := buf.Height() / 2

	if f.Intensity > distortJitterLevel {
		x += jitterPath[int(f.Millis()/33)%len(jitterPath)]
	}

	if f.Intensity > distortGhostLevel {
		buf.Text(x+1, y, source, render.Blend(render.RGBVoid, render.RGBMagenta, distortGhostAlpha))
		buf.Text(x-1, y, source, render.Blend(render.RGBVoid, render.RGBCyan, distortGhostAlpha))
	}

	buf.Text(x, y, shown, render.HueRotate(d.color, f.Intensity*360))
}
