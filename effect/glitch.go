package effect

import (
	"math"

	"github.com/lixenwraith/voidglitch/render"
)

// Glitch background tuning, in canvas pixels where noted
const (
	glitchFadeAlpha  = 0.05
	glitchBlocks     = 5
	glitchBlockMaxW  = 200.0 // px
	glitchBlockMaxH  = 20.0  // px
	glitchBlockAlpha = 0.5
	glitchLines      = 10
)

// GlitchBackground fades toward the void color and, with probability equal to
// intensity, scatters random color blocks and cyan scan lines
type GlitchBackground struct{}

func (GlitchBackground) Draw(buf *render.Buffer, f Frame) {
	w, h := buf.Width(), buf.Height()
	buf.Fade(render.RGBVoid, glitchFadeAlpha)

	r := f.Rand
	if r.Float64() >= f.Intensity {
		return
	}

	for i := 0; i < glitchBlocks; i++ {
		x := int(r.Float64() * float64(w))
		y := int(r.Float64() * float64(h))
		bw := int(math.Ceil(pxToCols(r.Float64() * glitchBlockMaxW)))
		bh := int(math.Ceil(pxToRows(r.Float64() * glitchBlockMaxH)))
		color := render.RGB{
			R: uint8(r.IntN(256)),
			G: uint8(r.IntN(256)),
			B: uint8(r.IntN(256)),
		}
		buf.FillRect(x, y, bw, bh, color, render.BlendAlpha, r.Float64()*glitchBlockAlpha)
	}

	lineAlpha := f.Intensity * 0.5
	for i := 0; i < glitchLines; i++ {
		y := int(r.Float64() * float64(h))
		buf.FillRect(0, y, w, 1, render.RGBCyan, render.BlendAlpha, lineAlpha)
	}
}
