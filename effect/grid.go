package effect

import (
	"math"

	"github.com/lixenwraith/voidglitch/constants"
	"github.com/lixenwraith/voidglitch/render"
)

const (
	gridLineAlpha    = 0.2
	gridRayAlpha     = 0.8
	gridRingSpacing  = 50.0 // px
	gridWaveAmp      = 10.0 // px
	gridAngleStep    = 0.1
	gridTimeStep     = 0.02
	gridGlitchChance = 0.05
)

// CyberGrid draws radial spokes and wavy concentric rings around the center
type CyberGrid struct {
	t float64
}

// Time returns the wave phase accumulator
func (g *CyberGrid) Time() float64 {
	return g.t
}

func (g *CyberGrid) Draw(buf *render.Buffer, f Frame) {
	buf.Clear()

	w, h := buf.Width(), buf.Height()
	cx, cy := float64(w)/2, float64(h)/2
	maxRadius := math.Max(float64(w)*constants.CellWidthPx, float64(h)*constants.CellHeightPx)

	plot := func(x, y int) {
		buf.SetBg(x, y, render.RGBCyan, render.BlendAlpha, gridLineAlpha)
	}

	// Radial lines every pi/12
	for i := 0; i < 24; i++ {
		angle := float64(i) * math.Pi / 12
		ex := cx + pxToCols(math.Cos(angle)*maxRadius)
		ey := cy + pxToRows(math.Sin(angle)*maxRadius)
		render.Line(int(cx), int(cy), int(ex), int(ey), plot)
	}

	// Concentric rings with wave offset
	for radius := gridRingSpacing; radius < maxRadius; radius += gridRingSpacing {
		var px, py int
		first := true
		for angle := 0.0; angle <= math.Pi*2+gridAngleStep; angle += gridAngleStep {
			wave := math.Sin(angle*4+g.t) * gridWaveAmp
			x := int(cx + pxToCols(math.Cos(angle)*(radius+wave)))
			y := int(cy + pxToRows(math.Sin(angle)*(radius+wave)))
			if !first {
				render.Line(px, py, x, y, plot)
			}
			px, py, first = x, y, false
		}
	}

	if f.Rand.Float64() < gridGlitchChance {
		angle := f.Rand.Float64() * math.Pi * 2
		ex := cx + pxToCols(math.Cos(angle)*maxRadius)
		ey := cy + pxToRows(math.Sin(angle)*maxRadius)
		render.Line(int(cx), int(cy), int(ex), int(ey), func(x, y int) {
			buf.SetBg(x, y, render.RGBMagenta, render.BlendAlpha, gridRayAlpha)
		})
	}

	g.t += gridTimeStep
}
