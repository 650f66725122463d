package effect

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/voidglitch/render"
)

// Logical canvas of the network view; scaled to the layer at draw time
const (
	NeuralCanvasWidth  = 800.0
	NeuralCanvasHeight = 600.0
)

// NeuralLayers is the neuron count per layer, input first
var NeuralLayers = []int{5, 8, 8, 6, 3}

const (
	neuralFadeAlpha   = 0.05
	neuralPulseChance = 0.02
	neuralSparkLevel  = 0.8
	neuralSparks      = 3
	neuralCurveAmp    = 20.0 // px
)

// Neuron is a node of the animated network
type Neuron struct {
	X, Y       float64 // canvas px
	Layer      int
	Activation float64
	Bias       float64
}

// Connection joins a neuron to one in the next layer
type Connection struct {
	From, To int
	Weight   float64
}

// NeuralNet draws a layered network whose activations ride a sine wave
// scaled by intensity
type NeuralNet struct {
	neurons []Neuron
	conns   []Connection
}

// NewNeuralNet lays out NeuralLayers and fully connects adjacent layers
func NewNeuralNet(r *rand.Rand) *NeuralNet {
	n := &NeuralNet{}

	for li, count := range NeuralLayers {
		layerX := float64(li+1) * (NeuralCanvasWidth / float64(len(NeuralLayers)+1))
		spacing := NeuralCanvasHeight / float64(count+1)
		for i := 0; i < count; i++ {
			n.neurons = append(n.neurons, Neuron{
				X:          layerX,
				Y:          float64(i+1) * spacing,
				Layer:      li,
				Activation: r.Float64(),
				Bias:       r.Float64()*2 - 1,
			})
		}
	}

	for i := range n.neurons {
		for j := i + 1; j < len(n.neurons); j++ {
			if n.neurons[j].Layer == n.neurons[i].Layer+1 {
				n.conns = append(n.conns, Connection{From: i, To: j, Weight: r.Float64()*2 - 1})
			}
		}
	}
	return n
}

// Neurons returns a copy of the neuron list
func (n *NeuralNet) Neurons() []Neuron {
	out := make([]Neuron, len(n.neurons))
	copy(out, n.neurons)
	return out
}

// Connections returns a copy of the connection list
func (n *NeuralNet) Connections() []Connection {
	out := make([]Connection, len(n.conns))
	copy(out, n.conns)
	return out
}

// Activation is the wave value of a neuron at wall-clock ms, scaled by intensity
func Activation(ms, x, y, intensity float64) float64 {
	return (math.Sin(ms*0.001+x*0.01+y*0.01)*0.5 + 0.5) * intensity
}

func activationColor(a float64) render.RGB {
	return render.RGB{R: uint8(255 * a), G: uint8(255 * (1 - a)), B: 255}
}

func neuronColor(a float64) render.RGB {
	return render.RGB{R: uint8(255 * a), G: 128, B: uint8(255 * (1 - a))}
}

func (n *NeuralNet) Draw(buf *render.Buffer, f Frame) {
	buf.Fade(render.RGBVoid, neuralFadeAlpha)

	sx := float64(buf.Width()) / NeuralCanvasWidth
	sy := float64(buf.Height()) / NeuralCanvasHeight
	ms := f.Millis()
	boost := 1 + f.Intensity*0.2

	for i := range n.neurons {
		nr := &n.neurons[i]
		nr.Activation = Activation(ms, nr.X, nr.Y, f.Intensity)
	}

	for _, c := range n.conns {
		from, to := n.neurons[c.From], n.neurons[c.To]
		alpha := math.Max(0, math.Min(1, 0.3+c.Weight*0.3))
		fromColor := render.Scale(activationColor(from.Activation), boost)
		toColor := render.Scale(activationColor(to.Activation), boost)

		midX := (from.X + to.X) / 2
		midY := (from.Y+to.Y)/2 + math.Sin(ms*0.001+c.Weight)*neuralCurveAmp

		steps := int(math.Max(math.Abs(to.X-from.X)*sx, math.Abs(to.Y-from.Y)*sy)*2) + 2
		for s := 0; s <= steps; s++ {
			t := float64(s) / float64(steps)
			px, py := quadPoint(from.X, from.Y, midX, midY, to.X, to.Y, t)
			buf.SetBg(int(px*sx), int(py*sy), render.Lerp(fromColor, toColor, t), render.BlendAlpha, alpha)
		}

		if f.Rand.Float64() < neuralPulseChance {
			t := math.Mod(ms, 1000) / 1000
			px := from.X + (to.X-from.X)*t
			py := from.Y + (to.Y-from.Y)*t
			buf.Set(int(px*sx), int(py*sy), '●', render.RGBCyan, render.RGBCyan, render.BlendAlpha, 0.5)
		}
	}

	for _, nr := range n.neurons {
		a := nr.Activation
		size := 10 + a*15
		cx, cy := nr.X*sx, nr.Y*sy
		mid := render.Scale(neuronColor(a), boost)
		edge := render.RGB{R: uint8(128 * a), G: 64, B: uint8(128 * (1 - a))}

		fillEllipse(buf, cx, cy, size*1.5*sx, size*1.5*sy, func(x, y int, _ float64) {
			buf.SetBg(x, y, mid, render.BlendAlpha, 0.3)
		})
		fillEllipse(buf, cx, cy, size*sx, size*sy, func(x, y int, d float64) {
			var c render.RGB
			if d < 0.5 {
				c = render.Lerp(render.RGBWhite, mid, d/0.5)
			} else {
				c = render.Lerp(mid, edge, (d-0.5)/0.5)
			}
			buf.SetBg(x, y, c, render.BlendAlpha, 1-0.2*d)
		})

		if a > neuralSparkLevel {
			for i := 0; i < neuralSparks; i++ {
				angle := f.Rand.Float64() * math.Pi * 2
				length := size + f.Rand.Float64()*20
				ex := (nr.X + math.Cos(angle)*length) * sx
				ey := (nr.Y + math.Sin(angle)*length) * sy
				render.Line(int(cx), int(cy), int(ex), int(ey), func(x, y int) {
					buf.Set(x, y, '·', render.RGBWhite, render.RGBWhite, render.BlendAlpha, 0.5)
				})
			}
		}
	}

	buf.Text(int(50*sx), int(30*sy), "INPUT", render.RGBCyan)
	buf.Text(int((NeuralCanvasWidth/2-50)*sx), int(30*sy), "HIDDEN LAYERS", render.RGBCyan)
	buf.Text(int((NeuralCanvasWidth-100)*sx), int(30*sy), "OUTPUT", render.RGBCyan)
}
