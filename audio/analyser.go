package audio

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/lixenwraith/voidglitch/constants"
)

// Analyser turns time-domain frames into byte-scaled frequency bins:
// Blackman window, FFT magnitude, temporal smoothing, decibel range mapping
type Analyser struct {
	fft       *fourier.FFT
	size      int
	frame     []float64
	coeff     []complex128
	smoothed  []float64
	out       []uint8
	smoothing float64
	minDB     float64
	maxDB     float64
}

// NewAnalyser creates an analyser for frames of size samples, yielding size/2 bins
func NewAnalyser(size int) *Analyser {
	if size < 2 {
		size = constants.CaptureFFTSize
	}
	return &Analyser{
		fft:       fourier.NewFFT(size),
		size:      size,
		frame:     make([]float64, size),
		coeff:     make([]complex128, size/2+1),
		smoothed:  make([]float64, size/2),
		out:       make([]uint8, size/2),
		smoothing: constants.SpectrumSmoothing,
		minDB:     constants.SpectrumMinDecibels,
		maxDB:     constants.SpectrumMaxDecibels,
	}
}

// Bins returns the number of output bins
func (a *Analyser) Bins() int {
	return a.size / 2
}

// SetSmoothing sets the temporal smoothing constant in [0,1)
func (a *Analyser) SetSmoothing(s float64) {
	a.smoothing = min(max(s, 0), 0.99)
}

// Process analyses the newest samples. Short input is zero padded at the front,
// long input uses its tail. The returned slice is reused by the next call.
func (a *Analyser) Process(samples []float64) []uint8 {
	clear(a.frame)
	if len(samples) > a.size {
		samples = samples[len(samples)-a.size:]
	}
	copy(a.frame[a.size-len(samples):], samples)

	window.Blackman(a.frame)
	a.coeff = a.fft.Coefficients(a.coeff, a.frame)

	scale := 1.0 / float64(a.size)
	span := a.maxDB - a.minDB
	for i := range a.smoothed {
		mag := cmplx.Abs(a.coeff[i]) * scale
		a.smoothed[i] = a.smoothing*a.smoothed[i] + (1-a.smoothing)*mag

		if a.smoothed[i] <= 0 {
			a.out[i] = 0
			continue
		}
		db := 20 * math.Log10(a.smoothed[i])
		v := 255 * (db - a.minDB) / span
		a.out[i] = uint8(min(max(v, 0), 255))
	}
	return a.out
}

// Reset clears the smoothing history
func (a *Analyser) Reset() {
	clear(a.smoothed)
}
