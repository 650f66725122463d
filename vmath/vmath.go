// Package vmath holds the float math shared by the effects and the 3D scene.
package vmath

import "math"

// LUT resolution for the fast trigonometry path
const (
	LUTSize = 1024
	LUTMask = LUTSize - 1
)

// SinLUT and CosLUT sample one full turn
var (
	SinLUT [LUTSize]float64
	CosLUT [LUTSize]float64
)

func init() {
	for i := 0; i < LUTSize; i++ {
		rad := 2.0 * math.Pi * float64(i) / LUTSize
		SinLUT[i] = math.Sin(rad)
		CosLUT[i] = math.Cos(rad)
	}
}

// lutIndex maps radians to the nearest table slot
func lutIndex(rad float64) int {
	return int(math.Round(rad*LUTSize/(2*math.Pi))) & LUTMask
}

// FastSin is a table sine, accurate to about 0.3% for per-particle work
func FastSin(rad float64) float64 {
	return SinLUT[lutIndex(rad)]
}

// FastCos is the table cosine
func FastCos(rad float64) float64 {
	return CosLUT[lutIndex(rad)]
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates a to b by t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep is the cubic Hermite ramp between edge0 and edge1
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Pulse maps time to a 0..1 sine wave of the given period
func Pulse(seconds, period float64) float64 {
	if period <= 0 {
		return 0
	}
	return 0.5 + 0.5*math.Sin(2*math.Pi*seconds/period)
}
