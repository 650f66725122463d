package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FMagSq(v Vec3F) float64 {
	return V3FDot(v, v)
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// Rotation is a precomputed XY Euler rotation (X applied first)
type Rotation struct {
	sx, cx, sy, cy float64
}

// NewRotation builds a rotation from angles in radians
func NewRotation(ax, ay float64) Rotation {
	return Rotation{
		sx: math.Sin(ax), cx: math.Cos(ax),
		sy: math.Sin(ay), cy: math.Cos(ay),
	}
}

// Apply rotates v about X then Y
func (r Rotation) Apply(v Vec3F) Vec3F {
	// X axis
	y := v.Y*r.cx - v.Z*r.sx
	z := v.Y*r.sx + v.Z*r.cx
	// Y axis
	x := v.X*r.cy + z*r.sy
	z = -v.X*r.sy + z*r.cy
	return Vec3F{x, y, z}
}

// Camera is a pinhole camera on the +Z axis looking toward the origin
type Camera struct {
	Z      float64 // camera distance
	FOV    float64 // vertical field of view in degrees
	Aspect float64 // cell height / cell width
}

// Projected is a point in screen cells with view depth
type Projected struct {
	X, Y  float64
	Depth float64
	Scale float64 // world unit to rows at this depth
}

// Project maps a world point to cells of a w x h viewport
// ok is false for points behind or at the camera plane
func (c Camera) Project(p Vec3F, w, h int) (Projected, bool) {
	depth := c.Z - p.Z
	if depth <= 0.01 {
		return Projected{}, false
	}
	focal := (float64(h) / 2) / math.Tan(c.FOV*math.Pi/360)
	s := focal / depth
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 2
	}
	return Projected{
		X:     float64(w)/2 + p.X*s*aspect,
		Y:     float64(h)/2 - p.Y*s,
		Depth: depth,
		Scale: s,
	}, true
}

// Fog returns visibility in [0,1] for linear fog between near and far
func Fog(depth, near, far float64) float64 {
	if depth <= near {
		return 1
	}
	if depth >= far {
		return 0
	}
	return 1 - (depth-near)/(far-near)
}
