package vmath

import (
	"math"
	"testing"
)

func TestFastSinAccuracy(t *testing.T) {
	for i := -100; i <= 100; i++ {
		rad := float64(i) * 0.173
		if d := math.Abs(FastSin(rad) - math.Sin(rad)); d > 0.01 {
			t.Errorf("FastSin(%f) off by %f", rad, d)
		}
		if d := math.Abs(FastCos(rad) - math.Cos(rad)); d > 0.01 {
			t.Errorf("FastCos(%f) off by %f", rad, d)
		}
	}
}

func TestRotationPreservesLength(t *testing.T) {
	v := Vec3F{1, 2, 3}
	r := NewRotation(0.7, -1.3)
	got := V3FMag(r.Apply(v))
	if math.Abs(got-V3FMag(v)) > 1e-9 {
		t.Errorf("Expected length %f, got %f", V3FMag(v), got)
	}
}

func TestRotationQuarterTurnY(t *testing.T) {
	got := NewRotation(0, math.Pi/2).Apply(Vec3F{1, 0, 0})
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Z+1) > 1e-9 {
		t.Errorf("Expected (0,0,-1), got %+v", got)
	}
}

func TestCameraProject(t *testing.T) {
	cam := Camera{Z: 5, FOV: 75, Aspect: 2}

	p, ok := cam.Project(Vec3F{}, 80, 24)
	if !ok {
		t.Fatal("Expected origin visible")
	}
	if p.X != 40 || p.Y != 12 {
		t.Errorf("Expected center 40,12, got %f,%f", p.X, p.Y)
	}

	if _, ok := cam.Project(Vec3F{Z: 6}, 80, 24); ok {
		t.Error("Expected point behind camera to be culled")
	}

	up, _ := cam.Project(Vec3F{Y: 1}, 80, 24)
	if up.Y >= p.Y {
		t.Errorf("Expected +Y to project above center, got %f", up.Y)
	}
}

func TestFogAndSmoothstep(t *testing.T) {
	if Fog(4, 5, 15) != 1 || Fog(20, 5, 15) != 0 || Fog(10, 5, 15) != 0.5 {
		t.Error("Unexpected fog ramp")
	}
	if Smoothstep(0, 1, -1) != 0 || Smoothstep(0, 1, 2) != 1 || Smoothstep(0, 1, 0.5) != 0.5 {
		t.Error("Unexpected smoothstep values")
	}
}
