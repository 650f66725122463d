// Package scene renders the 3D layer: a rotating particle cloud, a
// distorting sphere that follows the pointer and floating data-stream bars.
package scene

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/lixenwraith/voidglitch/effect"
	"github.com/lixenwraith/voidglitch/render"
	"github.com/lixenwraith/voidglitch/vmath"
)

// Scene geometry, in world units
const (
	DefaultParticles = 5000
	MaxParticles     = 200000
	DefaultStreams   = 100

	fieldSize    = 10.0
	cameraZ      = 5.0
	cameraFOV    = 75.0
	fogNear      = 5.0
	fogFar       = 15.0
	orbitPeriod  = 120.0 // seconds per auto-rotate revolution
	sphereRadius = 1.0
	streamLength = 2.0
)

// Colors
var (
	particleColor = render.RGBCyan
	sphereColor   = render.RGBMagenta
	streamColor   = render.RGBCyan
)

type stream struct {
	pos   vmath.Vec3F
	speed float64
}

// Scene is an effect.Drawer; pointer updates arrive from the input goroutine
type Scene struct {
	particles []vmath.Vec3F
	streams   []stream
	cam       vmath.Camera

	mu                 sync.Mutex
	pointerX, pointerY float64

	// Blinn-Phong light and half vectors
	light, half vmath.Vec3F
}

// New builds a scene with the given particle count; streams use DefaultStreams
func New(r *rand.Rand, particles int) *Scene {
	particles = min(max(particles, 0), MaxParticles)
	s := &Scene{
		particles: make([]vmath.Vec3F, particles),
		streams:   make([]stream, DefaultStreams),
		cam:       vmath.Camera{Z: cameraZ, FOV: cameraFOV, Aspect: 2},
	}
	for i := range s.particles {
		s.particles[i] = randomPoint(r)
	}
	for i := range s.streams {
		s.streams[i] = stream{pos: randomPoint(r), speed: r.Float64()*0.5 + 0.5}
	}

	s.light = vmath.V3FNormalize(vmath.Vec3F{X: -0.35, Y: 0.55, Z: 0.75})
	s.half = vmath.V3FNormalize(vmath.V3FAdd(s.light, vmath.Vec3F{Z: 1}))
	return s
}

func randomPoint(r *rand.Rand) vmath.Vec3F {
	return vmath.Vec3F{
		X: (r.Float64() - 0.5) * fieldSize,
		Y: (r.Float64() - 0.5) * fieldSize,
		Z: (r.Float64() - 0.5) * fieldSize,
	}
}

// ParticleCount returns the number of particles
func (s *Scene) ParticleCount() int {
	return len(s.particles)
}

// SetPointer records the pointer in normalized device coordinates,
// x and y in [-1,1] with +y up
func (s *Scene) SetPointer(x, y float64) {
	s.mu.Lock()
	s.pointerX = vmath.Clamp(x, -1, 1)
	s.pointerY = vmath.Clamp(y, -1, 1)
	s.mu.Unlock()
}

// Pointer returns the last normalized pointer position
func (s *Scene) Pointer() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pointerX, s.pointerY
}

// ParticleRotation returns the cloud's X and Y rotation at t seconds
func ParticleRotation(t, px, py float64) (ax, ay float64) {
	return t*0.1 + py*0.1, t*0.15 + px*0.1
}

// SphereCenter returns the sphere position at t seconds
func SphereCenter(t, px, py float64) vmath.Vec3F {
	return vmath.Vec3F{
		X: math.Sin(t)*0.5 + px*0.5,
		Y: math.Cos(t)*0.5 + py*0.5 + math.Sin(t*2)*0.15,
	}
}

func (s *Scene) Draw(buf *render.Buffer, f effect.Frame) {
	buf.Clear()

	t := f.Seconds()
	px, py := s.Pointer()
	orbit := vmath.NewRotation(0, 2*math.Pi*t/orbitPeriod)

	s.drawParticles(buf, t, px, py, orbit)
	s.drawStreams(buf, t, orbit)
	s.drawSphere(buf, t, px, py, f.Intensity, orbit)
}

func (s *Scene) drawParticles(buf *render.Buffer, t, px, py float64, orbit vmath.Rotation) {
	w, h := buf.Width(), buf.Height()
	rot := vmath.NewRotation(ParticleRotation(t, px, py))

	for _, p := range s.particles {
		world := orbit.Apply(rot.Apply(p))
		proj, ok := s.cam.Project(world, w, h)
		if !ok {
			continue
		}
		fog := vmath.Fog(proj.Depth, fogNear, fogFar)
		if fog <= 0 {
			continue
		}
		x, y := int(proj.X), int(proj.Y)
		glyph := '·'
		if proj.Depth < 3 {
			glyph = '•'
		}
		prev, ok := buf.Get(x, y)
		if !ok {
			continue
		}
		// Additive accumulation so dense regions glow
		c := render.Add(prev.Fg, render.Scale(particleColor, 0.8*fog*0.5), 1)
		if prev.Rune == 0 {
			c = render.Scale(particleColor, 0.8*fog)
		}
		buf.SetFg(x, y, glyph, c)
	}
}

func (s *Scene) drawStreams(buf *render.Buffer, t float64, orbit vmath.Rotation) {
	w, h := buf.Width(), buf.Height()

	for i, st := range s.streams {
		fi := float64(i)
		center := vmath.Vec3F{
			X: st.pos.X,
			Y: st.pos.Y + math.Sin(t*st.speed+fi)*0.5,
			Z: st.pos.Z,
		}
		scale := math.Sin(t*2+fi)*0.5 + 1
		rot := vmath.NewRotation(t*st.speed, t*st.speed)
		axis := vmath.V3FScale(rot.Apply(vmath.Vec3F{Y: 1}), streamLength/2*scale)

		a, okA := s.cam.Project(orbit.Apply(vmath.V3FAdd(center, axis)), w, h)
		b, okB := s.cam.Project(orbit.Apply(vmath.V3FSub(center, axis)), w, h)
		if !okA || !okB {
			continue
		}
		fog := vmath.Fog((a.Depth+b.Depth)/2, fogNear, fogFar)
		if fog <= 0 {
			continue
		}
		alpha := 0.6 * fog
		render.Line(int(a.X), int(a.Y), int(b.X), int(b.Y), func(x, y int) {
			buf.Set(x, y, '│', render.Scale(streamColor, alpha), streamColor, render.BlendAlpha, alpha*0.3)
		})
	}
}

// drawSphere shades a wobbling sphere in screen space, following the
// per-pixel approach of a Blinn-Phong impostor
func (s *Scene) drawSphere(buf *render.Buffer, t, px, py, intensity float64, orbit vmath.Rotation) {
	w, h := buf.Width(), buf.Height()
	center := orbit.Apply(SphereCenter(t, px, py))
	proj, ok := s.cam.Project(center, w, h)
	if !ok {
		return
	}

	distort := 0.5 * (0.5 + 0.5*intensity)
	radius := sphereRadius * (1 + distort*0.3)
	ry := radius * proj.Scale
	rx := ry * 2
	if ry < 0.5 {
		return
	}

	spin := t * 0.3
	minX, maxX := max(0, int(proj.X-rx-1)), min(w-1, int(proj.X+rx+1))
	minY, maxY := max(0, int(proj.Y-ry-1)), min(h-1, int(proj.Y+ry+1))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			nx := (float64(x) + 0.5 - proj.X) / rx
			ny := (float64(y) + 0.5 - proj.Y) / ry
			d := math.Sqrt(nx*nx + ny*ny)

			// Radius wobble around the silhouette
			angle := math.Atan2(ny, nx)
			edge := 1 - distort*0.3*(0.5+0.5*vmath.FastSin(angle*4+spin*6.7+t*2))
			if d > edge {
				continue
			}
			d /= edge
			nz := math.Sqrt(math.Max(0, 1-d*d))

			rim := (1 - nz) * (1 - nz) * 0.8
			spec := math.Max(0, nx*s.half.X-ny*s.half.Y+nz*s.half.Z)
			spec = math.Pow(spec, 20) * 0.9
			diffuse := math.Max(0, nx*s.light.X-ny*s.light.Y+nz*s.light.Z)

			level := 0.35 + 0.5*diffuse + rim*0.6
			c := render.Scale(sphereColor, level)
			c = render.Add(c, render.Scale(render.RGBWhite, spec), 1)

			alpha := 1.0
			if d > 0.92 {
				alpha = (1 - d) / 0.08
			}
			buf.SetBg(x, y, c, render.BlendAlpha, alpha)
		}
	}
}
