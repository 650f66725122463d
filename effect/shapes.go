package effect

import (
	"math"

	"github.com/lixenwraith/voidglitch/render"
)

// fillEllipse visits every cell within the ellipse centered at cx,cy
// d is the normalized distance from the center, 0 at center and 1 at the rim
func fillEllipse(buf *render.Buffer, cx, cy, rx, ry float64, fn func(x, y int, d float64)) {
	if rx <= 0 || ry <= 0 {
		return
	}
	minX := max(0, int(math.Floor(cx-rx)))
	maxX := min(buf.Width()-1, int(math.Ceil(cx+rx)))
	minY := max(0, int(math.Floor(cy-ry)))
	maxY := min(buf.Height()-1, int(math.Ceil(cy+ry)))

	hit := false
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			nx := (float64(x) + 0.5 - cx) / rx
			ny := (float64(y) + 0.5 - cy) / ry
			d := math.Sqrt(nx*nx + ny*ny)
			if d <= 1 {
				fn(x, y, d)
				hit = true
			}
		}
	}

	// Sub-cell shapes still mark their center cell
	if !hit {
		x, y := int(cx), int(cy)
		if x >= 0 && y >= 0 && x < buf.Width() && y < buf.Height() {
			fn(x, y, 0)
		}
	}
}

// quadPoint evaluates a quadratic Bezier at t
func quadPoint(x0, y0, cx, cy, x1, y1, t float64) (float64, float64) {
	u := 1 - t
	return u*u*x0 + 2*u*t*cx + t*t*x1,
		u*u*y0 + 2*u*t*cy + t*t*y1
}
