package gifkit

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/gogpu/gifkit/internal/geom"
)

// Transform places a triangle on the canvas. It is either a Translate or a
// Rotate.
type Transform interface {
	project(tri r3.Triangle) ([3]geom.Point, [3]float64)
}

// Translate moves a triangle by (DX, DY) pixels. Object z plus DZ is the
// depth of each vertex; it only matters with WithDepthTest.
type Translate struct {
	DX, DY, DZ float64
}

func (t Translate) project(tri r3.Triangle) ([3]geom.Point, [3]float64) {
	p, z := geom.Project(tri, r3.Vec{}, geom.Translate(t.DX, t.DY))
	for i := range z {
		z[i] += t.DZ
	}
	return p, z
}

// Rotate rotates a triangle about the object origin, projects it
// orthographically, scales it uniformly and moves it by (DX, DY).
//
// Rotation holds the angles in radians about the X, Y and Z axes, applied in
// that order. A zero Scale means 1. The depth of a vertex is its rotated z,
// scaled, plus DZ.
type Rotate struct {
	Rotation   r3.Vec
	DX, DY, DZ float64
	Scale      float64
}

func (t Rotate) project(tri r3.Triangle) ([3]geom.Point, [3]float64) {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	p, z := geom.Project(tri, t.Rotation, geom.Placement(t.DX, t.DY, s))
	for i := range z {
		z[i] = z[i]*s + t.DZ
	}
	return p, z
}

// Tri builds a triangle from nine coordinates, three per vertex.
func Tri(x0, y0, z0, x1, y1, z1, x2, y2, z2 float64) r3.Triangle {
	return r3.Triangle{
		{X: x0, Y: y0, Z: z0},
		{X: x1, Y: y1, Z: z1},
		{X: x2, Y: y2, Z: z2},
	}
}
