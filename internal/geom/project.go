// Package geom turns object-space triangles into device-space points.
//
// Rotation is applied as three successive axis rotations, X first, then Y,
// then Z, about the object origin. The order is a fixed policy: swapping it
// changes the rendered output. Projection is orthographic: the rotated z is
// kept only as a depth value and no perspective divide is performed.
package geom

import "gonum.org/v1/gonum/spatial/r3"

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
	axisZ = r3.Vec{Z: 1}
)

// Rotate applies the X, Y and Z rotations in rot (radians) to p.
// A zero angle leaves its axis untouched.
func Rotate(p r3.Vec, rot r3.Vec) r3.Vec {
	if rot.X != 0 {
		p = r3.NewRotation(rot.X, axisX).Rotate(p)
	}
	if rot.Y != 0 {
		p = r3.NewRotation(rot.Y, axisY).Rotate(p)
	}
	if rot.Z != 0 {
		p = r3.NewRotation(rot.Z, axisZ).Rotate(p)
	}
	return p
}

// Orthographic drops the z coordinate.
func Orthographic(p r3.Vec) Point {
	return Point{X: p.X, Y: p.Y}
}

// Project rotates each vertex of tri by rot, projects it orthographically
// and maps the result through m. It also returns the rotated z of each
// vertex, untouched by m. No clipping is performed.
func Project(tri r3.Triangle, rot r3.Vec, m Matrix) (pts [3]Point, z [3]float64) {
	for i, v := range tri {
		r := Rotate(v, rot)
		pts[i] = m.TransformPoint(Orthographic(r))
		z[i] = r.Z
	}
	return pts, z
}

// Placement returns the 2D matrix that scales by s about the object origin
// and then translates by (dx, dy).
func Placement(dx, dy, s float64) Matrix {
	return Translate(dx, dy).Multiply(Scale(s, s))
}
