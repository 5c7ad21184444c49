package geom

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestMatrixTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"zero translate", Translate(0, 0), Pt(3, -4), Pt(3, -4)},
		{"translate", Translate(10, 20), Pt(1, 2), Pt(11, 22)},
		{"scale", Scale(2, 3), Pt(1, 2), Pt(2, 6)},
		{"placement", Placement(100, 50, 10), Pt(-5, 5), Pt(50, 100)},
		{"placement unit scale", Placement(7, 8, 1), Pt(1, 2), Pt(8, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRotateSingleAxis(t *testing.T) {
	half := math.Pi / 2
	tests := []struct {
		name string
		p    r3.Vec
		rot  r3.Vec
		want r3.Vec
	}{
		{"x quarter turn", r3.Vec{Y: 1}, r3.Vec{X: half}, r3.Vec{Z: 1}},
		{"y quarter turn", r3.Vec{Z: 1}, r3.Vec{Y: half}, r3.Vec{X: 1}},
		{"z quarter turn", r3.Vec{X: 1}, r3.Vec{Z: half}, r3.Vec{Y: 1}},
		{"zero rotation", r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{}, r3.Vec{X: 1, Y: 2, Z: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rotate(tt.p, tt.rot)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) || !near(got.Z, tt.want.Z) {
				t.Errorf("Rotate(%v, %v) = %v, want %v", tt.p, tt.rot, got, tt.want)
			}
		})
	}
}

// TestRotateOrder pins the X-then-Y-then-Z order: the reverse order gives a
// different point for the same angles.
func TestRotateOrder(t *testing.T) {
	half := math.Pi / 2
	p := r3.Vec{X: 1}

	// X first leaves (1,0,0) alone, Y sends it to (0,0,-1), Z leaves that alone.
	got := Rotate(p, r3.Vec{X: half, Y: half, Z: half})
	want := r3.Vec{Z: -1}
	if !near(got.X, want.X) || !near(got.Y, want.Y) || !near(got.Z, want.Z) {
		t.Fatalf("Rotate XYZ = %v, want %v", got, want)
	}

	// Z first would send (1,0,0) to (0,1,0); then Y keeps it; then X sends it to (0,0,1).
	zyx := r3.NewRotation(half, axisX).Rotate(
		r3.NewRotation(half, axisY).Rotate(
			r3.NewRotation(half, axisZ).Rotate(p)))
	if near(zyx.Z, got.Z) {
		t.Errorf("reverse order produced the same point %v", zyx)
	}
}

func TestRotateZeroIsExact(t *testing.T) {
	p := r3.Vec{X: 0.1, Y: -50.3, Z: 7}
	if got := Rotate(p, r3.Vec{}); got != p {
		t.Errorf("Rotate(p, 0) = %v, want exactly %v", got, p)
	}
}

func TestProjectDropsZ(t *testing.T) {
	tri := r3.Triangle{
		{X: 0, Y: -50, Z: 10},
		{X: -50, Y: 50, Z: -20},
		{X: 50, Y: 50, Z: 30},
	}
	got, z := Project(tri, r3.Vec{}, Translate(300, 300))
	want := [3]Point{{300, 250}, {250, 350}, {350, 350}}
	if got != want {
		t.Errorf("Project = %v, want %v", got, want)
	}
	if wantZ := [3]float64{10, -20, 30}; z != wantZ {
		t.Errorf("Project depths = %v, want %v", z, wantZ)
	}
}

func TestProjectRotatedDepth(t *testing.T) {
	// A quarter turn about Y carries +X onto -Z.
	tri := r3.Triangle{{X: 1}, {X: 0, Y: 1}, {X: 0, Z: 2}}
	_, z := Project(tri, r3.Vec{Y: math.Pi / 2}, Translate(0, 0))
	want := [3]float64{-1, 0, 0}
	for i := range z {
		if !near(z[i], want[i]) {
			t.Errorf("depth %d = %v, want %v", i, z[i], want[i])
		}
	}
}

// TestProjectUnitPlacementMatchesTranslate checks that scale 1 and zero
// rotation is bit-identical to a plain translation.
func TestProjectUnitPlacementMatchesTranslate(t *testing.T) {
	tri := r3.Triangle{
		{X: 0.25, Y: -50.5, Z: 0},
		{X: -50.125, Y: 50, Z: 3},
		{X: 50, Y: 49.75, Z: -2},
	}
	a, _ := Project(tri, r3.Vec{}, Translate(300.5, 100))
	b, _ := Project(tri, r3.Vec{}, Placement(300.5, 100, 1))
	if a != b {
		t.Errorf("Project translate = %v, placement = %v", a, b)
	}
}

func TestProjectScaleAroundOrigin(t *testing.T) {
	tri := r3.Triangle{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: -1}}
	got, _ := Project(tri, r3.Vec{}, Placement(10, 20, 10))
	want := [3]Point{{20, 20}, {10, 30}, {0, 10}}
	for i := range got {
		if !near(got[i].X, want[i].X) || !near(got[i].Y, want[i].Y) {
			t.Errorf("vertex %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSignedArea(t *testing.T) {
	a, b, c := Pt(0, 0), Pt(1, 0), Pt(0, 1)
	if got := SignedArea(a, b, c); got != 1 {
		t.Errorf("SignedArea = %v, want 1", got)
	}
	if got := SignedArea(a, c, b); got != -1 {
		t.Errorf("SignedArea reversed = %v, want -1", got)
	}
	if got := SignedArea(a, b, Pt(2, 0)); got != 0 {
		t.Errorf("SignedArea collinear = %v, want 0", got)
	}
}
