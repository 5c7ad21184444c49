package gifkit

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestTranslateProject(t *testing.T) {
	tri := Tri(0, -50, 7, -50, 50, -3, 50, 50, 0)
	got, z := Translate{DX: 300, DY: 300, DZ: 5}.project(tri)
	want := [3][2]float64{{300, 250}, {250, 350}, {350, 350}}
	for i := range got {
		if got[i].X != want[i][0] || got[i].Y != want[i][1] {
			t.Errorf("vertex %d = (%v, %v), want (%v, %v)", i, got[i].X, got[i].Y, want[i][0], want[i][1])
		}
	}
	if wantZ := [3]float64{12, 2, 5}; z != wantZ {
		t.Errorf("depths = %v, want %v", z, wantZ)
	}
}

func TestRotateZeroMatchesTranslate(t *testing.T) {
	tri := Tri(0.3, -5.25, 1, -5.5, 5, 2, 5.125, 4.75, 3)
	tr := Translate{DX: 123.375, DY: 45.625}
	for _, scale := range []float64{0, 1} {
		rot := Rotate{DX: tr.DX, DY: tr.DY, Scale: scale}
		got, gotZ := rot.project(tri)
		want, wantZ := tr.project(tri)
		if got != want {
			t.Errorf("Rotate{Scale: %v}.project = %v, want %v", scale, got, want)
		}
		if gotZ != wantZ {
			t.Errorf("Rotate{Scale: %v} depths = %v, want %v", scale, gotZ, wantZ)
		}
	}
}

func TestRotateProject(t *testing.T) {
	tests := []struct {
		name string
		rot  Rotate
		v    r3.Vec
		x, y float64
	}{
		{"scale only", Rotate{DX: 10, DY: 20, Scale: 3}, r3.Vec{X: 1, Y: 2}, 13, 26},
		{"quarter turn about z", Rotate{Rotation: r3.Vec{Z: math.Pi / 2}}, r3.Vec{X: 1}, 0, 1},
		{"half turn about y", Rotate{Rotation: r3.Vec{Y: math.Pi}}, r3.Vec{X: 1}, -1, 0},
		{"quarter turn about x drops z", Rotate{Rotation: r3.Vec{X: math.Pi / 2}}, r3.Vec{Y: 1}, 0, 0},
		{"x then z", Rotate{Rotation: r3.Vec{X: math.Pi / 2, Z: math.Pi / 2}}, r3.Vec{Z: 1}, 1, 0},
	}
	const eps = 1e-9
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts, _ := tt.rot.project(r3.Triangle{tt.v, tt.v, tt.v})
			p := pts[0]
			if math.Abs(p.X-tt.x) > eps || math.Abs(p.Y-tt.y) > eps {
				t.Errorf("project(%v) = (%v, %v), want (%v, %v)", tt.v, p.X, p.Y, tt.x, tt.y)
			}
		})
	}
}

func TestRotateDepth(t *testing.T) {
	tests := []struct {
		name string
		rot  Rotate
		v    r3.Vec
		z    float64
	}{
		{"offset only", Rotate{DZ: 4}, r3.Vec{Z: 1}, 5},
		{"scaled", Rotate{Scale: 3, DZ: -1}, r3.Vec{Z: 2}, 5},
		{"quarter turn about y", Rotate{Rotation: r3.Vec{Y: math.Pi / 2}}, r3.Vec{X: 1}, -1},
		{"quarter turn about x", Rotate{Rotation: r3.Vec{X: math.Pi / 2}}, r3.Vec{Y: 1}, 1},
	}
	const eps = 1e-9
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, z := tt.rot.project(r3.Triangle{tt.v, tt.v, tt.v})
			if math.Abs(z[0]-tt.z) > eps {
				t.Errorf("depth of %v = %v, want %v", tt.v, z[0], tt.z)
			}
		})
	}
}
