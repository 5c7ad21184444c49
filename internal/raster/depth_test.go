package raster

import (
	"math"
	"testing"

	"github.com/gogpu/gifkit/internal/geom"
)

// depthAt returns the stored z at (x, y) and whether one was written since
// the last Clear.
func depthAt(c *Canvas, x, y int) (float32, bool) {
	if c.depth == nil {
		return 0, false
	}
	z := c.depth[y*c.width+x]
	return z, z != farDepth
}

func TestDepthDisabledByDefault(t *testing.T) {
	c := NewCanvas(4, 4)
	if c.depth != nil {
		t.Error("new canvas has a depth buffer")
	}
	c.FillRect(0, 0, 4, 4, 1)
	c.FillTriangle(geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(0, 4), 2)
	if c.depth != nil {
		t.Error("plain draws allocated a depth buffer")
	}
	c.EnableDepth()
	if len(c.depth) != 16 {
		t.Fatalf("len(depth) = %d, want 16", len(c.depth))
	}
	if _, ok := depthAt(c, 1, 1); ok {
		t.Error("depth at (1, 1) set before any z was written")
	}
}

func TestSetPixelZ(t *testing.T) {
	tests := []struct {
		name   string
		first  float64
		second float64
		want   uint8
		wantZ  float32
	}{
		{"nearer wins", 1, 5, 2, 5},
		{"farther loses", 5, 1, 1, 5},
		{"tie draws", 3, 3, 2, 3},
		{"negative depths", -10, -20, 1, -10},
		{"nan is rejected", 0, math.NaN(), 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(4, 4)
			c.SetPixelZ(2, 1, tt.first, 1)
			c.SetPixelZ(2, 1, tt.second, 2)
			if got := c.At(2, 1); got != tt.want {
				t.Errorf("At(2, 1) = %d, want %d", got, tt.want)
			}
			if z, ok := depthAt(c, 2, 1); !ok || z != tt.wantZ {
				t.Errorf("depth at (2, 1) = (%v, %v), want (%v, true)", z, ok, tt.wantZ)
			}
		})
	}
}

func TestSetPixelIgnoresDepth(t *testing.T) {
	c := NewCanvas(4, 4)
	c.SetPixelZ(0, 0, 100, 1)
	c.SetPixel(0, 0, 2)
	if got := c.At(0, 0); got != 2 {
		t.Errorf("At(0, 0) = %d, want 2", got)
	}
	if z, _ := depthAt(c, 0, 0); z != 100 {
		t.Errorf("depth at (0, 0) = %v, want 100 after plain SetPixel", z)
	}
}

func TestClearResetsDepth(t *testing.T) {
	c := NewCanvas(8, 8)
	c.FillRectZ(0, 0, 8, 8, 50, 1)
	c.Clear(0)
	if _, ok := depthAt(c, 3, 3); ok {
		t.Error("depth at (3, 3) still set after Clear")
	}
	if n := c.FillRectZ(0, 0, 8, 8, -50, 2); n != 64 {
		t.Errorf("FillRectZ after Clear = %d, want 64", n)
	}
}

func TestFillRectZ(t *testing.T) {
	c := NewCanvas(10, 10)
	if n := c.FillRectZ(2, 2, 4, 4, 10, 1); n != 16 {
		t.Fatalf("FillRectZ() = %d, want 16", n)
	}
	// Overlaps the first rect by 2x2 from behind.
	if n := c.FillRectZ(4, 4, 4, 4, 5, 2); n != 12 {
		t.Errorf("FillRectZ() behind = %d, want 12", n)
	}
	if got := c.At(4, 4); got != 1 {
		t.Errorf("At(4, 4) = %d, want 1", got)
	}
	if got := c.At(7, 7); got != 2 {
		t.Errorf("At(7, 7) = %d, want 2", got)
	}
	if n := c.FillRectZ(-5, -5, 3, 3, 0, 3); n != 0 {
		t.Errorf("FillRectZ() off canvas = %d, want 0", n)
	}
}

func TestDrawLineZ(t *testing.T) {
	c := NewCanvas(16, 4)
	c.DrawLineZ(0, 1, 0, 10, 1, 10, 1)
	for x := 0; x <= 10; x++ {
		z, ok := depthAt(c, x, 1)
		if !ok || z != float32(x) {
			t.Errorf("depth at (%d, 1) = (%v, %v), want (%d, true)", x, z, ok, x)
		}
	}
	// A flat line at depth 5 only shows where the first line is farther.
	c.DrawLineZ(0, 1, 5, 10, 1, 5, 2)
	if n := countIndex(c, 2); n != 6 {
		t.Errorf("pixels of second line = %d, want 6", n)
	}
	if got := c.At(6, 1); got != 1 {
		t.Errorf("At(6, 1) = %d, want 1", got)
	}

	c.DrawLineZ(3, 3, 7, 3, 3, 7, 3)
	if got, _ := depthAt(c, 3, 3); got != 7 {
		t.Errorf("single point depth = %v, want 7", got)
	}
}

func TestFillTriangleZInterpolates(t *testing.T) {
	c := NewCanvas(32, 32)
	p0, p1, p2 := geom.Pt(0, 0), geom.Pt(32, 0), geom.Pt(0, 32)
	if n := c.FillTriangleZ(p0, p1, p2, [3]float64{0, 32, 0}, 1); n == 0 {
		t.Fatal("FillTriangleZ() filled nothing")
	}
	// z equals x across the triangle, sampled at pixel centers.
	for _, x := range []int{0, 5, 20} {
		z, ok := depthAt(c, x, 2)
		if !ok || math.Abs(float64(z)-(float64(x)+0.5)) > 1e-4 {
			t.Errorf("depth at (%d, 2) = (%v, %v), want %v", x, z, ok, float64(x)+0.5)
		}
	}
}

func TestFillTriangleZOcclusion(t *testing.T) {
	near := [3]geom.Point{geom.Pt(0, 0), geom.Pt(16, 0), geom.Pt(0, 16)}
	far := [3]geom.Point{geom.Pt(0, 0), geom.Pt(16, 16), geom.Pt(0, 16)}
	tests := []struct {
		name     string
		first    [3]geom.Point
		firstZ   float64
		second   [3]geom.Point
		secondZ  float64
		wantAt   uint8
		reversed bool
	}{
		{"near first", near, 10, far, 1, 1, false},
		{"far first", far, 1, near, 10, 2, false},
		{"reversed winding", near, 10, far, 1, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(16, 16)
			a, b := tt.first, tt.second
			if tt.reversed {
				b[1], b[2] = b[2], b[1]
			}
			z1 := [3]float64{tt.firstZ, tt.firstZ, tt.firstZ}
			z2 := [3]float64{tt.secondZ, tt.secondZ, tt.secondZ}
			c.FillTriangleZ(a[0], a[1], a[2], z1, 1)
			c.FillTriangleZ(b[0], b[1], b[2], z2, 2)
			// (2, 8) is inside both triangles.
			if got := c.At(2, 8); got != tt.wantAt {
				t.Errorf("At(2, 8) = %d, want %d", got, tt.wantAt)
			}
		})
	}
}

func TestFillTriangleZMatchesCoverage(t *testing.T) {
	p0, p1, p2 := geom.Pt(1.3, 2.7), geom.Pt(20.1, 5.5), geom.Pt(7.9, 18.2)
	a, b := NewCanvas(24, 24), NewCanvas(24, 24)
	na := a.FillTriangle(p0, p1, p2, 1)
	nb := b.FillTriangleZ(p0, p1, p2, [3]float64{1, 2, 3}, 1)
	if na != nb {
		t.Errorf("FillTriangleZ() = %d pixels, FillTriangle() = %d", nb, na)
	}
	for i := range a.Pix() {
		if a.Pix()[i] != b.Pix()[i] {
			t.Fatalf("pixel %d differs with depth testing", i)
		}
	}
}
