package raster

import (
	"math"

	"github.com/gogpu/gifkit/internal/geom"
)

// Vertices are snapped to a 1/16 pixel grid so that edge functions can be
// evaluated exactly in integers.
const (
	subpixelBits = 4
	subpixelOne  = 1 << subpixelBits
	subpixelHalf = subpixelOne / 2

	// maxFixed bounds snapped coordinates so edge products fit in int64.
	maxFixed = 1 << 29
)

// fixedPoint is a vertex in 28.4 fixed point.
type fixedPoint struct {
	x, y int64
}

func snap(p geom.Point) (fixedPoint, bool) {
	if !p.IsFinite() {
		return fixedPoint{}, false
	}
	x := math.Round(p.X * subpixelOne)
	y := math.Round(p.Y * subpixelOne)
	if math.Abs(x) > maxFixed || math.Abs(y) > maxFixed {
		return fixedPoint{}, false
	}
	return fixedPoint{x: int64(x), y: int64(y)}, true
}

// orient returns the edge function of a->b evaluated at p: twice the signed
// area of (a, b, p).
func orient(a, b, p fixedPoint) int64 {
	return (b.x-a.x)*(p.y-a.y) - (b.y-a.y)*(p.x-a.x)
}

// isTopLeft reports whether edge a->b of a positively oriented triangle is a
// top or left edge. Pixels centered exactly on such an edge are filled;
// pixels on any other edge are not. Reversing an edge flips the answer, so
// two triangles sharing an edge never both claim, nor both skip, a pixel on it.
func isTopLeft(a, b fixedPoint) bool {
	dx, dy := b.x-a.x, b.y-a.y
	return dy < 0 || (dy == 0 && dx > 0)
}

// FillTriangle scan-converts the triangle p0, p1, p2 with the top-left fill
// convention, clipped to the canvas. Either winding is accepted. Degenerate
// triangles, and triangles with non-finite or absurdly large coordinates,
// fill nothing. It returns the number of pixels written.
func (c *Canvas) FillTriangle(p0, p1, p2 geom.Point, idx uint8) int {
	return c.fillTriangle(p0, p1, p2, nil, idx)
}

// FillTriangleZ is FillTriangle with depth testing. z holds the depth of
// each vertex; the depth of a pixel is interpolated across the triangle at
// its center. The depth buffer is enabled on first use.
func (c *Canvas) FillTriangleZ(p0, p1, p2 geom.Point, z [3]float64, idx uint8) int {
	c.EnableDepth()
	return c.fillTriangle(p0, p1, p2, &z, idx)
}

func (c *Canvas) fillTriangle(p0, p1, p2 geom.Point, z *[3]float64, idx uint8) int {
	if geom.SignedArea(p0, p1, p2) == 0 {
		return 0
	}
	v0, ok0 := snap(p0)
	v1, ok1 := snap(p1)
	v2, ok2 := snap(p2)
	if !ok0 || !ok1 || !ok2 {
		return 0
	}

	area := orient(v0, v1, v2)
	if area == 0 {
		return 0
	}
	var z0, z1, z2 float64
	if z != nil {
		z0, z1, z2 = z[0], z[1], z[2]
	}
	if area < 0 {
		v1, v2 = v2, v1
		z1, z2 = z2, z1
		area = -area
	}

	// Bounding box in pixel indices whose centers may be covered.
	minX := min(v0.x, v1.x, v2.x)
	maxX := max(v0.x, v1.x, v2.x)
	minY := min(v0.y, v1.y, v2.y)
	maxY := max(v0.y, v1.y, v2.y)

	px0 := max(ceilDiv(minX-subpixelHalf, subpixelOne), 0)
	px1 := min(floorDiv(maxX-subpixelHalf, subpixelOne), int64(c.width-1))
	py0 := max(ceilDiv(minY-subpixelHalf, subpixelOne), 0)
	py1 := min(floorDiv(maxY-subpixelHalf, subpixelOne), int64(c.height-1))
	if px0 > px1 || py0 > py1 {
		return 0
	}

	// A pixel is inside when every edge function is positive, or zero on a
	// top-left edge. With integer edge values that is e + bias >= 0.
	bias0 := edgeBias(v1, v2)
	bias1 := edgeBias(v2, v0)
	bias2 := edgeBias(v0, v1)

	// Per-pixel increments of each edge function.
	stepX0, stepY0 := (v1.y-v2.y)*subpixelOne, (v2.x-v1.x)*subpixelOne
	stepX1, stepY1 := (v2.y-v0.y)*subpixelOne, (v0.x-v2.x)*subpixelOne
	stepX2, stepY2 := (v0.y-v1.y)*subpixelOne, (v1.x-v0.x)*subpixelOne

	start := fixedPoint{
		x: px0*subpixelOne + subpixelHalf,
		y: py0*subpixelOne + subpixelHalf,
	}
	row0 := orient(v1, v2, start) + bias0
	row1 := orient(v2, v0, start) + bias1
	row2 := orient(v0, v1, start) + bias2

	filled := 0
	for y := py0; y <= py1; y++ {
		base := int(y) * c.width
		row := c.pix[base : base+c.width]
		e0, e1, e2 := row0, row1, row2
		for x := px0; x <= px1; x++ {
			if e0|e1|e2 >= 0 && (z == nil ||
				c.depthPass(base+int(x), interpolate(e0-bias0, e1-bias1, e2-bias2, area, z0, z1, z2))) {
				row[x] = idx
				filled++
			}
			e0 += stepX0
			e1 += stepX1
			e2 += stepX2
		}
		row0 += stepY0
		row1 += stepY1
		row2 += stepY2
	}
	return filled
}

// interpolate returns the depth at a pixel from its unbiased edge values,
// which are the barycentric weights of v0, v1 and v2 scaled by area.
func interpolate(w0, w1, w2, area int64, z0, z1, z2 float64) float64 {
	return (float64(w0)*z0 + float64(w1)*z1 + float64(w2)*z2) / float64(area)
}

func edgeBias(a, b fixedPoint) int64 {
	if isTopLeft(a, b) {
		return 0
	}
	return -1
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}
