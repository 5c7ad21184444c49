package raster

import "math"

// farDepth is the depth of a pixel nothing has been drawn to with a z value.
var farDepth = float32(math.Inf(-1))

// EnableDepth allocates the depth buffer with every pixel at the far plane.
// Larger z is nearer the viewer. Calling it again has no effect.
func (c *Canvas) EnableDepth() {
	if c.depth != nil {
		return
	}
	c.depth = make([]float32, len(c.pix))
	c.resetDepth()
}

func (c *Canvas) resetDepth() {
	for i := range c.depth {
		c.depth[i] = farDepth
	}
}

// depthPass reports whether z at pixel i is not behind the stored depth and,
// if so, records it. Equal depths pass, so the later draw wins a tie. NaN
// never passes.
func (c *Canvas) depthPass(i int, z float64) bool {
	zf := float32(z)
	if zf != zf || zf < c.depth[i] {
		return false
	}
	c.depth[i] = zf
	return true
}

// SetPixelZ writes idx at (x, y) unless a nearer z is already stored there.
// The depth buffer is enabled on first use.
func (c *Canvas) SetPixelZ(x, y int, z float64, idx uint8) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.EnableDepth()
	i := y*c.width + x
	if c.depthPass(i, z) {
		c.pix[i] = idx
	}
}

// FillRectZ is FillRect with every pixel depth tested at z. It returns the
// number of pixels written.
func (c *Canvas) FillRectZ(x, y, w, h int, z float64, idx uint8) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, c.width)-1, min(y+h, c.height)-1
	if x0 > x1 || y0 > y1 {
		return 0
	}
	c.EnableDepth()
	filled := 0
	for row := y0; row <= y1; row++ {
		for col := x0; col <= x1; col++ {
			i := row*c.width + col
			if c.depthPass(i, z) {
				c.pix[i] = idx
				filled++
			}
		}
	}
	return filled
}

// DrawLineZ is DrawLine with z interpolated linearly from z0 at the first
// endpoint to z1 at the last, measured in steps along the major axis.
func (c *Canvas) DrawLineZ(x0, y0 int, z0 float64, x1, y1 int, z1 float64, idx uint8) {
	c.EnableDepth()
	steps := max(abs(x1-x0), abs(y1-y0))
	walkLine(x0, y0, x1, y1, func(x, y, k int) {
		z := z0
		if steps > 0 {
			z = z0 + (z1-z0)*float64(k)/float64(steps)
		}
		c.SetPixelZ(x, y, z, idx)
	})
}
