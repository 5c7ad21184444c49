package raster

// Canvas is a paletted pixel buffer: one color-table index per pixel,
// stored row-major with no padding.
//
// Canvas performs no index validation; callers check indices against their
// palette before drawing.
type Canvas struct {
	width  int
	height int
	pix    []uint8

	// depth is nil until EnableDepth.
	depth []float32
}

// NewCanvas creates a canvas with every pixel set to index 0.
// Width and height must be positive.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Pix returns the live pixel buffer. Writes through it are visible to the canvas.
func (c *Canvas) Pix() []uint8 {
	return c.pix
}

// At returns the index at (x, y), or 0 outside the canvas.
func (c *Canvas) At(x, y int) uint8 {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return 0
	}
	return c.pix[y*c.width+x]
}

// SetPixel writes idx at (x, y). Out-of-bounds coordinates are ignored.
func (c *Canvas) SetPixel(x, y int, idx uint8) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.pix[y*c.width+x] = idx
}

// Clear sets every pixel to idx and, when depth testing is enabled, resets
// the depth buffer.
func (c *Canvas) Clear(idx uint8) {
	if c.depth != nil {
		c.resetDepth()
	}
	if idx == 0 {
		clear(c.pix)
		return
	}
	for i := range c.pix {
		c.pix[i] = idx
	}
}

// Snapshot returns a copy of the pixel buffer. Later draws do not affect it.
func (c *Canvas) Snapshot() []uint8 {
	s := make([]uint8, len(c.pix))
	copy(s, c.pix)
	return s
}

// fillSpan writes idx into row y for x in [x0, x1]. Bounds are already clipped.
func (c *Canvas) fillSpan(x0, x1, y int, idx uint8) {
	row := c.pix[y*c.width : (y+1)*c.width]
	for x := x0; x <= x1; x++ {
		row[x] = idx
	}
}
