package raster

// FillRect fills the pixels whose centers lie in [x, x+w) x [y, y+h),
// clipped to the canvas. It returns the number of pixels written.
// Non-positive w or h fills nothing.
func (c *Canvas) FillRect(x, y, w, h int, idx uint8) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, c.width)-1, min(y+h, c.height)-1
	if x0 > x1 || y0 > y1 {
		return 0
	}
	for row := y0; row <= y1; row++ {
		c.fillSpan(x0, x1, row, idx)
	}
	return (x1 - x0 + 1) * (y1 - y0 + 1)
}
