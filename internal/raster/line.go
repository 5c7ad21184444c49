package raster

// DrawLine draws a one-pixel line from (x0, y0) to (x1, y1) with both
// endpoints included, using Bresenham's algorithm. Pixels outside the canvas
// are skipped.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, idx uint8) {
	if y0 == y1 {
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		if y0 < 0 || y0 >= c.height || x1 < 0 || x0 >= c.width {
			return
		}
		c.fillSpan(max(x0, 0), min(x1, c.width-1), y0, idx)
		return
	}

	walkLine(x0, y0, x1, y1, func(x, y, _ int) {
		c.SetPixel(x, y, idx)
	})
}

// walkLine visits the Bresenham pixels from (x0, y0) to (x1, y1) in order,
// passing the step number k, which is 0 at the first endpoint.
func walkLine(x0, y0, x1, y1 int, plot func(x, y, k int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	e := dx + dy
	for k := 0; ; k++ {
		plot(x0, y0, k)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
