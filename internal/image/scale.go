package image

import (
	"image"

	"golang.org/x/image/draw"
)

// Scale resizes src to w x h pixels with nearest-neighbor sampling, which
// keeps hard edges intact for later palette mapping. A non-positive size
// returns nil.
func Scale(src image.Image, w, h int) *image.NRGBA {
	if w <= 0 || h <= 0 {
		return nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Fit returns the largest size with the aspect ratio of src that fits in
// w x h. A zero bound leaves that axis free, so Fit(src, 0, h) is the size
// with height h; with both zero the source size is returned. It returns
// (0, 0) for an empty source or a negative bound.
func Fit(src image.Rectangle, w, h int) (int, int) {
	sw, sh := src.Dx(), src.Dy()
	if sw <= 0 || sh <= 0 || w < 0 || h < 0 {
		return 0, 0
	}
	switch {
	case w == 0 && h == 0:
		return sw, sh
	case w == 0:
		return max(1, sw*h/sh), h
	case h == 0:
		return w, max(1, sh*w/sw)
	}
	// Compare w/sw against h/sh without division.
	if w*sh <= h*sw {
		return w, max(1, sh*w/sw)
	}
	return max(1, sw*h/sh), h
}
