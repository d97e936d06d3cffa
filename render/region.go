package render

import (
	"image"
	"math"
)

// SelectionToRegion converts a two-point rectangle drawn on a preview image
// into base-image pixel space. The points may come in any order; scale is
// the factor the preview was downscaled by (see Preview), and the selection
// is mapped back by its inverse before being persisted. Saving raw on-screen
// coordinates would misplace the photo on every scaled preview.
func SelectionToRegion(px1, py1, px2, py2 int, scale float64) (image.Rectangle, error) {
	if scale <= 0 {
		return image.Rectangle{}, ErrInvalidRegion
	}
	x1, x2 := px1, px2
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	y1, y2 := py1, py2
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if x1 == x2 || y1 == y2 {
		return image.Rectangle{}, ErrInvalidRegion
	}
	region := image.Rect(unscale(x1, scale), unscale(y1, scale), unscale(x2, scale), unscale(y2, scale))
	if region.Dx() == 0 || region.Dy() == 0 {
		return image.Rectangle{}, ErrInvalidRegion
	}
	return region, nil
}

func unscale(v int, scale float64) int {
	return int(math.Round(float64(v) / scale))
}
