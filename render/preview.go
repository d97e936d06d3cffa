package render

import (
	"image"

	"github.com/nfnt/resize"
)

// Preview downscales a base image to fit within maxWidth x maxHeight,
// preserving the aspect ratio. It returns the raster together with the scale
// factor that was applied (1.0 when the image already fits) - the factor is
// what SelectionToRegion needs for its inverse mapping, so it is never
// discarded here.
func Preview(img image.Image, maxWidth, maxHeight int) (image.Image, float64) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxWidth && height <= maxHeight {
		return img, 1.0
	}
	scaleX := float64(maxWidth) / float64(width)
	scaleY := float64(maxHeight) / float64(height)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	newWidth := int(float64(width) * scale)
	if newWidth < 1 {
		newWidth = 1
	}
	newHeight := int(float64(height) * scale)
	if newHeight < 1 {
		newHeight = 1
	}
	resized := resize.Resize(uint(newWidth), uint(newHeight), img, resize.Lanczos3)
	return resized, float64(resized.Bounds().Dx()) / float64(width)
}
