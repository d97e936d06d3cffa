package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"cardserver/models"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Compose renders one side of a card: the flattened template artwork, each
// editable field's submitted value centered in its region, and - on the
// front side - the holder photo stretched into the photo region. The photo
// is pasted last and fully opaque, so it occludes text and artwork beneath
// it. Missing values and a missing photo are skipped, not errors.
//
// Values are looked up by the field's original (template-authored) name.
func Compose(base image.Image, fields []models.Field, values map[string]string, photo image.Image, photoRegion *image.Rectangle, face font.Face) (*image.NRGBA, error) {
	bounds := base.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	canvas = imaging.Overlay(canvas, base, image.Pt(0, 0), 1.0)

	ordered := make([]models.Field, len(fields))
	copy(ordered, fields)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SortOrder < ordered[j].SortOrder
	})

	for _, field := range ordered {
		if !field.Editable {
			continue
		}
		value := values[field.OriginalName]
		if value == "" {
			continue
		}
		drawCentered(canvas, field.BBox().Sub(bounds.Min), value, face)
	}

	if photo != nil && photoRegion != nil {
		region := photoRegion.Sub(bounds.Min)
		if region.Dx() <= 0 || region.Dy() <= 0 {
			return nil, &CompositionError{Op: "photo placement", Err: ErrInvalidRegion}
		}
		fitted := imaging.Resize(photo, region.Dx(), region.Dy(), imaging.Lanczos)
		canvas = imaging.Paste(canvas, fitted, region.Min)
	}
	return canvas, nil
}

// drawCentered draws value horizontally and vertically centered in box,
// opaque black. There is no shrink-to-fit: overflowing text overflows.
func drawCentered(dst *image.NRGBA, box image.Rectangle, value string, face font.Face) {
	drawer := &font.Drawer{Dst: dst, Src: image.Black, Face: face}
	advance := drawer.MeasureString(value)
	metrics := face.Metrics()
	drawer.Dot = fixed.Point26_6{
		X: fixed.I(box.Min.X) + (fixed.I(box.Dx())-advance)/2,
		Y: fixed.I(box.Min.Y) + (fixed.I(box.Dy())+metrics.Ascent-metrics.Descent)/2,
	}
	drawer.DrawString(value)
}

// WriteAtomic encodes the rendered card as PNG, going through a temporary
// file in the destination directory and renaming it into place so a reader
// never observes a partially written image.
func WriteAtomic(img image.Image, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0777); err != nil {
		return &CompositionError{Op: "write output", Err: err}
	}
	tmp, err := os.CreateTemp(dir, ".card-*.png")
	if err != nil {
		return &CompositionError{Op: "write output", Err: err}
	}
	if err = png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &CompositionError{Op: "encode output", Err: err}
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &CompositionError{Op: "write output", Err: err}
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return &CompositionError{Op: "write output", Err: err}
	}
	return nil
}
