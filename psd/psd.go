// Package psd extracts the addressable pieces of a layered card template:
// the named regions used to build the field schema, and the flattened base
// image the compositor paints on.
package psd

import (
	"errors"
	"image"
	"os"

	psdfile "github.com/oov/psd"
)

type RegionKind uint8

const (
	KindOther RegionKind = 0
	KindText  RegionKind = 1
)

// Region is one visible layer of the template document. BBox is in absolute
// document pixel coordinates (y-down), not layer-local ones.
type Region struct {
	Name string
	Kind RegionKind
	BBox image.Rectangle
}

type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "psd: cannot read template " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Photoshop stores type-tool data under the "TySh" additional info block.
// Its presence is what makes a layer a text layer.
const typeToolKey = psdfile.AdditionalInfoKey("TySh")

// Parse opens a PSD file and returns its visible layers in document order.
// Layers inside a hidden group are excluded along with the group itself;
// visible groups surface as regions of kind other, like any non-text layer.
func Parse(path string) ([]Region, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer file.Close()

	doc, _, err := psdfile.Decode(file, &psdfile.DecodeOptions{
		SkipLayerImage:  true,
		SkipMergedImage: true,
	})
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return collectRegions(doc.Layer, nil), nil
}

func collectRegions(layers []psdfile.Layer, acc []Region) []Region {
	for i := range layers {
		layer := &layers[i]
		if !layer.Visible() {
			continue
		}
		kind := KindOther
		if _, ok := layer.AdditionalLayerInfo[typeToolKey]; ok {
			kind = KindText
		}
		acc = append(acc, Region{Name: layer.Name, Kind: kind, BBox: layer.Rect})
		acc = collectRegions(layer.Layer, acc)
	}
	return acc
}

// Composite returns the full-resolution flattened raster of the document.
// It relies on the merged image data Photoshop writes in compatibility mode,
// which every template exported for this system carries.
func Composite(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer file.Close()

	doc, _, err := psdfile.Decode(file, &psdfile.DecodeOptions{SkipLayerImage: true})
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if doc.Picker == nil {
		return nil, &ParseError{Path: path, Err: errors.New("no merged image data")}
	}
	return doc.Picker, nil
}
