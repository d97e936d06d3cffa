package render

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"cardserver/models"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font/basicfont"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func testFields() []models.Field {
	return []models.Field{
		{OriginalName: "Nome", DisplayName: "Nome completo", X1: 20, Y1: 20, X2: 180, Y2: 50, Editable: true, SortOrder: 0},
		{OriginalName: "RG", DisplayName: "RG", X1: 20, Y1: 60, X2: 180, Y2: 90, Editable: true, SortOrder: 1},
	}
}

func TestComposeDeterministic(t *testing.T) {
	base := testImage(200, 300)
	values := map[string]string{"Nome": "Ana Silva", "RG": "12.345"}

	first, err := Compose(base, testFields(), values, nil, nil, basicfont.Face7x13)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	second, err := Compose(base, testFields(), values, nil, nil, basicfont.Face7x13)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !bytes.Equal(encodePNG(t, first), encodePNG(t, second)) {
		t.Error("two compositions of identical input are not byte-identical")
	}
}

func TestComposePhotoPlacement(t *testing.T) {
	base := testImage(200, 300)
	photo := testImage(40, 40)
	region := image.Rect(50, 50, 150, 250)

	withPhoto, err := Compose(base, nil, nil, photo, &region, basicfont.Face7x13)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	withoutPhoto, err := Compose(base, nil, nil, nil, nil, basicfont.Face7x13)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	// Inside the region: exactly the photo stretched to the region size.
	fitted := imaging.Resize(photo, region.Dx(), region.Dy(), imaging.Lanczos)
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			want := fitted.NRGBAAt(x-region.Min.X, y-region.Min.Y)
			if got := withPhoto.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	// Outside the region: untouched by the photo step.
	bounds := withPhoto.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if (image.Pt(x, y)).In(region) {
				continue
			}
			if withPhoto.NRGBAAt(x, y) != withoutPhoto.NRGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) outside the photo region was modified", x, y)
			}
		}
	}
}

func TestComposePhotoCoversText(t *testing.T) {
	base := testImage(200, 300)
	photo := testImage(40, 40)
	region := image.Rect(20, 20, 180, 280)
	fields := []models.Field{
		{OriginalName: "Nome", X1: 30, Y1: 100, X2: 170, Y2: 140, Editable: true},
	}

	got, err := Compose(base, fields, map[string]string{"Nome": "Ana Silva"}, photo, &region, basicfont.Face7x13)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	fitted := imaging.Resize(photo, region.Dx(), region.Dy(), imaging.Lanczos)
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			want := fitted.NRGBAAt(x-region.Min.X, y-region.Min.Y)
			if got.NRGBAAt(x, y) != want {
				t.Fatalf("photo does not fully occlude field text at (%d,%d)", x, y)
			}
		}
	}
}

func TestComposeSkipsFields(t *testing.T) {
	base := testImage(200, 300)
	fields := []models.Field{
		{OriginalName: "Nome", X1: 20, Y1: 20, X2: 180, Y2: 50, Editable: true, SortOrder: 0},
		{OriginalName: "Fixo", X1: 20, Y1: 60, X2: 180, Y2: 90, Editable: false, SortOrder: 1},
	}

	// No value for "Nome", non-editable "Fixo" has one: neither may draw.
	got, err := Compose(base, fields, map[string]string{"Fixo": "ignored"}, nil, nil, basicfont.Face7x13)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	plain, err := Compose(base, nil, nil, nil, nil, basicfont.Face7x13)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !bytes.Equal(encodePNG(t, got), encodePNG(t, plain)) {
		t.Error("skipped fields left artifacts on the canvas")
	}
}

func TestComposeDrawsValueInsideBox(t *testing.T) {
	base := imaging.New(200, 100, image.White.C)
	fields := []models.Field{
		{OriginalName: "Nome", X1: 40, Y1: 30, X2: 160, Y2: 70, Editable: true},
	}

	got, err := Compose(base, fields, map[string]string{"Nome": "Ana"}, nil, nil, basicfont.Face7x13)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	dark := 0
	box := image.Rect(40, 30, 160, 70)
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			px := got.NRGBAAt(x, y)
			if px.R < 128 && px.G < 128 && px.B < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("no text pixels drawn inside the field box")
	}
	// Nothing outside the box should have been touched.
	bounds := got.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if (image.Pt(x, y)).In(box) {
				continue
			}
			px := got.NRGBAAt(x, y)
			if px.R < 250 || px.G < 250 || px.B < 250 {
				t.Fatalf("pixel (%d,%d) outside the field box was modified: %v", x, y, px)
			}
		}
	}
}
