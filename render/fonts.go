package render

import (
	"log"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

const fontSize = 24

// Locations tried after the configured font file.
var systemFonts = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/Library/Fonts/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

// LoadFace resolves the card text face once, at startup, walking an ordered
// fallback chain: the configured font file, then well-known system fonts,
// then the built-in bitmap face. Render time never handles font failures.
func LoadFace(configured string) font.Face {
	chain := systemFonts
	if configured != "" {
		chain = append([]string{configured}, chain...)
	}
	for _, path := range chain {
		face, err := loadFontFile(path)
		if err == nil {
			return face
		}
	}
	log.Print("No TrueType font found, card text will use the built-in bitmap face")
	return basicfont.Face7x13
}

func loadFontFile(path string) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
