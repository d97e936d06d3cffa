package handlers

import (
	"cardserver/config"
	"cardserver/render"

	"golang.org/x/image/font"
)

// Face used for all card text, resolved once through the font fallback chain.
var textFace font.Face

func Init() {
	textFace = render.LoadFace(config.FONT_FILE)
}
