package component

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite is a solid quad, optionally backed by an image.
type Sprite struct {
	Image   *ebiten.Image
	Width   float64
	Height  float64
	Color   color.RGBA
	OriginX float64
	OriginY float64
}

var SpriteComponent = NewComponent[Sprite]()
