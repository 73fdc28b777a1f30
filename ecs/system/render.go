package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/spritelayer/ecs"
	"golang.org/x/image/font/basicfont"
)

// RenderSystem extracts the draw list in ecs.StageExtract and draws it
// back to front.
type RenderSystem struct {
	items []DrawItem
	pixel *ebiten.Image
	face  text.Face
}

func NewRenderSystem() *RenderSystem {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &RenderSystem{
		pixel: pixel,
		face:  text.NewGoXFace(basicfont.Face7x13),
	}
}

func (r *RenderSystem) Update(w *ecs.World) {
	if r == nil {
		return
	}
	r.items = ExtractDrawList(w, r.items)
}

// Items returns the list extracted on the last update.
func (r *RenderSystem) Items() []DrawItem {
	if r == nil {
		return nil
	}
	return r.items
}

func (r *RenderSystem) Draw(_ *ecs.World, screen *ebiten.Image) {
	if r == nil || screen == nil {
		return
	}
	for _, it := range r.items {
		if it.Label != "" {
			op := &text.DrawOptions{}
			op.GeoM.Translate(it.X, it.Y)
			op.ColorScale.ScaleWithColor(color.White)
			text.Draw(screen, it.Label, r.face, op)
			continue
		}

		img := r.pixel
		sw, sh := it.Width, it.Height
		if it.Sprite != nil && it.Sprite.Image != nil {
			img = it.Sprite.Image
			b := img.Bounds()
			if b.Dx() > 0 && b.Dy() > 0 {
				sw /= float64(b.Dx())
				sh /= float64(b.Dy())
			}
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(sw, sh)
		op.GeoM.Translate(it.X, it.Y)
		op.ColorScale.ScaleWithColor(it.Color)
		screen.DrawImage(img, op)
	}
}
