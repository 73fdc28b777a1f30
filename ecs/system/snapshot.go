package system

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/milk9111/spritelayer/ecs"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// SnapshotSystem rasterises the extracted draw list on the CPU, for runs
// without a window. It belongs in ecs.StageExtract.
type SnapshotSystem struct {
	width, height int
	items         []DrawItem
	legend        bool
}

func NewSnapshotSystem(width, height int, legend bool) *SnapshotSystem {
	return &SnapshotSystem{width: width, height: height, legend: legend}
}

func (s *SnapshotSystem) Update(w *ecs.World) {
	if s == nil {
		return
	}
	s.items = ExtractDrawList(w, s.items)
}

// Items returns the list extracted on the last update.
func (s *SnapshotSystem) Items() []DrawItem {
	return s.items
}

// Render draws the last extracted list back to front.
func (s *SnapshotSystem) Render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colornames.Black), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	for _, it := range s.items {
		if it.Label != "" {
			drawText(img, face, it.Label, int(it.X), int(it.Y)+face.Ascent, colornames.White)
			continue
		}
		r := image.Rect(
			int(math.Floor(it.X)),
			int(math.Floor(it.Y)),
			int(math.Ceil(it.X+it.Width)),
			int(math.Ceil(it.Y+it.Height)),
		).Intersect(img.Bounds())
		if r.Empty() {
			continue
		}
		draw.Draw(img, r, image.NewUniform(it.Color), image.Point{}, draw.Over)
	}

	if s.legend {
		s.drawLegend(img, face)
	}
	return img
}

func (s *SnapshotSystem) drawLegend(img *image.RGBA, face *basicfont.Face) {
	lines := []string{fmt.Sprintf("%d items", len(s.items))}
	if n := len(s.items); n > 0 {
		lines = append(lines,
			fmt.Sprintf("min z %.4f", s.items[0].Z),
			fmt.Sprintf("max z %.4f", s.items[n-1].Z),
		)
	}
	lineH := face.Height + 2
	box := image.Rect(4, 4, 160, 8+lineH*len(lines))
	draw.Draw(img, box, image.NewUniform(color.RGBA{A: 200}), image.Point{}, draw.Over)
	for i, line := range lines {
		drawText(img, face, line, 8, 4+face.Ascent+lineH*i+2, colornames.Lightgreen)
	}
}

func drawText(dst draw.Image, face font.Face, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
