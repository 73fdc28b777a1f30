package system

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/milk9111/spritelayer/ecs"
	"github.com/milk9111/spritelayer/ecs/component"
)

// DrawItem is one extracted sprite or label, in world space.
type DrawItem struct {
	Entity ecs.Entity
	X, Y   float64
	Z      float32
	Width  float64
	Height float64
	Color  color.RGBA
	Sprite *component.Sprite
	Label  string
}

// ExtractDrawList collects every drawable entity and orders it back to
// front: ascending GlobalTransform.Z, then entity.
func ExtractDrawList(w *ecs.World, out []DrawItem) []DrawItem {
	out = out[:0]
	if w == nil {
		return out
	}
	ecs.ForEach2(w, component.GlobalTransformComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, g *component.GlobalTransform, s *component.Sprite) {
		sx, sy := nonZero(g.ScaleX), nonZero(g.ScaleY)
		out = append(out, DrawItem{
			Entity: e,
			X:      g.X - s.OriginX*sx,
			Y:      g.Y - s.OriginY*sy,
			Z:      g.Z,
			Width:  s.Width * sx,
			Height: s.Height * sy,
			Color:  s.Color,
			Sprite: s,
		})
	})
	ecs.ForEach2(w, component.GlobalTransformComponent.Kind(), component.LabelComponent.Kind(), func(e ecs.Entity, g *component.GlobalTransform, l *component.Label) {
		out = append(out, DrawItem{Entity: e, X: g.X, Y: g.Y, Z: g.Z, Label: l.Text})
	})

	slices.SortStableFunc(out, func(a, b DrawItem) int {
		switch {
		case a.Z < b.Z:
			return -1
		case a.Z > b.Z:
			return 1
		case ecs.Less(a.Entity, b.Entity):
			return -1
		case ecs.Less(b.Entity, a.Entity):
			return 1
		}
		return 0
	})
	return out
}

// FormatDrawList renders the list as one "z name" line per sprite, back to
// front. Labels are skipped.
func FormatDrawList(w *ecs.World, items []DrawItem) string {
	var b strings.Builder
	for _, it := range items {
		if it.Label != "" {
			continue
		}
		name := it.Entity.String()
		if n, ok := ecs.Get(w, it.Entity, component.NameComponent.Kind()); ok && n.Value != "" {
			name = n.Value
		}
		fmt.Fprintf(&b, "%10.5f %s\n", it.Z, name)
	}
	return b.String()
}
