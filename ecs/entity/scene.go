package entity

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/milk9111/spritelayer/ecs"
	"github.com/milk9111/spritelayer/ecs/component"
	"github.com/milk9111/spritelayer/prefabs"
)

// BuildScene spawns every group and the overlay of a scene.
func BuildScene(w *ecs.World, scene prefabs.SceneSpec, table *prefabs.LayerTable) ([]ecs.Entity, error) {
	rng := rand.New(rand.NewPCG(scene.Seed, scene.Seed^0x9e3779b97f4a7c15))
	var out []ecs.Entity

	for gi, g := range scene.Groups {
		l, ok := table.Lookup(g.Layer)
		if !ok {
			return nil, fmt.Errorf("scene: group %d: unknown layer %q", gi, g.Layer)
		}
		layer := RenderLayer(l)
		for i := 0; i < g.Count; i++ {
			spec := SquareSpec{
				Name:  fmt.Sprintf("%s#%d", g.Layer, i),
				Layer: &layer,
				Size:  g.Size,
				Color: g.Color.RGBA8(),
			}
			if g.Speed > 0 {
				margin := g.Size
				spec.X = margin + rng.Float64()*math.Max(scene.Width-2*margin, 1)
				spec.Y = margin + rng.Float64()*math.Max(scene.Height-2*margin, 1)
				angle := rng.Float64() * 2 * math.Pi
				spec.VX, spec.VY = math.Cos(angle)*g.Speed, math.Sin(angle)*g.Speed
				spec.Physical = true
			} else {
				spec.X, spec.Y = scene.Width/2, scene.Height/2
			}
			if g.Labels {
				spec.Label = fmt.Sprintf("%d", i)
			}
			e, err := NewSquare(w, spec)
			if err != nil {
				return nil, fmt.Errorf("scene: group %d: %w", gi, err)
			}
			out = append(out, e)
		}
	}

	if o := scene.Overlay; o != nil {
		e, err := newOverlay(w, *o, table)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func newOverlay(w *ecs.World, o prefabs.OverlaySpec, table *prefabs.LayerTable) (ecs.Entity, error) {
	l, ok := table.Lookup(o.Layer)
	if !ok {
		return 0, fmt.Errorf("scene: overlay: unknown layer %q", o.Layer)
	}
	e := w.CreateEntity()
	if err := SetEntityTransform(w, e, o.X, o.Y, 0); err != nil {
		return 0, fmt.Errorf("scene: overlay: %w", err)
	}
	_ = ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Width: o.Width, Height: o.Height, Color: o.Color.RGBA8()})
	_ = ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: "overlay"})
	layer := RenderLayer(l)
	_ = ecs.Add(w, e, component.RenderLayerComponent.Kind(), &layer)
	if o.Text != "" {
		if _, err := NewLabel(w, e, o.Text, 6, 6); err != nil {
			return 0, err
		}
	}
	return e, nil
}

// ApplyLayerTable refreshes the depth of every placed or stashed layer from
// a reloaded table, matching by name. It returns the number of entities
// updated.
func ApplyLayerTable(w *ecs.World, table *prefabs.LayerTable) int {
	updated := 0
	ecs.ForEach(w, component.RenderLayerComponent.Kind(), func(e ecs.Entity, l *component.RenderLayer) {
		if next, ok := table.Lookup(l.Name); ok && RenderLayer(next) != *l {
			*l = RenderLayer(next)
			_ = ecs.Add(w, e, component.RenderLayerComponent.Kind(), l)
			updated++
		}
	})
	ecs.ForEach(w, component.LayerStashComponent.Kind(), func(e ecs.Entity, st *component.LayerStash) {
		if next, ok := table.Lookup(st.Layer.Name); ok {
			st.Layer = RenderLayer(next)
			updated++
		}
	})
	return updated
}
