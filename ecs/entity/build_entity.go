package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/spritelayer/ecs"
	"github.com/milk9111/spritelayer/ecs/component"
	"github.com/milk9111/spritelayer/prefabs"
)

// RenderLayer converts a layer table row into its component.
func RenderLayer(l prefabs.Layer) component.RenderLayer {
	return component.RenderLayer{Index: l.Index, Name: l.Name, Depth: l.Depth}
}

// SquareSpec describes one demo square.
type SquareSpec struct {
	Name     string
	Layer    *component.RenderLayer
	X, Y     float64
	Size     float64
	VX, VY   float64
	Color    color.RGBA
	Label    string
	Physical bool
}

// NewSquare spawns a square centred on (X, Y). A label becomes a child
// entity without a layer of its own.
func NewSquare(w *ecs.World, spec SquareSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("square: world is nil")
	}
	e := w.CreateEntity()
	if err := SetEntityTransform(w, e, spec.X, spec.Y, 0); err != nil {
		return 0, fmt.Errorf("square: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:   spec.Size,
		Height:  spec.Size,
		Color:   spec.Color,
		OriginX: spec.Size / 2,
		OriginY: spec.Size / 2,
	}); err != nil {
		return 0, fmt.Errorf("square: sprite: %w", err)
	}
	if spec.Name != "" {
		_ = ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name})
	}
	if spec.Layer != nil {
		layer := *spec.Layer
		if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &layer); err != nil {
			return 0, fmt.Errorf("square: layer: %w", err)
		}
	}
	if spec.Physical {
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:      spec.Size,
			Height:     spec.Size,
			Mass:       1,
			Elasticity: 1,
			VelocityX:  spec.VX,
			VelocityY:  spec.VY,
		}); err != nil {
			return 0, fmt.Errorf("square: body: %w", err)
		}
	}
	if spec.Label != "" {
		if _, err := NewLabel(w, e, spec.Label, -spec.Size/2, -spec.Size/2-14); err != nil {
			return 0, err
		}
	}
	return e, nil
}

// NewLabel attaches a text child at a local offset from parent.
func NewLabel(w *ecs.World, parent ecs.Entity, text string, dx, dy float64) (ecs.Entity, error) {
	e := w.CreateEntity()
	if err := SetEntityTransform(w, e, dx, dy, 0); err != nil {
		return 0, fmt.Errorf("label: %w", err)
	}
	if err := ecs.Add(w, e, component.LabelComponent.Kind(), &component.Label{Text: text}); err != nil {
		return 0, fmt.Errorf("label: %w", err)
	}
	if err := w.SetParent(e, parent); err != nil {
		return 0, fmt.Errorf("label: %w", err)
	}
	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}
