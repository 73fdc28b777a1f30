package system

import (
	"math"

	"github.com/milk9111/spritelayer/ecs"
	"github.com/milk9111/spritelayer/ecs/component"
)

// TransformPropagateSystem composes local transforms into GlobalTransform.
// Only subtrees under a changed Transform are recomputed, so a depth written
// directly into GlobalTransform.Z survives until the entity moves again.
type TransformPropagateSystem struct {
	stack   []propagateItem
	visited map[ecs.Entity]struct{}
}

type propagateItem struct {
	e      ecs.Entity
	parent component.GlobalTransform
}

func NewTransformPropagateSystem() *TransformPropagateSystem {
	return &TransformPropagateSystem{visited: make(map[ecs.Entity]struct{})}
}

func (s *TransformPropagateSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dirty := ecs.Changed(w, component.TransformComponent.Kind())
	if len(dirty) == 0 {
		return
	}
	dirtySet := make(map[ecs.Entity]struct{}, len(dirty))
	for _, e := range dirty {
		dirtySet[e] = struct{}{}
	}
	clear(s.visited)

	for _, e := range dirty {
		if hasDirtyAncestor(w, e, dirtySet) {
			continue
		}
		s.propagate(w, e, parentGlobal(w, e))
	}
}

// hasDirtyAncestor reports whether an ancestor will recompute e anyway.
func hasDirtyAncestor(w *ecs.World, e ecs.Entity, dirty map[ecs.Entity]struct{}) bool {
	for p, ok := w.Parent(e); ok; p, ok = w.Parent(p) {
		if _, hit := dirty[p]; hit {
			return true
		}
	}
	return false
}

// parentGlobal returns the world placement e's local transform is relative
// to. Ancestors without a GlobalTransform pass their parent's through.
func parentGlobal(w *ecs.World, e ecs.Entity) component.GlobalTransform {
	for p, ok := w.Parent(e); ok; p, ok = w.Parent(p) {
		if g, ok := ecs.Get(w, p, component.GlobalTransformComponent.Kind()); ok {
			return *g
		}
	}
	return identityGlobal()
}

func (s *TransformPropagateSystem) propagate(w *ecs.World, root ecs.Entity, parent component.GlobalTransform) {
	s.stack = append(s.stack[:0], propagateItem{e: root, parent: parent})
	for len(s.stack) > 0 {
		item := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		if _, seen := s.visited[item.e]; seen {
			continue
		}
		s.visited[item.e] = struct{}{}

		next := item.parent
		if local, ok := ecs.Get(w, item.e, component.TransformComponent.Kind()); ok {
			next = Compose(item.parent, *local)
			if g, ok := ecs.Get(w, item.e, component.GlobalTransformComponent.Kind()); ok {
				*g = next
			} else {
				g := next
				_ = ecs.Add(w, item.e, component.GlobalTransformComponent.Kind(), &g)
			}
		}
		for _, child := range w.Children(item.e) {
			s.stack = append(s.stack, propagateItem{e: child, parent: next})
		}
	}
}

func identityGlobal() component.GlobalTransform {
	return component.GlobalTransform{ScaleX: 1, ScaleY: 1}
}

// Compose places a local transform inside its parent's world placement.
func Compose(parent component.GlobalTransform, local component.Transform) component.GlobalTransform {
	psx, psy := nonZero(parent.ScaleX), nonZero(parent.ScaleY)
	lx, ly := local.X*psx, local.Y*psy
	sin, cos := math.Sincos(parent.Rotation)

	return component.GlobalTransform{
		X:        parent.X + lx*cos - ly*sin,
		Y:        parent.Y + lx*sin + ly*cos,
		Z:        parent.Z + local.Z,
		ScaleX:   psx * nonZero(local.ScaleX),
		ScaleY:   psy * nonZero(local.ScaleY),
		Rotation: parent.Rotation + local.Rotation,
	}
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
