package ecs

import (
	"slices"

	"github.com/milk9111/spritelayer/ecs/component"
)

// SetParent makes child a child of parent. Reparenting marks the child's
// transform changed so its world placement is recomputed.
func (w *World) SetParent(child, parent Entity) error {
	if w == nil || !w.entities.isAlive(child) || !w.entities.isAlive(parent) {
		return component.ErrEntityNotAlive
	}
	if child == parent {
		return ErrSelfParent
	}
	for p := parent; p.Valid(); p = w.parents[p.Index()-1] {
		if p == child {
			return ErrParentCycle
		}
	}
	if w.parents[child.Index()-1] == parent {
		return nil
	}
	w.RemoveParent(child)

	slot := parent.Index() - 1
	// child slices are copy-on-write so snapshots can share them
	next := make([]Entity, len(w.children[slot]), len(w.children[slot])+1)
	copy(next, w.children[slot])
	w.children[slot] = append(next, child)
	w.parents[child.Index()-1] = parent
	w.markChanged(component.TransformComponent.Kind().ID(), child)
	return nil
}

// RemoveParent detaches e from its parent, making it a root.
func (w *World) RemoveParent(e Entity) {
	if w == nil || !w.entities.isAlive(e) {
		return
	}
	parent := w.parents[e.Index()-1]
	if !parent.Valid() {
		return
	}
	slot := parent.Index() - 1
	w.children[slot] = slices.DeleteFunc(slices.Clone(w.children[slot]), func(c Entity) bool { return c == e })
	w.parents[e.Index()-1] = 0
	w.markChanged(component.TransformComponent.Kind().ID(), e)
}

// Parent returns the parent of e, if any.
func (w *World) Parent(e Entity) (Entity, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return 0, false
	}
	p := w.parents[e.Index()-1]
	return p, p.Valid()
}

// Children returns the children of e in insertion order. The slice must not
// be modified.
func (w *World) Children(e Entity) []Entity {
	if w == nil || !w.entities.isAlive(e) {
		return nil
	}
	return w.children[e.Index()-1]
}

// Roots returns every live entity without a parent, in slot order.
func (w *World) Roots() []Entity {
	if w == nil {
		return nil
	}
	var out []Entity
	w.entities.each(func(e Entity) {
		if !w.parents[e.Index()-1].Valid() {
			out = append(out, e)
		}
	})
	return out
}

// Snapshot captures the hierarchy as it is now. Later edits to the world do
// not show through.
func (w *World) Snapshot() *HierarchySnapshot {
	s := &HierarchySnapshot{}
	if w == nil {
		return s
	}
	s.roots = w.Roots()
	s.children = slices.Clone(w.children)
	s.gen = slices.Clone(w.entities.gen)
	s.alive = slices.Clone(w.entities.alive)
	return s
}

// HierarchySnapshot is a read-only view of the parent/child arena.
type HierarchySnapshot struct {
	roots    []Entity
	children [][]Entity
	gen      []generation
	alive    []bool
}

func (s *HierarchySnapshot) Roots() []Entity {
	return s.roots
}

func (s *HierarchySnapshot) Children(e Entity) []Entity {
	if !s.Contains(e) {
		return nil
	}
	return s.children[e.Index()-1]
}

// Contains reports whether e was alive when the snapshot was taken.
func (s *HierarchySnapshot) Contains(e Entity) bool {
	slot := e.Index() - 1
	if slot < 0 || slot >= len(s.gen) {
		return false
	}
	return s.alive[slot] && s.gen[slot] == e.generation()
}
