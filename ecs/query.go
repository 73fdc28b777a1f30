package ecs

import (
	"slices"

	"github.com/milk9111/spritelayer/ecs/component"
)

// Query returns the entities that have every listed component, in slot
// order.
func (w *World) Query(kinds ...component.AnyKind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.stores[k.ID()]
		if !ok || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	// iterate the smallest set
	slices.SortFunc(sets, func(a, b *SparseSet) int { return a.Len() - b.Len() })

	out := make([]Entity, 0, sets[0].Len())
	for _, e := range sets[0].Entities() {
		match := true
		for _, other := range sets[1:] {
			if !other.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	sortEntities(out)
	return out
}

// First returns the lowest-slot entity with the component.
func (w *World) First(kind component.AnyKind) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s, ok := w.stores[kind.ID()]
	if !ok || s.Len() == 0 {
		return 0, false
	}
	first := s.Entities()[0]
	for _, e := range s.Entities()[1:] {
		if Less(e, first) {
			first = e
		}
	}
	return first, true
}

func sortEntities(es []Entity) {
	slices.SortFunc(es, func(a, b Entity) int {
		switch {
		case Less(a, b):
			return -1
		case Less(b, a):
			return 1
		}
		return 0
	})
}
