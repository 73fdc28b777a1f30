package spritelayer

import "log/slog"

// Hierarchy is a read-only view of the parent/child forest for one frame.
type Hierarchy[E comparable] interface {
	// Roots returns every object without a parent.
	Roots() []E
	// Children returns the direct children of e, or nil for a leaf.
	Children(e E) []E
	// Contains reports whether e is a live object.
	Contains(e E) bool
}

// LayerLookup returns the explicit layer set on an object, if any.
type LayerLookup[E comparable, L LayerIndex] func(e E) (L, bool)

// ResolveStats counts what a single Resolve call saw.
type ResolveStats struct {
	Visited  int
	Resolved int
	Dangling int
	Cycles   int
}

type resolveFrame[E comparable, L LayerIndex] struct {
	entity    E
	inherited L
	has       bool
}

// Resolver propagates explicit layers down the hierarchy. A Resolver is not
// safe for concurrent use; it keeps a capacity hint and scratch buffers
// between calls.
type Resolver[E comparable, L LayerIndex] struct {
	capHint int
	stack   []resolveFrame[E, L]
	visited map[E]struct{}
	stats   ResolveStats
}

func NewResolver[E comparable, L LayerIndex]() *Resolver[E, L] {
	return &Resolver[E, L]{}
}

// Stats returns the counters of the last Resolve call.
func (r *Resolver[E, L]) Stats() ResolveStats {
	return r.stats
}

// CapacityHint returns the size of the previous result.
func (r *Resolver[E, L]) CapacityHint() int {
	return r.capHint
}

// Resolve walks the forest depth first from every root and returns the
// effective layer of every object that has one, either its own or the one
// inherited from its nearest layered ancestor. Objects are included whether
// or not they have a transform so that inheritance reaches past them.
//
// Children the hierarchy does not contain are skipped. An object reached a
// second time means the hierarchy has a cycle (or a second parent); that
// branch is dropped and the rest of the frame continues.
func (r *Resolver[E, L]) Resolve(h Hierarchy[E], explicit LayerLookup[E, L]) map[E]L {
	r.stats = ResolveStats{}
	out := make(map[E]L, r.capHint)
	if h == nil {
		r.capHint = 0
		return out
	}

	if r.visited == nil {
		r.visited = make(map[E]struct{}, r.capHint)
	} else {
		clear(r.visited)
	}

	log := Logger()
	roots := h.Roots()
	stack := r.stack[:0]
	// Push in reverse so roots are walked in the order given.
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, resolveFrame[E, L]{entity: roots[i]})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		e := top.entity
		if !h.Contains(e) {
			r.stats.Dangling++
			log.Warn("spritelayer: hierarchy references missing object", slog.Any("entity", e))
			continue
		}
		if _, seen := r.visited[e]; seen {
			r.stats.Cycles++
			log.Error("spritelayer: object reached twice, hierarchy is not a forest", slog.Any("entity", e))
			continue
		}
		r.visited[e] = struct{}{}
		r.stats.Visited++

		current, has := top.inherited, top.has
		if explicit != nil {
			if own, ok := explicit(e); ok {
				current, has = own, true
			}
		}
		if has {
			out[e] = current
		}

		children := h.Children(e)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, resolveFrame[E, L]{entity: children[i], inherited: current, has: has})
		}
	}

	// Drop references held by the scratch stack.
	clear(stack[:cap(stack)])
	r.stack = stack[:0]
	r.stats.Resolved = len(out)
	r.capHint = len(out)
	return out
}
