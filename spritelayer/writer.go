package spritelayer

import "log/slog"

// DepthStore is the host's world transform store as seen by the writer.
//
// Both methods are direct writes: they change only the depth component and
// must not mark the transform as changed for other observers. They return
// false when the object has no world transform (destroyed or never had one).
type DepthStore[E comparable] interface {
	WriteDepthDirect(e E, z float32) bool
	ResetDepthDirect(e E) bool
}

// WriteStats counts what a single Apply call did.
type WriteStats struct {
	Written int
	Cleared int
	Skipped int
}

// Writer applies depths and remembers which objects it manages so that an
// object that drops out of the depth map gets its depth reset.
type Writer[E comparable] struct {
	managed map[E]struct{}
	next    map[E]struct{}
}

func NewWriter[E comparable]() *Writer[E] {
	return &Writer[E]{
		managed: make(map[E]struct{}),
		next:    make(map[E]struct{}),
	}
}

// Managed reports whether e had its depth written by the last Apply.
func (w *Writer[E]) Managed(e E) bool {
	_, ok := w.managed[e]
	return ok
}

// ManagedCount returns the size of the participation set.
func (w *Writer[E]) ManagedCount() int {
	return len(w.managed)
}

// Apply resets stale depths first, then writes every depth in the map.
func (w *Writer[E]) Apply(depths map[E]float32, store DepthStore[E]) WriteStats {
	var stats WriteStats
	if store == nil {
		return stats
	}
	if w.managed == nil {
		w.managed = make(map[E]struct{})
	}
	if w.next == nil {
		w.next = make(map[E]struct{})
	}

	for e := range w.managed {
		if _, ok := depths[e]; ok {
			continue
		}
		if store.ResetDepthDirect(e) {
			stats.Cleared++
		}
	}

	log := Logger()
	clear(w.next)
	for e, z := range depths {
		if !store.WriteDepthDirect(e, z) {
			stats.Skipped++
			log.Debug("spritelayer: no world transform, depth skipped", slog.Any("entity", e))
			continue
		}
		w.next[e] = struct{}{}
		stats.Written++
	}

	w.managed, w.next = w.next, w.managed
	return stats
}

// Reset forgets the participation set without touching any transform.
func (w *Writer[E]) Reset() {
	clear(w.managed)
	clear(w.next)
}
