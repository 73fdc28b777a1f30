package spritelayer

import "testing"

func TestWriterClearsObjectsThatStopParticipating(t *testing.T) {
	store := newMemStore()
	w := NewWriter[int]()

	stats := w.Apply(map[int]float32{1: 2.5, 2: 1.25}, store)
	if stats.Written != 2 || stats.Cleared != 0 {
		t.Fatalf("unexpected first frame stats %+v", stats)
	}
	if !w.Managed(1) || !w.Managed(2) {
		t.Fatalf("both objects should be managed")
	}

	stats = w.Apply(map[int]float32{2: 1.5}, store)
	if stats.Cleared != 1 || stats.Written != 1 {
		t.Fatalf("unexpected second frame stats %+v", stats)
	}
	if store.z[1] != 0 {
		t.Fatalf("stale depth should be reset to 0, got %v", store.z[1])
	}
	if store.z[2] != 1.5 {
		t.Fatalf("expected 1.5, got %v", store.z[2])
	}
	if w.Managed(1) {
		t.Fatalf("object 1 should no longer be managed")
	}

	// A third frame must not reset object 1 again.
	resets := store.resets
	w.Apply(map[int]float32{2: 1.5}, store)
	if store.resets != resets {
		t.Fatalf("object reset twice")
	}
}

func TestWriterSkipsMissingTransforms(t *testing.T) {
	store := newMemStore()
	store.noTransform[3] = true
	w := NewWriter[int]()

	stats := w.Apply(map[int]float32{1: 1, 3: 2}, store)
	if stats.Written != 1 || stats.Skipped != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if _, ok := store.z[3]; ok {
		t.Fatalf("object without transform should not be written")
	}
	if w.Managed(3) {
		t.Fatalf("skipped object should not be managed")
	}
	if w.ManagedCount() != 1 {
		t.Fatalf("expected 1 managed object, got %d", w.ManagedCount())
	}
}

func TestWriterDestroyedObjectIsNotCleared(t *testing.T) {
	store := newMemStore()
	w := NewWriter[int]()
	w.Apply(map[int]float32{1: 1}, store)

	store.noTransform[1] = true
	stats := w.Apply(map[int]float32{}, store)
	if stats.Cleared != 0 {
		t.Fatalf("destroyed object cannot be cleared, got %+v", stats)
	}
	if w.ManagedCount() != 0 {
		t.Fatalf("destroyed object should drop out of the participation set")
	}
}

func TestWriterNilStore(t *testing.T) {
	w := NewWriter[int]()
	if stats := w.Apply(map[int]float32{1: 1}, nil); stats != (WriteStats{}) {
		t.Fatalf("expected empty stats, got %+v", stats)
	}
}
