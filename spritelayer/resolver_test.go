package spritelayer

import "testing"

func TestResolverInheritance(t *testing.T) {
	cases := []struct {
		name   string
		build  func() (*forest, layerTable)
		want   map[int]testLayer
		absent []int
	}{
		{
			name: "child_inherits_parent",
			build: func() (*forest, layerTable) {
				return newForest().root(1).child(1, 2), layerTable{1: layerMiddle}
			},
			want: map[int]testLayer{1: layerMiddle, 2: layerMiddle},
		},
		{
			// grandchild under a transform-less parent under a Top root
			name: "through_intermediate_nodes",
			build: func() (*forest, layerTable) {
				return newForest().root(1).child(1, 2).child(2, 3), layerTable{1: layerTop}
			},
			want: map[int]testLayer{1: layerTop, 2: layerTop, 3: layerTop},
		},
		{
			name: "own_layer_wins_and_propagates",
			build: func() (*forest, layerTable) {
				f := newForest().root(1).child(1, 2).child(2, 3).child(1, 4)
				return f, layerTable{1: layerTop, 2: layerBottom}
			},
			want: map[int]testLayer{1: layerTop, 2: layerBottom, 3: layerBottom, 4: layerTop},
		},
		{
			name: "root_without_layer_propagates_nothing",
			build: func() (*forest, layerTable) {
				f := newForest().root(1).child(1, 2).child(1, 3).child(3, 4)
				return f, layerTable{3: layerMiddle}
			},
			want:   map[int]testLayer{3: layerMiddle, 4: layerMiddle},
			absent: []int{1, 2},
		},
		{
			name: "several_roots",
			build: func() (*forest, layerTable) {
				f := newForest().root(1).root(2).child(2, 3).root(4)
				return f, layerTable{1: layerBottom, 2: layerTop}
			},
			want:   map[int]testLayer{1: layerBottom, 2: layerTop, 3: layerTop},
			absent: []int{4},
		},
		{
			name: "empty_forest",
			build: func() (*forest, layerTable) {
				return newForest(), layerTable{}
			},
			want: map[int]testLayer{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, layers := c.build()
			r := NewResolver[int, testLayer]()
			got := r.Resolve(f, layers.lookup)
			if len(got) != len(c.want) {
				t.Fatalf("expected %d entries, got %d: %v", len(c.want), len(got), got)
			}
			for e, l := range c.want {
				if got[e] != l {
					t.Fatalf("entity %d: expected layer %d, got %d (present=%v)", e, l, got[e], has(got, e))
				}
			}
			for _, e := range c.absent {
				if has(got, e) {
					t.Fatalf("entity %d should not be resolved", e)
				}
			}
		})
	}
}

func has(m map[int]testLayer, e int) bool {
	_, ok := m[e]
	return ok
}

func TestResolverSkipsDanglingChildren(t *testing.T) {
	f := newForest().root(1).child(1, 2).child(1, 3).child(3, 5)
	f.dangling(1, 99)
	f.kill(3)

	r := NewResolver[int, testLayer]()
	got := r.Resolve(f, layerTable{1: layerMiddle}.lookup)

	if !has(got, 1) || !has(got, 2) {
		t.Fatalf("live nodes should still resolve: %v", got)
	}
	if has(got, 99) || has(got, 3) || has(got, 5) {
		t.Fatalf("missing nodes and their subtrees should be skipped: %v", got)
	}
	if s := r.Stats(); s.Dangling != 2 {
		t.Fatalf("expected 2 dangling edges, got %d", s.Dangling)
	}
}

func TestResolverStopsOnCycle(t *testing.T) {
	// 1 -> 2 -> 3 -> 2
	f := newForest().root(1).child(1, 2).child(2, 3).child(3, 2)

	r := NewResolver[int, testLayer]()
	got := r.Resolve(f, layerTable{1: layerTop}.lookup)

	if len(got) != 3 {
		t.Fatalf("expected every node resolved once, got %v", got)
	}
	s := r.Stats()
	if s.Cycles != 1 {
		t.Fatalf("expected 1 cycle, got %d", s.Cycles)
	}
	if s.Visited != 3 {
		t.Fatalf("expected 3 visits, got %d", s.Visited)
	}
}

func TestResolverCapacityHint(t *testing.T) {
	f := newForest().root(1)
	for e := 2; e <= 50; e++ {
		f.child(1, e)
	}
	r := NewResolver[int, testLayer]()
	if r.CapacityHint() != 0 {
		t.Fatalf("fresh resolver should have no hint")
	}
	r.Resolve(f, layerTable{1: layerBottom}.lookup)
	if r.CapacityHint() != 50 {
		t.Fatalf("expected hint 50, got %d", r.CapacityHint())
	}
	r.Resolve(newForest().root(7), layerTable{7: layerTop}.lookup)
	if r.CapacityHint() != 1 {
		t.Fatalf("expected hint 1, got %d", r.CapacityHint())
	}
}

func TestResolverNilHierarchy(t *testing.T) {
	r := NewResolver[int, testLayer]()
	if got := r.Resolve(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
}
