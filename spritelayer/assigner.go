package spritelayer

import (
	"cmp"
	"slices"
)

// PositionLookup returns the up-axis world position of an object. ok is
// false for objects without a transform; they sort as if at position 0.
type PositionLookup[E comparable] func(e E) (y float32, ok bool)

type keyed[E comparable] struct {
	key    SortKey
	entity E
	seq    int
}

// Assigner turns effective layers into depths. It is not safe for concurrent
// use; scratch buffers are reused between frames.
type Assigner[E comparable, L LayerIndex] struct {
	less    func(a, b E) bool
	pool    Pool
	seq     []keyed[E]
	scratch []keyed[E]
	buckets map[L][]keyed[E]
	missing int
}

// NewAssigner builds an assigner. less is a strict order over identities used
// to break ties between equal positions so that depths are reproducible
// across frames; with a nil less, ties fall back to map iteration order.
func NewAssigner[E comparable, L LayerIndex](less func(a, b E) bool) *Assigner[E, L] {
	return &Assigner[E, L]{less: less}
}

// SetPool configures the host pool used for large sorts. nil disables it.
func (a *Assigner[E, L]) SetPool(p Pool) {
	a.pool = p
}

// Missing returns how many objects of the last Assign had no position.
func (a *Assigner[E, L]) Missing() int {
	return a.missing
}

// Assign returns BaseDepth(layer)+offset for every object in layers.
func (a *Assigner[E, L]) Assign(layers map[E]L, pos PositionLookup[E], opts Options) map[E]float32 {
	a.missing = 0
	out := make(map[E]float32, len(layers))
	for e, layer := range layers {
		out[e] = layer.BaseDepth()
	}
	if !opts.YSort || len(layers) == 0 {
		return out
	}

	switch opts.Strategy {
	case StrategyBuckets:
		a.assignBuckets(layers, pos, opts, out)
	default:
		a.assignGlobal(layers, pos, opts, out)
	}
	return out
}

func (a *Assigner[E, L]) key(e E, pos PositionLookup[E]) SortKey {
	if pos == nil {
		a.missing++
		return MissingSortKey()
	}
	y, ok := pos(e)
	if !ok {
		a.missing++
		return MissingSortKey()
	}
	return NewSortKey(y)
}

// assignGlobal sorts every object once. The i-th of N gets i/N, which stays
// below the next layer only when layers are at least 1.0 apart.
func (a *Assigner[E, L]) assignGlobal(layers map[E]L, pos PositionLookup[E], opts Options, out map[E]float32) {
	seq := a.seq[:0]
	for e := range layers {
		seq = append(seq, keyed[E]{key: a.key(e, pos), entity: e, seq: len(seq)})
	}
	a.sort(seq, opts)

	scale := 1 / float32(len(seq))
	for i, k := range seq {
		out[k.entity] += float32(i) * scale
	}
	a.seq = seq[:0]
}

// assignBuckets sorts each layer on its own. The i-th of m gets i/(m+1).
func (a *Assigner[E, L]) assignBuckets(layers map[E]L, pos PositionLookup[E], opts Options, out map[E]float32) {
	if a.buckets == nil {
		a.buckets = make(map[L][]keyed[E])
	}
	for l, b := range a.buckets {
		a.buckets[l] = b[:0]
	}
	for e, l := range layers {
		b := a.buckets[l]
		a.buckets[l] = append(b, keyed[E]{key: a.key(e, pos), entity: e, seq: len(b)})
	}

	for l, b := range a.buckets {
		if len(b) == 0 {
			// Layer not used this frame.
			delete(a.buckets, l)
			continue
		}
		a.sort(b, opts)
		denom := float32(len(b) + 1)
		for i, k := range b {
			out[k.entity] += float32(i) / denom
		}
	}
}

func (a *Assigner[E, L]) sort(s []keyed[E], opts Options) {
	cmpFn := compareKeyed[E](a.less)
	if a.pool != nil && opts.ParallelThreshold > 0 && len(s) >= opts.ParallelThreshold {
		if cap(a.scratch) < len(s) {
			a.scratch = make([]keyed[E], len(s))
		}
		sortParallel(a.pool, s, a.scratch[:len(s)], cmpFn)
		return
	}
	slices.SortStableFunc(s, cmpFn)
}

// Order returns the objects of a depth map in ascending depth, which is the
// order render extraction draws them in. Equal depths fall back to less.
func Order[E comparable](depths map[E]float32, less func(a, b E) bool) []E {
	out := make([]E, 0, len(depths))
	for e := range depths {
		out = append(out, e)
	}
	slices.SortFunc(out, func(x, y E) int {
		if c := cmp.Compare(depths[x], depths[y]); c != 0 {
			return c
		}
		switch {
		case less == nil:
			return 0
		case less(x, y):
			return -1
		case less(y, x):
			return 1
		default:
			return 0
		}
	})
	return out
}
