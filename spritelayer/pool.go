package spritelayer

import (
	"cmp"
	"slices"
)

// Pool runs chunks of work on the host's worker pool. ExecuteAll must block
// until every function has returned. The engine never starts goroutines of
// its own.
type Pool interface {
	ExecuteAll(work []func())
	Workers() int
}

// minChunk keeps chunks large enough that scheduling does not dominate.
const minChunk = 512

// sortParallel sorts s with cmpFn using the pool and scratch as merge space.
// cmpFn must be a strict total order so that the result is identical to a
// serial sort.
func sortParallel[T any](pool Pool, s, scratch []T, cmpFn func(a, b T) int) {
	n := len(s)
	chunks := pool.Workers()
	if chunks > n/minChunk {
		chunks = n / minChunk
	}
	if chunks < 2 {
		slices.SortStableFunc(s, cmpFn)
		return
	}

	size := (n + chunks - 1) / chunks
	bounds := make([]int, 0, chunks+1)
	for lo := 0; lo < n; lo += size {
		bounds = append(bounds, lo)
	}
	bounds = append(bounds, n)

	work := make([]func(), 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		part := s[bounds[i]:bounds[i+1]]
		work = append(work, func() { slices.SortStableFunc(part, cmpFn) })
	}
	pool.ExecuteAll(work)

	src, dst := s, scratch[:n]
	for len(bounds) > 2 {
		next := make([]int, 0, len(bounds)/2+2)
		work = work[:0]
		for i := 0; i+1 < len(bounds); i += 2 {
			lo := bounds[i]
			if i+2 >= len(bounds) {
				// Odd run out: copy through unchanged.
				hi := bounds[i+1]
				work = append(work, func() { copy(dst[lo:hi], src[lo:hi]) })
				next = append(next, lo)
				continue
			}
			mid, hi := bounds[i+1], bounds[i+2]
			work = append(work, func() { mergeInto(dst[lo:hi], src[lo:mid], src[mid:hi], cmpFn) })
			next = append(next, lo)
		}
		next = append(next, n)
		pool.ExecuteAll(work)
		bounds = next
		src, dst = dst, src
	}
	if &src[0] != &s[0] {
		copy(s, src)
	}
}

// mergeInto merges two sorted runs, taking from a on ties.
func mergeInto[T any](dst, a, b []T, cmpFn func(x, y T) int) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if cmpFn(b[j], a[i]) < 0 {
			dst[k] = b[j]
			j++
		} else {
			dst[k] = a[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], a[i:])
	copy(dst[k:], b[j:])
}

// compareKeyed orders by sort key, then by the host's identity order.
func compareKeyed[E comparable](less func(a, b E) bool) func(a, b keyed[E]) int {
	return func(a, b keyed[E]) int {
		if c := a.key.Compare(b.key); c != 0 {
			return c
		}
		if less == nil {
			return cmp.Compare(a.seq, b.seq)
		}
		switch {
		case less(a.entity, b.entity):
			return -1
		case less(b.entity, a.entity):
			return 1
		default:
			return cmp.Compare(a.seq, b.seq)
		}
	}
}
