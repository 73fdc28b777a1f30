package spritelayer

import (
	"sync"
)

type testLayer int

const (
	layerBottom testLayer = iota
	layerMiddle
	layerTop
)

func (l testLayer) BaseDepth() float32 { return float32(l) }

// scaledLayer spaces layers far apart, for precision tests.
type scaledLayer float32

func (l scaledLayer) BaseDepth() float32 { return float32(l) }

func lessInt(a, b int) bool { return a < b }

// forest is a map based hierarchy used by the tests.
type forest struct {
	roots    []int
	children map[int][]int
	live     map[int]bool
}

func newForest() *forest {
	return &forest{children: map[int][]int{}, live: map[int]bool{}}
}

func (f *forest) root(e int) *forest {
	f.roots = append(f.roots, e)
	f.live[e] = true
	return f
}

func (f *forest) child(parent, e int) *forest {
	f.children[parent] = append(f.children[parent], e)
	f.live[e] = true
	return f
}

func (f *forest) Roots() []int           { return f.roots }
func (f *forest) Children(e int) []int   { return f.children[e] }
func (f *forest) Contains(e int) bool    { return f.live[e] }
func (f *forest) kill(e int)             { delete(f.live, e) }
func (f *forest) dangling(parent, e int) { f.children[parent] = append(f.children[parent], e) }

type layerTable map[int]testLayer

func (t layerTable) lookup(e int) (testLayer, bool) {
	l, ok := t[e]
	return l, ok
}

type positions map[int]float32

func (p positions) lookup(e int) (float32, bool) {
	y, ok := p[e]
	return y, ok
}

// memStore is a DepthStore over plain maps.
type memStore struct {
	z           map[int]float32
	noTransform map[int]bool
	writes      int
	resets      int
}

func newMemStore() *memStore {
	return &memStore{z: map[int]float32{}, noTransform: map[int]bool{}}
}

func (s *memStore) WriteDepthDirect(e int, z float32) bool {
	if s.noTransform[e] {
		return false
	}
	s.z[e] = z
	s.writes++
	return true
}

func (s *memStore) ResetDepthDirect(e int) bool {
	if s.noTransform[e] {
		return false
	}
	s.z[e] = 0
	s.resets++
	return true
}

// goPool runs every chunk on its own goroutine.
type goPool struct {
	workers int
	calls   int
}

func (p *goPool) Workers() int { return p.workers }

func (p *goPool) ExecuteAll(work []func()) {
	p.calls++
	var wg sync.WaitGroup
	wg.Add(len(work))
	for _, fn := range work {
		go func() {
			defer wg.Done()
			fn()
		}()
	}
	wg.Wait()
}
