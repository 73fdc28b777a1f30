package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// GroupPool runs each batch on an errgroup bounded to a fixed number of
// goroutines. It suits tools that have no long lived pool to share.
type GroupPool struct {
	limit int
}

// NewGroupPool returns a pool limited to n goroutines per batch, or
// GOMAXPROCS when n <= 0.
func NewGroupPool(n int) *GroupPool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return &GroupPool{limit: n}
}

func (g *GroupPool) Workers() int {
	return g.limit
}

// ExecuteAll blocks until every function has returned.
func (g *GroupPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	var eg errgroup.Group
	eg.SetLimit(g.limit)
	for _, fn := range work {
		eg.Go(func() error {
			fn()
			return nil
		})
	}
	_ = eg.Wait()
}
