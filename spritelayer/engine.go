package spritelayer

import (
	"errors"
	"sync/atomic"
)

var ErrReentrant = errors.New("spritelayer: engine is already running")

// Phase is the engine's position in the per-frame state machine.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhasePropagating
	PhaseAssigning
	PhaseWriting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePropagating:
		return "propagating"
	case PhaseAssigning:
		return "assigning"
	case PhaseWriting:
		return "writing"
	default:
		return "unknown"
	}
}

// Frame carries everything a single run reads and writes.
type Frame[E comparable, L LayerIndex] struct {
	Hierarchy Hierarchy[E]
	Layers    LayerLookup[E, L]
	Positions PositionLookup[E]
	Depths    DepthStore[E]
	Options   Options
}

// Stats summarises one run.
type Stats struct {
	Visited  int
	Resolved int
	Dangling int
	Cycles   int
	Missing  int
	Written  int
	Cleared  int
	Skipped  int
}

// Engine chains the resolver, assigner and writer. Instantiate it once per
// layer type and keep it for the life of the scene: it carries the capacity
// hint and the participation set from frame to frame.
type Engine[E comparable, L LayerIndex] struct {
	resolver *Resolver[E, L]
	assigner *Assigner[E, L]
	writer   *Writer[E]

	phase atomic.Int32
	last  map[E]float32
}

// NewEngine builds an engine. less orders identities and breaks ties between
// equal positions; it may be called from pool workers.
func NewEngine[E comparable, L LayerIndex](less func(a, b E) bool) *Engine[E, L] {
	return &Engine[E, L]{
		resolver: NewResolver[E, L](),
		assigner: NewAssigner[E, L](less),
		writer:   NewWriter[E](),
	}
}

// SetPool hands the engine the host pool for large sorts.
func (en *Engine[E, L]) SetPool(p Pool) {
	en.assigner.SetPool(p)
}

// Phase reports where the engine currently is.
func (en *Engine[E, L]) Phase() Phase {
	return Phase(en.phase.Load())
}

// Depths returns the depth map of the last completed run. Callers must not
// modify it.
func (en *Engine[E, L]) Depths() map[E]float32 {
	return en.last
}

// Managed reports whether the engine wrote e's depth in the last run.
func (en *Engine[E, L]) Managed(e E) bool {
	return en.writer.Managed(e)
}

// Run executes one frame: resolve, assign, write. It only fails when called
// while another run is still in progress.
func (en *Engine[E, L]) Run(f Frame[E, L]) (Stats, error) {
	if !en.phase.CompareAndSwap(int32(PhaseIdle), int32(PhasePropagating)) {
		return Stats{}, ErrReentrant
	}
	defer en.phase.Store(int32(PhaseIdle))

	layers := en.resolver.Resolve(f.Hierarchy, f.Layers)
	rs := en.resolver.Stats()

	en.phase.Store(int32(PhaseAssigning))
	depths := en.assigner.Assign(layers, f.Positions, f.Options)

	en.phase.Store(int32(PhaseWriting))
	ws := en.writer.Apply(depths, f.Depths)
	en.last = depths

	return Stats{
		Visited:  rs.Visited,
		Resolved: rs.Resolved,
		Dangling: rs.Dangling,
		Cycles:   rs.Cycles,
		Missing:  en.assigner.Missing(),
		Written:  ws.Written,
		Cleared:  ws.Cleared,
		Skipped:  ws.Skipped,
	}, nil
}
