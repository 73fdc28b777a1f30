package spritelayer

import (
	"errors"
	"fmt"
	"strings"
)

// LayerIndex is implemented by the host's layer type. BaseDepth must be pure
// and monotonic with the layer order, and distinct layers must be at least
// 1.0 apart.
type LayerIndex interface {
	comparable
	BaseDepth() float32
}

// Strategy selects how the y-sort offset is computed.
type Strategy uint8

const (
	// StrategyGlobal sorts every resolved object once and gives the i-th of
	// N objects an offset of i/N.
	StrategyGlobal Strategy = iota
	// StrategyBuckets sorts each layer on its own and gives the i-th of m
	// objects in a layer an offset of i/(m+1).
	StrategyBuckets
)

var ErrUnknownStrategy = errors.New("spritelayer: unknown strategy")

func (s Strategy) String() string {
	switch s {
	case StrategyGlobal:
		return "global"
	case StrategyBuckets:
		return "buckets"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// ParseStrategy maps a config name to a Strategy. An empty name is global.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "global":
		return StrategyGlobal, nil
	case "buckets", "bucket", "per_layer":
		return StrategyBuckets, nil
	default:
		return StrategyGlobal, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// DefaultParallelThreshold is the sequence length from which the sort is
// split across the pool.
const DefaultParallelThreshold = 4096

// Options is owned by the host and read once at the start of every run.
type Options struct {
	// YSort enables the position based offset inside a layer.
	YSort bool
	// Strategy picks the offset formula. Only used when YSort is set.
	Strategy Strategy
	// ParallelThreshold is the minimum sequence length sorted on the pool.
	// Zero or negative disables the parallel sort.
	ParallelThreshold int
}

// DefaultOptions returns y-sort enabled with the global strategy.
func DefaultOptions() Options {
	return Options{
		YSort:             true,
		Strategy:          StrategyGlobal,
		ParallelThreshold: DefaultParallelThreshold,
	}
}
