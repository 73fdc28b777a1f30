package system

import (
	"log"

	"github.com/milk9111/spritelayer/ecs"
	"github.com/milk9111/spritelayer/ecs/component"
	"github.com/milk9111/spritelayer/spritelayer"
)

// SpriteLayerSystem runs the depth engine over the world for one layer
// component kind. It belongs in ecs.StageSpriteLayer, after transform
// propagation and before render extraction.
type SpriteLayerSystem[L spritelayer.LayerIndex] struct {
	kind    component.ComponentKind[L]
	options *spritelayer.Options
	engine  *spritelayer.Engine[ecs.Entity, L]
	stats   spritelayer.Stats
}

// NewSpriteLayerSystem builds the system. options is read every frame, so
// other systems may toggle it; nil means spritelayer.DefaultOptions.
func NewSpriteLayerSystem[L spritelayer.LayerIndex](kind component.ComponentKind[L], options *spritelayer.Options) *SpriteLayerSystem[L] {
	return &SpriteLayerSystem[L]{
		kind:    kind,
		options: options,
		engine:  spritelayer.NewEngine[ecs.Entity, L](ecs.Less),
	}
}

// SetPool lets large frames sort on a worker pool.
func (s *SpriteLayerSystem[L]) SetPool(p spritelayer.Pool) {
	s.engine.SetPool(p)
}

// Stats returns the counters of the last frame.
func (s *SpriteLayerSystem[L]) Stats() spritelayer.Stats {
	return s.stats
}

// Depths returns the depths assigned on the last frame.
func (s *SpriteLayerSystem[L]) Depths() map[ecs.Entity]float32 {
	return s.engine.Depths()
}

func (s *SpriteLayerSystem[L]) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	opts := spritelayer.DefaultOptions()
	if s.options != nil {
		opts = *s.options
	}

	stats, err := s.engine.Run(spritelayer.Frame[ecs.Entity, L]{
		Hierarchy: w.Snapshot(),
		Layers: func(e ecs.Entity) (L, bool) {
			v, ok := ecs.Get(w, e, s.kind)
			if !ok {
				var zero L
				return zero, false
			}
			return *v, true
		},
		Positions: func(e ecs.Entity) (float32, bool) {
			g, ok := ecs.Get(w, e, component.GlobalTransformComponent.Kind())
			if !ok {
				return 0, false
			}
			// screen y grows downward; the engine wants y up
			return -float32(g.Y), true
		},
		Depths:  worldDepths{w: w},
		Options: opts,
	})
	if err != nil {
		log.Printf("SpriteLayerSystem: %v", err)
		return
	}
	s.stats = stats

	w.Events().Push(ecs.Event{Type: ecs.EventDepthReport, Data: ecs.DepthReport{
		Resolved: stats.Resolved,
		Written:  stats.Written,
		Cleared:  stats.Cleared,
		Skipped:  stats.Skipped,
		Dangling: stats.Dangling,
		Cycles:   stats.Cycles,
	}})
}

// worldDepths writes depths straight into GlobalTransform.Z and keeps the
// DepthManaged marker in step.
type worldDepths struct {
	w *ecs.World
}

func (d worldDepths) WriteDepthDirect(e ecs.Entity, z float32) bool {
	if !d.w.WriteDepthDirect(e, z) {
		return false
	}
	if m, ok := ecs.Get(d.w, e, component.DepthManagedComponent.Kind()); ok {
		m.Depth = z
		return true
	}
	_ = ecs.Add(d.w, e, component.DepthManagedComponent.Kind(), &component.DepthManaged{Depth: z})
	return true
}

func (d worldDepths) ResetDepthDirect(e ecs.Entity) bool {
	ecs.Remove(d.w, e, component.DepthManagedComponent.Kind())
	return d.w.ResetDepthDirect(e)
}
