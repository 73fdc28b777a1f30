package system

import (
	"github.com/milk9111/spritelayer/ecs"
	"github.com/milk9111/spritelayer/ecs/component"
)

// LayerStripSystem takes RenderLayer off every entity while stripped is set
// and puts it back when cleared. The stashed layer lives in LayerStash.
type LayerStripSystem struct {
	stripped bool
	applied  bool
}

func NewLayerStripSystem() *LayerStripSystem {
	return &LayerStripSystem{}
}

func (s *LayerStripSystem) SetStripped(v bool) {
	s.stripped = v
}

func (s *LayerStripSystem) Stripped() bool {
	return s.applied
}

func (s *LayerStripSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.stripped == s.applied {
		return
	}
	if s.stripped {
		ecs.ForEach(w, component.RenderLayerComponent.Kind(), func(e ecs.Entity, l *component.RenderLayer) {
			_ = ecs.Add(w, e, component.LayerStashComponent.Kind(), &component.LayerStash{Layer: *l})
		})
		for _, e := range w.Query(component.LayerStashComponent.Kind()) {
			ecs.Remove(w, e, component.RenderLayerComponent.Kind())
		}
	} else {
		ecs.ForEach(w, component.LayerStashComponent.Kind(), func(e ecs.Entity, st *component.LayerStash) {
			layer := st.Layer
			_ = ecs.Add(w, e, component.RenderLayerComponent.Kind(), &layer)
		})
		for _, e := range w.Query(component.LayerStashComponent.Kind()) {
			ecs.Remove(w, e, component.LayerStashComponent.Kind())
		}
	}
	s.applied = s.stripped
	w.Events().Push(ecs.Event{Type: ecs.EventLayersStripped, Data: s.applied})
}
