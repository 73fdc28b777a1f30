package ecs

import (
	"errors"

	"github.com/milk9111/spritelayer/ecs/component"
)

var (
	ErrSelfParent  = errors.New("ecs: entity cannot parent itself")
	ErrParentCycle = errors.New("ecs: parent would create a cycle")
)

// World owns entities, their components and the parent/child arena.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	changed  map[component.ComponentID]map[Entity]struct{}
	events   EventQueue

	// indexed by slot-1
	parents  []Entity
	children [][]Entity

	physicsWorld *PhysicsWorld
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:  make(map[component.ComponentID]*SparseSet),
		changed: make(map[component.ComponentID]map[Entity]struct{}),
	}
}

// CreateEntity allocates a new root entity.
func (w *World) CreateEntity() Entity {
	e := w.entities.create()
	slot := e.Index()
	for len(w.parents) < slot {
		w.parents = append(w.parents, 0)
		w.children = append(w.children, nil)
	}
	w.parents[slot-1] = 0
	w.children[slot-1] = nil
	return e
}

// DestroyEntity removes every component of e, detaches it from its parent
// and turns its children into roots.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for id, store := range w.stores {
		if store.Remove(e) {
			delete(w.changed[id], e)
		}
	}
	w.RemoveParent(e)
	for _, child := range w.children[e.Index()-1] {
		w.parents[child.Index()-1] = 0
		w.markChanged(component.TransformComponent.Kind().ID(), child)
	}
	w.children[e.Index()-1] = nil
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

func (w *World) store(id component.ComponentID) *SparseSet {
	s, ok := w.stores[id]
	if !ok {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// AddComponent sets the value of a component kind on e and marks it changed.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(id).Set(e, value)
	w.markChanged(id, e)
	return nil
}

// RemoveComponent deletes a component kind from e.
func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	s, ok := w.stores[id]
	if !ok || !s.Remove(e) {
		return false
	}
	delete(w.changed[id], e)
	return true
}

// HasComponent reports whether e has a component kind.
func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if w == nil {
		return false
	}
	return w.stores[id].Has(e)
}

// GetComponent returns the stored value of a component kind on e.
func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil {
		return nil, false
	}
	v := w.stores[id].Get(e)
	return v, v != nil
}

func (w *World) markChanged(id component.ComponentID, e Entity) {
	set, ok := w.changed[id]
	if !ok {
		set = make(map[Entity]struct{})
		w.changed[id] = set
	}
	set[e] = struct{}{}
}

// ChangedEntities returns the live entities whose component of the given kind
// was added or replaced since the last ClearChanged, in slot order.
func (w *World) ChangedEntities(id component.ComponentID) []Entity {
	if w == nil {
		return nil
	}
	set := w.changed[id]
	out := make([]Entity, 0, len(set))
	for e := range set {
		if w.entities.isAlive(e) {
			out = append(out, e)
		}
	}
	sortEntities(out)
	return out
}

// ClearChanged forgets every change mark. The scheduler calls it once per
// frame after the last stage.
func (w *World) ClearChanged() {
	if w == nil {
		return
	}
	for _, set := range w.changed {
		clear(set)
	}
}

// WriteDepthDirect sets GlobalTransform.Z without marking the transform
// changed. It returns false when e has no GlobalTransform.
func (w *World) WriteDepthDirect(e Entity, z float32) bool {
	if w == nil {
		return false
	}
	v := w.stores[component.GlobalTransformComponent.Kind().ID()].Get(e)
	g, ok := v.(*component.GlobalTransform)
	if !ok || g == nil {
		return false
	}
	g.Z = z
	return true
}

// ResetDepthDirect returns GlobalTransform.Z to 0 without marking it changed.
func (w *World) ResetDepthDirect(e Entity) bool {
	return w.WriteDepthDirect(e, 0)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func Entities(w *World) []Entity {
	return w.Entities()
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}
