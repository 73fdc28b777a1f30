package ecs

import "github.com/hajimehoshi/ebiten/v2"

type System interface {
	Update(w *World)
}

// Drawer is implemented by systems that also render.
type Drawer interface {
	Draw(w *World, screen *ebiten.Image)
}

// Stage orders groups of systems within a frame.
type Stage int

const (
	StageUpdate Stage = iota
	StagePostUpdate
	StageTransformPropagate
	StageSpriteLayer
	StageExtract
	stageCount
)

func (s Stage) String() string {
	switch s {
	case StageUpdate:
		return "update"
	case StagePostUpdate:
		return "post_update"
	case StageTransformPropagate:
		return "transform_propagate"
	case StageSpriteLayer:
		return "sprite_layer"
	case StageExtract:
		return "extract"
	}
	return "unknown"
}

type Scheduler struct {
	stages [stageCount][]System
}

// NewScheduler puts the given systems in StageUpdate.
func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	s.AddToStage(StageUpdate, system)
}

func (s *Scheduler) AddToStage(stage Stage, system System) {
	if system == nil || stage < 0 || stage >= stageCount {
		return
	}
	s.stages[stage] = append(s.stages[stage], system)
}

// Update runs every stage in order, then clears change marks and events.
func (s *Scheduler) Update(w *World) {
	for _, systems := range s.stages {
		for _, system := range systems {
			system.Update(w)
		}
	}
	w.ClearChanged()
	w.events.flush()
}

// Draw calls every system that implements Drawer, in stage order.
func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	for _, system := range s.Systems() {
		if d, ok := system.(Drawer); ok {
			d.Draw(w, screen)
		}
	}
}

func (s *Scheduler) Systems() []System {
	var systems []System
	for _, stage := range s.stages {
		systems = append(systems, stage...)
	}
	return systems
}
