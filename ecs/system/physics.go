package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritelayer/ecs"
	"github.com/milk9111/spritelayer/ecs/component"
)

const physicsStep = 1.0 / 60.0

// PhysicsSystem creates Chipmunk bodies for new PhysicsBody components,
// steps the space and copies positions back into Transform.
type PhysicsSystem struct {
	dt float64
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{dt: physicsStep}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	pw.Prune(w.IsAlive)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.PhysicsBody, t *component.Transform) {
		if b.Body != nil {
			return
		}
		b.Body, b.Shape = pw.AddBox(e, t.X, t.Y, b.Width, b.Height, b.Mass, b.Elasticity)
		if b.Body != nil {
			b.Body.SetVelocityVector(cp.Vector{X: b.VelocityX, Y: b.VelocityY})
		}
	})

	pw.Step(ps.dt)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.PhysicsBody, t *component.Transform) {
		if b.Body == nil {
			return
		}
		pos := b.Body.Position()
		if pos.X == t.X && pos.Y == t.Y {
			return
		}
		t.X, t.Y = pos.X, pos.Y
		// re-add so propagation sees the move
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), t)
	})
}
