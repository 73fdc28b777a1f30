package ecs

import (
	"github.com/jakecoffman/cp"
)

const (
	collisionTypeWall cp.CollisionType = iota + 1
	collisionTypeBody
)

// PhysicsWorld owns the Chipmunk space and the arena walls.
type PhysicsWorld struct {
	space         *cp.Space
	width, height float64

	shapeToEntity map[*cp.Shape]Entity
}

// NewPhysicsWorld creates a gravity-free space enclosed by four walls.
func NewPhysicsWorld(width, height float64) *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})

	pw := &PhysicsWorld{
		space:         space,
		width:         width,
		height:        height,
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
	pw.buildWalls()
	return pw
}

func (pw *PhysicsWorld) buildWalls() {
	corners := []cp.Vector{
		{X: 0, Y: 0},
		{X: pw.width, Y: 0},
		{X: pw.width, Y: pw.height},
		{X: 0, Y: pw.height},
	}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		wall := cp.NewSegment(pw.space.StaticBody, a, b, 2)
		wall.SetElasticity(1)
		wall.SetFriction(0)
		wall.SetCollisionType(collisionTypeWall)
		pw.space.AddShape(wall)
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddBox creates a dynamic box centred on (x, y) and registers it for e.
func (pw *PhysicsWorld) AddBox(e Entity, x, y, width, height, mass, elasticity float64) (*cp.Body, *cp.Shape) {
	if pw == nil || pw.space == nil || width <= 0 || height <= 0 {
		return nil, nil
	}
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	body.SetPosition(cp.Vector{X: x, Y: y})
	shape := cp.NewBox(body, width, height, 0)
	shape.SetElasticity(elasticity)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeBody)

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e
	return body, shape
}

// RemoveBody takes a body and its shape out of the space.
func (pw *PhysicsWorld) RemoveBody(body *cp.Body, shape *cp.Shape) {
	if pw == nil || pw.space == nil {
		return
	}
	if shape != nil {
		delete(pw.shapeToEntity, shape)
		pw.space.RemoveShape(shape)
	}
	if body != nil {
		pw.space.RemoveBody(body)
	}
}

// EntityForShape returns the entity that owns shape.
func (pw *PhysicsWorld) EntityForShape(shape *cp.Shape) (Entity, bool) {
	if pw == nil {
		return 0, false
	}
	e, ok := pw.shapeToEntity[shape]
	return e, ok
}

// BodyCount returns the number of registered dynamic shapes.
func (pw *PhysicsWorld) BodyCount() int {
	if pw == nil {
		return 0
	}
	return len(pw.shapeToEntity)
}

// Step advances the simulation by dt seconds.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// Prune removes the bodies of entities for which alive reports false.
func (pw *PhysicsWorld) Prune(alive func(Entity) bool) int {
	if pw == nil || alive == nil {
		return 0
	}
	removed := 0
	for shape, e := range pw.shapeToEntity {
		if alive(e) {
			continue
		}
		pw.RemoveBody(shape.Body(), shape)
		removed++
	}
	return removed
}
