package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data for an entity that is moved by
// the physics step.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Width      float64
	Height     float64
	Mass       float64
	Elasticity float64
	// initial velocity, applied when the body is created
	VelocityX float64
	VelocityY float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
