package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Velocity is the linear velocity requested by gameplay systems; the physics
// system copies it onto Body before stepping.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Width    float64
	Height   float64
	Radius   float64
	Velocity cp.Vector
	Static   bool
	Sensor   bool
	// Disabled removes the shape from the space on the next physics tick
	// (dead NPCs stop colliding while their hurt animation plays).
	Disabled bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
