package component

import "github.com/jakecoffman/cp"

// Collider describes the physics shape of an entity. Radius > 0 selects a
// circle, otherwise Width x Height box centered on the transform.
type Collider struct {
	Width  float64
	Height float64
	Radius float64
	Static bool
	Sensor bool
	Layer  CollisionLayer
}

var ColliderComponent = NewComponent[Collider]()

// Velocity in world units per second.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()

// PhysicsBody is the runtime Chipmunk body owned by the physics system.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
