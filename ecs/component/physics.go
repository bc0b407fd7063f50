package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape are owned by the physics system and stay nil until the
// entity has been seen by it.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]("physics_body")

func (*PhysicsBody) ComponentKind() Kind { return PhysicsBodyComponent.Kind() }
