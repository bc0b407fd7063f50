package component

type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]("transform")

func (*Transform) ComponentKind() Kind { return TransformComponent.Kind() }

// Velocity is applied to Transform once per tick by the movement system, or
// handed to the body when the entity also has a PhysicsBody.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]("velocity")

func (*Velocity) ComponentKind() Kind { return VelocityComponent.Kind() }
