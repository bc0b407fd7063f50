package system

import (
	"github.com/milk9111/tickreg/ecs"
	"github.com/milk9111/tickreg/ecs/component"
)

// MovementSystem adds Velocity to Transform once per frame. Entities with a
// PhysicsBody are moved by the physics system instead.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	r := w.Registry()

	ecs.ForEach(r, component.VelocityComponent, func(e ecs.EntityID, vel *component.Velocity) {
		if ecs.Has(r, e, component.PhysicsBodyComponent) {
			return
		}
		transform, ok := ecs.Get(r, e, component.TransformComponent)
		if !ok {
			return
		}
		transform.X += vel.X
		transform.Y += vel.Y
	})
}
