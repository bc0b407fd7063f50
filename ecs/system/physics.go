package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tickreg/ecs"
	"github.com/milk9111/tickreg/ecs/component"
)

const spaceIterations = 20

// PhysicsSystem owns a Chipmunk space. Every entity holding a PhysicsBody and
// a Transform gets a circle body; Velocity is handed to the body before the
// step and the resulting position and velocity are written back after it.
type PhysicsSystem struct {
	space   *cp.Space
	gravity float64
	bodies  map[ecs.EntityID]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

func NewPhysicsSystem(gravity float64) *PhysicsSystem {
	return &PhysicsSystem{
		space:   newSpace(gravity),
		gravity: gravity,
		bodies:  make(map[ecs.EntityID]*bodyInfo),
	}
}

func newSpace(gravity float64) *cp.Space {
	space := cp.NewSpace()
	space.Iterations = spaceIterations
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Bodies reports how many entities currently have a body in the space.
func (ps *PhysicsSystem) Bodies() int {
	if ps == nil {
		return 0
	}
	return len(ps.bodies)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace(ps.gravity)
		ps.bodies = make(map[ecs.EntityID]*bodyInfo)
	}
	r := w.Registry()

	ps.cleanupEntities(r)
	ps.syncEntities(r)

	ps.space.Step(1.0)

	ps.syncTransforms(r)
}

func (ps *PhysicsSystem) syncEntities(r *ecs.Registry) {
	entities, _ := r.Query(component.PhysicsBodyComponent, component.TransformComponent)
	for _, e := range entities {
		bodyComp, ok := ecs.Get(r, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}
		transform, ok := ecs.Get(r, e, component.TransformComponent)
		if !ok {
			continue
		}

		info := ps.bodies[e]
		if info == nil {
			info = ps.createBodyInfo(transform, bodyComp)
			ps.bodies[e] = info
			bodyComp.Body = info.body
			bodyComp.Shape = info.shape
		}

		if info.static {
			continue
		}
		if vel, ok := ecs.Get(r, e, component.VelocityComponent); ok {
			info.body.SetVelocityVector(cp.Vector{X: vel.X, Y: vel.Y})
		}
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	center := cp.Vector{X: transform.X, Y: transform.Y}

	if bodyComp.Static {
		shape := cp.NewCircle(ps.space.StaticBody, bodyComp.Radius, center)
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, bodyComp.Radius, cp.Vector{}))
	body.SetPosition(center)
	body.SetAngle(transform.Rotation)

	shape := cp.NewCircle(body, bodyComp.Radius, cp.Vector{})
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

func (ps *PhysicsSystem) syncTransforms(r *ecs.Registry) {
	for e, info := range ps.bodies {
		if info.static {
			continue
		}
		transform, ok := ecs.Get(r, e, component.TransformComponent)
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = info.body.Angle()

		if vel, ok := ecs.Get(r, e, component.VelocityComponent); ok {
			v := info.body.Velocity()
			vel.X = v.X
			vel.Y = v.Y
		}
	}
}

// cleanupEntities drops bodies whose entity is gone, lost its PhysicsBody, or
// had the component replaced by a fresh one.
func (ps *PhysicsSystem) cleanupEntities(r *ecs.Registry) {
	for e, info := range ps.bodies {
		if r.IsAlive(e) {
			if bodyComp, ok := ecs.Get(r, e, component.PhysicsBodyComponent); ok && bodyComp.Shape == info.shape {
				continue
			}
		}
		ps.space.RemoveShape(info.shape)
		if !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.bodies, e)
	}
}
