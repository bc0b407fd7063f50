package system

import (
	"github.com/milk9111/tickreg/ecs"
	"github.com/milk9111/tickreg/ecs/component"
)

// TTLSystem decrements frame-based TTL components and deletes entities when
// the TTL reaches zero. Each deletion is published as an EventExpired.
type TTLSystem struct {
	ecs.Publisher
}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	r := w.Registry()

	ecs.ForEach(r, component.TTLComponent, func(e ecs.EntityID, ttl *component.TTL) {
		if ttl.Frames > 0 {
			ttl.Frames--
			if ttl.Frames > 0 {
				return
			}
		}

		r.DeleteEntity(e)
		s.Publish(ecs.Event{Type: ecs.EventExpired, Entity: e})
	})
}
