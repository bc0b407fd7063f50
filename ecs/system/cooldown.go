package system

import (
	"github.com/milk9111/tickreg/ecs"
	"github.com/milk9111/tickreg/ecs/component"
)

// CooldownSystem decrements frame-based cooldowns. A finished cooldown is
// removed from its entity and published as EventCooldownFinished carrying the
// cooldown's label.
type CooldownSystem struct {
	ecs.Publisher
}

func NewCooldownSystem() *CooldownSystem {
	return &CooldownSystem{}
}

func (s *CooldownSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	r := w.Registry()

	ecs.ForEach(r, component.CooldownComponent, func(e ecs.EntityID, cd *component.Cooldown) {
		if cd.Frames > 0 {
			cd.Frames--
			return
		}

		ecs.Remove(r, e, component.CooldownComponent)
		s.Publish(ecs.Event{Type: ecs.EventCooldownFinished, Entity: e, Data: cd.Label})
	})
}
