package system

import (
	"log"

	"github.com/milk9111/tickreg/ecs"
)

// LifecycleLogSystem logs whatever its publisher emitted this frame.
type LifecycleLogSystem struct {
	ecs.Subscriber

	name   string
	logged int
}

// NewLifecycleLogSystem subscribes to p. name must be unique per scheduler,
// since one log system is usually registered per publisher.
func NewLifecycleLogSystem(name string, p ecs.EventSource) (*LifecycleLogSystem, error) {
	s := &LifecycleLogSystem{name: name}
	if err := s.Subscribe(p); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LifecycleLogSystem) Name() string {
	return s.name
}

// Logged is the number of events logged so far.
func (s *LifecycleLogSystem) Logged() int {
	return s.logged
}

func (s *LifecycleLogSystem) Update(w *ecs.World) {
	for _, evt := range s.Queue() {
		if evt.Data != nil {
			log.Printf("%s: frame=%d entity=%s %s %v", s.name, w.Frame(), evt.Entity, evt.Type, evt.Data)
		} else {
			log.Printf("%s: frame=%d entity=%s %s", s.name, w.Frame(), evt.Entity, evt.Type)
		}
		s.logged++
	}
}
