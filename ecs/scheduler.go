package ecs

import (
	"errors"
	"fmt"
)

var (
	ErrNilSystem    = errors.New("ecs: nil system")
	ErrSystemExists = errors.New("ecs: system already registered")
)

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// Named lets a system choose the name it is registered under.
type Named interface {
	Name() string
}

// SystemName is the key a system is registered under: Name() when the system
// implements Named, its Go type otherwise.
func SystemName(s System) string {
	if n, ok := s.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}

type scheduledSystem struct {
	name   string
	system System
}

// Scheduler runs systems in registration order. At most one system may be
// registered per name.
type Scheduler struct {
	systems []scheduledSystem
}

func NewScheduler(systems ...System) (*Scheduler, error) {
	s := &Scheduler{}
	for _, system := range systems {
		if _, err := s.Register(system); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Register appends system and returns the name it was registered under.
func (s *Scheduler) Register(system System) (string, error) {
	if system == nil {
		return "", ErrNilSystem
	}
	name := SystemName(system)
	if s.indexOf(name) >= 0 {
		return "", fmt.Errorf("%w: %s", ErrSystemExists, name)
	}
	s.systems = append(s.systems, scheduledSystem{name: name, system: system})
	return name, nil
}

// Remove unregisters the system with the given name and returns it.
func (s *Scheduler) Remove(name string) (System, bool) {
	idx := s.indexOf(name)
	if idx < 0 {
		return nil, false
	}
	removed := s.systems[idx].system
	s.systems = append(s.systems[:idx], s.systems[idx+1:]...)
	return removed, true
}

// RemoveSystem unregisters system by the name it would be registered under.
func (s *Scheduler) RemoveSystem(system System) (System, bool) {
	if system == nil {
		return nil, false
	}
	return s.Remove(SystemName(system))
}

func (s *Scheduler) Get(name string) (System, bool) {
	idx := s.indexOf(name)
	if idx < 0 {
		return nil, false
	}
	return s.systems[idx].system, true
}

func (s *Scheduler) indexOf(name string) int {
	for i, entry := range s.systems {
		if entry.name == name {
			return i
		}
	}
	return -1
}

// Update runs every system once. Publishers have their events cleared and
// subscribers pull from their publisher immediately before their own Update.
func (s *Scheduler) Update(w *World) {
	current := append([]scheduledSystem(nil), s.systems...)
	for _, entry := range current {
		if p, ok := entry.system.(eventPublisher); ok {
			p.beforePublisherUpdate()
		}
		if sub, ok := entry.system.(eventSubscriber); ok {
			sub.beforeSubscriberUpdate()
		}
		entry.system.Update(w)
	}
}

// Clear removes every system.
func (s *Scheduler) Clear() {
	s.systems = nil
}

func (s *Scheduler) Len() int {
	return len(s.systems)
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	for _, entry := range s.systems {
		systems = append(systems, entry.system)
	}
	return systems
}

func (s *Scheduler) Names() []string {
	names := make([]string, 0, len(s.systems))
	for _, entry := range s.systems {
		names = append(names, entry.name)
	}
	return names
}
