package ecs

// World owns the registry, the system order and the frame timers. It is
// driven by calling Update once per frame from a single goroutine.
type World struct {
	registry  *Registry
	scheduler *Scheduler
	timers    *TimerManager
	inputs    inputAdapters
	frame     uint64
}

// NewWorld creates an empty ECS world. The options apply to entity ids.
func NewWorld(opts ...Option) *World {
	return &World{
		registry:  NewRegistry(opts...),
		scheduler: &Scheduler{},
		timers:    NewTimerManager(),
	}
}

func (w *World) Registry() *Registry {
	if w == nil {
		return nil
	}
	return w.registry
}

func (w *World) Scheduler() *Scheduler {
	if w == nil {
		return nil
	}
	return w.scheduler
}

func (w *World) Timers() *TimerManager {
	if w == nil {
		return nil
	}
	return w.timers
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) error {
	_, err := w.scheduler.Register(s)
	return err
}

// Update polls the primary input adapter, runs all systems once, then ticks
// the timers.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.pollInput()
	w.scheduler.Update(w)
	w.timers.Tick()
	w.frame++
}

// Frame returns the number of completed updates.
func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

// Reset drops every entity, component and timer. Systems stay registered.
func (w *World) Reset() {
	w.registry.DeleteAllEntities()
	w.timers.RemoveAll()
}
