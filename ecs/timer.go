package ecs

import (
	"errors"
	"fmt"
)

var (
	ErrNilTimer        = errors.New("ecs: nil timer")
	ErrInvalidDuration = errors.New("ecs: invalid timer duration")
)

type TimerID int64

// TimerConfig describes a frame-synchronised countdown. Every callback is
// optional and receives the timer, so Ticks() is available inside it.
type TimerConfig struct {
	Duration int
	OnFirst  func(*Timer)
	OnEach   func(*Timer)
	OnLast   func(*Timer)
}

// Timer counts down once per Tick. OnEach runs on every tick, OnLast on the
// tick that finds zero ticks remaining, after which the timer stops. Ticks
// ends at -1.
type Timer struct {
	duration int
	ticks    int
	running  bool

	onFirst func(*Timer)
	onEach  func(*Timer)
	onLast  func(*Timer)

	id    TimerID
	owner *TimerManager
}

func NewTimer(cfg TimerConfig) (*Timer, error) {
	if cfg.Duration < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, cfg.Duration)
	}
	return &Timer{
		duration: cfg.Duration,
		ticks:    cfg.Duration,
		onFirst:  cfg.OnFirst,
		onEach:   cfg.OnEach,
		onLast:   cfg.OnLast,
	}, nil
}

func (t *Timer) Duration() int { return t.duration }

// Ticks returns the ticks remaining.
func (t *Timer) Ticks() int { return t.ticks }

func (t *Timer) Running() bool { return t.running }

// ID returns the id the timer was registered under, if any.
func (t *Timer) ID() (TimerID, bool) {
	if t.owner == nil {
		return 0, false
	}
	return t.id, true
}

// Start sets the timer running. OnFirst fires only if the timer has not ticked
// yet, so resuming after Pause does not repeat it.
func (t *Timer) Start() {
	if t.ticks == t.duration && t.onFirst != nil {
		t.onFirst(t)
	}
	t.running = true
}

func (t *Timer) Pause() {
	t.running = false
}

func (t *Timer) Tick() {
	if t.onEach != nil {
		t.onEach(t)
	}
	if t.ticks == 0 {
		if t.onLast != nil {
			t.onLast(t)
		}
		t.running = false
	}
	t.ticks--
}

// TimerManager owns registered timers and ticks the running ones each frame.
// Timer ids are allocated the same way entity ids are.
type TimerManager struct {
	ids    idAllocator[TimerID]
	timers *SparseSet[TimerID, *Timer]
}

func NewTimerManager(opts ...Option) *TimerManager {
	return &TimerManager{
		ids:    newIDAllocator[TimerID](applyOptions(opts)),
		timers: newSparseSet[TimerID, *Timer](),
	}
}

// Register records t and returns its id. Registering the same timer twice
// returns the id it already has. A timer owned by another manager is moved:
// it is removed there once it has an id here.
func (m *TimerManager) Register(t *Timer) (TimerID, error) {
	if t == nil {
		return 0, ErrNilTimer
	}
	if t.owner == m {
		if existing, ok := m.timers.Get(t.id); ok && existing == t {
			return t.id, nil
		}
	}
	id, ok := m.ids.allocate(m.timers.Has)
	if !ok {
		return 0, fmt.Errorf("%w: no free timer id below %d", ErrCapacityExceeded, m.ids.max)
	}
	if t.owner != nil && t.owner != m {
		t.owner.RemoveTimer(t)
	}
	m.timers.Set(id, t)
	t.id = id
	t.owner = m
	return id, nil
}

// Remove unregisters the timer with id.
func (m *TimerManager) Remove(id TimerID) bool {
	t, ok := m.timers.Remove(id)
	if ok && t.owner == m {
		t.owner = nil
	}
	return ok
}

// RemoveTimer unregisters t if it is registered here.
func (m *TimerManager) RemoveTimer(t *Timer) bool {
	if t == nil || t.owner != m {
		return false
	}
	return m.Remove(t.id)
}

func (m *TimerManager) Get(id TimerID) (*Timer, bool) {
	return m.timers.Get(id)
}

func (m *TimerManager) Len() int {
	return m.timers.Len()
}

func (m *TimerManager) RemoveAll() {
	for _, t := range m.timers.Values() {
		t.owner = nil
	}
	m.timers = newSparseSet[TimerID, *Timer]()
}

// Tick advances every running timer once. Timers removed by a callback during
// the pass are not ticked.
func (m *TimerManager) Tick() {
	for _, id := range m.timers.Keys() {
		t, ok := m.timers.Get(id)
		if !ok || !t.running {
			continue
		}
		t.Tick()
	}
}
