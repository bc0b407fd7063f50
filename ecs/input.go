package ecs

import (
	"errors"
	"fmt"
)

var ErrNilInputAdapter = errors.New("ecs: nil input adapter")

// InputState is one frame of player intent. MoveX and MoveY are in [-1, 1].
type InputState struct {
	MoveX float64
	MoveY float64
	Fire  bool
}

// InputAdapter turns a device into InputState. Init is called once before the
// first frame; Poll is called by the world at the start of every Update.
type InputAdapter interface {
	Init() error
	Poll() InputState
}

// InputAdapterName is the name an adapter is keyed by: its Name() when it
// implements Named, its Go type otherwise.
func InputAdapterName(a InputAdapter) string {
	if n, ok := a.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fmt.Sprintf("%T", a)
}

type inputAdapters struct {
	byName  map[string]InputAdapter
	order   []string
	primary string
	state   InputState
}

// AddInputAdapter registers a under its name. Adding a second adapter with the
// same name replaces the first and keeps its place in the init order.
func (w *World) AddInputAdapter(a InputAdapter) error {
	if a == nil {
		return ErrNilInputAdapter
	}
	name := InputAdapterName(a)
	if w.inputs.byName == nil {
		w.inputs.byName = make(map[string]InputAdapter)
	}
	if _, ok := w.inputs.byName[name]; !ok {
		w.inputs.order = append(w.inputs.order, name)
	}
	w.inputs.byName[name] = a
	return nil
}

// AddPrimaryInputAdapter registers a and makes it the adapter polled each
// frame.
func (w *World) AddPrimaryInputAdapter(a InputAdapter) error {
	if err := w.AddInputAdapter(a); err != nil {
		return err
	}
	w.inputs.primary = InputAdapterName(a)
	return nil
}

func (w *World) PrimaryInput() (InputAdapter, bool) {
	if w == nil || w.inputs.primary == "" {
		return nil, false
	}
	a, ok := w.inputs.byName[w.inputs.primary]
	return a, ok
}

func (w *World) InputAdapter(name string) (InputAdapter, bool) {
	if w == nil {
		return nil, false
	}
	a, ok := w.inputs.byName[name]
	return a, ok
}

// InputAdapterNames lists adapters in registration order.
func (w *World) InputAdapterNames() []string {
	if w == nil {
		return nil
	}
	return append([]string(nil), w.inputs.order...)
}

// InitInputs calls Init on every adapter in registration order. Every adapter
// is tried; the failures are joined.
func (w *World) InitInputs() error {
	if w == nil {
		return nil
	}
	var errs []error
	for _, name := range w.inputs.order {
		if err := w.inputs.byName[name].Init(); err != nil {
			errs = append(errs, fmt.Errorf("ecs: init input %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Input returns the state polled from the primary adapter this frame. It is
// the zero state when no primary adapter is set.
func (w *World) Input() InputState {
	if w == nil {
		return InputState{}
	}
	return w.inputs.state
}

func (w *World) pollInput() {
	a, ok := w.PrimaryInput()
	if !ok {
		w.inputs.state = InputState{}
		return
	}
	w.inputs.state = a.Poll()
}
