package ecs

import (
	"fmt"

	"github.com/milk9111/tickreg/ecs/component"
)

func Add[T any](r *Registry, id EntityID, handle component.ComponentHandle[T], value *T) error {
	if !handle.Valid() {
		return fmt.Errorf("%w: zero handle", component.ErrInvalidKind)
	}
	if value == nil {
		return fmt.Errorf("%w: nil %s", component.ErrInvalidComponent, handle.Kind())
	}
	r.storeFor(handle.Kind()).Set(id, value)
	return nil
}

func Remove[T any](r *Registry, id EntityID, handle component.ComponentHandle[T]) bool {
	_, ok, err := r.RemoveComponent(handle, id)
	return err == nil && ok
}

func Has[T any](r *Registry, id EntityID, handle component.ComponentHandle[T]) bool {
	_, ok := Get(r, id, handle)
	return ok
}

func Get[T any](r *Registry, id EntityID, handle component.ComponentHandle[T]) (*T, bool) {
	if !handle.Valid() {
		return nil, false
	}
	store, ok := r.stores[handle.Kind()]
	if !ok {
		return nil, false
	}
	value, ok := store.Get(id)
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

// ForEach calls fn for every entity holding the handle's kind. The ids are
// snapshotted first, so fn may add, remove or delete freely; entities that
// lose the component before their turn are skipped.
func ForEach[T any](r *Registry, handle component.ComponentHandle[T], fn func(EntityID, *T)) {
	if !handle.Valid() || fn == nil {
		return
	}
	store, ok := r.stores[handle.Kind()]
	if !ok {
		return
	}
	for _, id := range store.Keys() {
		value, ok := Get(r, id, handle)
		if !ok {
			continue
		}
		fn(id, value)
	}
}
