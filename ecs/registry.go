package ecs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/tickreg/ecs/component"
)

var (
	ErrCapacityExceeded = errors.New("ecs: entity id capacity exceeded")
	ErrInvalidArgument  = errors.New("ecs: invalid argument")
)

// Registry owns entity identity and the association of components with
// entities. It is the only place entity ids are minted or retired.
//
// A Registry is not safe for concurrent use. Callers that share one across
// goroutines must wrap every call in a single lock.
type Registry struct {
	ids    idAllocator[EntityID]
	live   *SparseSet[EntityID, struct{}]
	stores map[component.Kind]*SparseSet[EntityID, any]
}

// NewRegistry creates an empty registry. Without options ids start at
// DefaultFirstID and never reach MaxSafeID.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		ids:    newIDAllocator[EntityID](applyOptions(opts)),
		live:   newSparseSet[EntityID, struct{}](),
		stores: make(map[component.Kind]*SparseSet[EntityID, any]),
	}
}

// MaxID returns the exclusive id ceiling.
func (r *Registry) MaxID() EntityID {
	return r.ids.max
}

// CreateEntity allocates a fresh id with no components.
func (r *Registry) CreateEntity() (EntityID, error) {
	id, ok := r.ids.allocate(r.live.Has)
	if !ok {
		return 0, fmt.Errorf("%w: no free id below %d", ErrCapacityExceeded, r.ids.max)
	}
	r.live.Set(id, struct{}{})
	return id, nil
}

// DeleteEntity purges id from every component kind ever registered and
// retires it. Deleting an id that is not live is a no-op.
func (r *Registry) DeleteEntity(id EntityID) {
	for _, store := range r.stores {
		store.Remove(id)
	}
	r.live.Remove(id)
}

// DeleteAllEntities drops every id and every component store in one step.
// The allocation hint is left where it was.
func (r *Registry) DeleteAllEntities() {
	r.live = newSparseSet[EntityID, struct{}]()
	r.stores = make(map[component.Kind]*SparseSet[EntityID, any])
}

func (r *Registry) IsAlive(id EntityID) bool {
	return r.live.Has(id)
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return r.live.Len()
}

// AllEntities returns a copy of the live ids.
func (r *Registry) AllEntities() []EntityID {
	return r.live.Keys()
}

// Kinds lists every kind that has a store, sorted by name.
func (r *Registry) Kinds() []component.Kind {
	kinds := make([]component.Kind, 0, len(r.stores))
	for k := range r.stores {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func (r *Registry) storeFor(kind component.Kind) *SparseSet[EntityID, any] {
	store, ok := r.stores[kind]
	if !ok {
		store = newSparseSet[EntityID, any]()
		r.stores[kind] = store
	}
	return store
}

// AddComponent stores c on id under the kind c reports, replacing any
// component of that kind already there. The id is not checked for liveness;
// attaching to a deleted or never-created id is allowed.
func (r *Registry) AddComponent(id EntityID, c any) (any, error) {
	kind, ok := component.KindOf(c)
	if !ok {
		return nil, fmt.Errorf("%w: %T does not carry a component kind", component.ErrInvalidComponent, c)
	}
	r.storeFor(kind).Set(id, c)
	return c, nil
}

// RemoveComponent deletes and returns the component of the referenced kind.
// ok is false when there was nothing to remove.
func (r *Registry) RemoveComponent(ref component.KindRef, id EntityID) (removed any, ok bool, err error) {
	kind, err := component.Resolve(ref)
	if err != nil {
		return nil, false, err
	}
	store, exists := r.stores[kind]
	if !exists {
		return nil, false, nil
	}
	removed, ok = store.Remove(id)
	return removed, ok, nil
}

// GetComponent returns the component of the referenced kind on id.
func (r *Registry) GetComponent(ref component.KindRef, id EntityID) (any, bool, error) {
	kind, err := component.Resolve(ref)
	if err != nil {
		return nil, false, err
	}
	v, ok := r.storeFor(kind).Get(id)
	return v, ok, nil
}

// HasComponent reports whether id holds a component of the referenced kind.
func (r *Registry) HasComponent(ref component.KindRef, id EntityID) (bool, error) {
	_, ok, err := r.GetComponent(ref, id)
	return ok, err
}

// EntitiesWithComponent returns every id holding the referenced kind. An
// unknown kind yields an empty result.
func (r *Registry) EntitiesWithComponent(ref component.KindRef) ([]EntityID, error) {
	kind, err := component.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return r.storeFor(kind).Keys(), nil
}

// EntitiesWithComponents returns the ids holding every referenced kind, in the
// order the first kind lists them. Refs after the point where the result
// becomes empty are not resolved.
func (r *Registry) EntitiesWithComponents(refs []component.KindRef) ([]EntityID, error) {
	if len(refs) == 0 {
		return []EntityID{}, nil
	}
	common, err := r.EntitiesWithComponent(refs[0])
	if err != nil {
		return nil, err
	}
	for _, ref := range refs[1:] {
		if len(common) == 0 {
			break
		}
		kind, err := component.Resolve(ref)
		if err != nil {
			return nil, err
		}
		common = retainIn(common, r.storeFor(kind))
	}
	return common, nil
}
