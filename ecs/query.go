package ecs

import "github.com/milk9111/tickreg/ecs/component"

// retainIn filters ids down to those present in set, in place, keeping order.
func retainIn(ids []EntityID, set *SparseSet[EntityID, any]) []EntityID {
	out := ids[:0]
	for _, id := range ids {
		if set.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// Query is EntitiesWithComponents with variadic refs.
func (r *Registry) Query(refs ...component.KindRef) ([]EntityID, error) {
	return r.EntitiesWithComponents(refs)
}

// First returns any one entity holding every referenced kind.
func (r *Registry) First(refs ...component.KindRef) (EntityID, bool) {
	ids, err := r.EntitiesWithComponents(refs)
	if err != nil || len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}
