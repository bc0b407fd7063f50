package ecs

// SparseSet stores values keyed by id with dense, cache-friendly iteration.
// Removal moves the last element into the freed slot, so iteration order is
// insertion order only until the first removal.
type SparseSet[K comparable, V any] struct {
	dense  []K
	values []V
	index  map[K]int
}

func newSparseSet[K comparable, V any]() *SparseSet[K, V] {
	return &SparseSet[K, V]{index: make(map[K]int)}
}

// Has returns true if the id exists in the set.
func (s *SparseSet[K, V]) Has(id K) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// Get returns the value stored for id.
func (s *SparseSet[K, V]) Get(id K) (V, bool) {
	var zero V
	if s == nil {
		return zero, false
	}
	idx, ok := s.index[id]
	if !ok {
		return zero, false
	}
	return s.values[idx], true
}

// Set inserts or replaces the value for id.
func (s *SparseSet[K, V]) Set(id K, v V) {
	if s == nil {
		return
	}
	if s.index == nil {
		s.index = make(map[K]int)
	}
	if idx, ok := s.index[id]; ok {
		s.values[idx] = v
		return
	}
	s.dense = append(s.dense, id)
	s.values = append(s.values, v)
	s.index[id] = len(s.dense) - 1
}

// Remove deletes id and returns the value it held.
func (s *SparseSet[K, V]) Remove(id K) (V, bool) {
	var zero V
	if s == nil {
		return zero, false
	}
	idx, ok := s.index[id]
	if !ok {
		return zero, false
	}
	removed := s.values[idx]
	last := len(s.dense) - 1
	lastID := s.dense[last]

	s.dense[idx] = lastID
	s.values[idx] = s.values[last]
	s.index[lastID] = idx

	s.values[last] = zero
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	delete(s.index, id)
	return removed, true
}

func (s *SparseSet[K, V]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}

// Keys returns a copy of the dense id list.
func (s *SparseSet[K, V]) Keys() []K {
	if s == nil {
		return []K{}
	}
	out := make([]K, len(s.dense))
	copy(out, s.dense)
	return out
}

// Values returns the dense value list. The slice is owned by the set.
func (s *SparseSet[K, V]) Values() []V {
	if s == nil {
		return nil
	}
	return s.values
}
