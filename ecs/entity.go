package ecs

import "strconv"

// EntityID identifies a live entity. Ids are unique among live entities only;
// a deleted id may be handed out again.
type EntityID int64

const (
	// MaxSafeID is the largest integer a float64 can represent exactly. It is
	// the default ceiling for entity and timer ids.
	MaxSafeID = 1<<53 - 1

	// DefaultFirstID is where the fast allocation path starts.
	DefaultFirstID = 10
)

func (e EntityID) String() string {
	return strconv.FormatInt(int64(e), 10)
}

func (e EntityID) Valid() bool {
	return e >= 0
}
