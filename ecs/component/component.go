package component

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidKind      = errors.New("ecs: invalid component kind")
	ErrInvalidComponent = errors.New("ecs: invalid component")
)

// Kind is the canonical key a component is stored under. Two components with
// the same kind can never sit on the same entity at once.
type Kind string

// Kinded is implemented by component values that know their own kind.
type Kinded interface {
	ComponentKind() Kind
}

// KindRef names a component kind either directly or through an instance. The
// accepted forms are Kind (or Name), Of(instance) and ComponentHandle[T].
type KindRef interface {
	resolveKind() (Kind, error)
}

// Name is the by-name form of a KindRef.
func Name(s string) Kind {
	return Kind(s)
}

func (k Kind) resolveKind() (Kind, error) {
	if k == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidKind)
	}
	return k, nil
}

func (k Kind) String() string {
	return string(k)
}

type instanceRef struct {
	value any
}

// Of is the by-instance form of a KindRef. The kind is read from v when it
// implements Kinded.
func Of(v any) KindRef {
	return instanceRef{value: v}
}

func (r instanceRef) resolveKind() (Kind, error) {
	k, ok := KindOf(r.value)
	if !ok {
		return "", fmt.Errorf("%w: %T has no component kind", ErrInvalidKind, r.value)
	}
	return k, nil
}

// KindOf reports the kind carried by v.
func KindOf(v any) (Kind, bool) {
	if v == nil {
		return "", false
	}
	kinded, ok := v.(Kinded)
	if !ok {
		return "", false
	}
	k := kinded.ComponentKind()
	if k == "" {
		return "", false
	}
	return k, true
}

// Resolve turns any KindRef into its canonical Kind.
func Resolve(ref KindRef) (Kind, error) {
	if ref == nil {
		return "", fmt.Errorf("%w: nil reference", ErrInvalidKind)
	}
	return ref.resolveKind()
}

// ComponentHandle is the typed registration of a component kind. Values of T
// are stored as *T.
type ComponentHandle[T any] struct {
	kind Kind
}

// NewComponent registers T under name. It panics on an empty name since
// handles are package-level variables and a bad one is a programming error.
func NewComponent[T any](name string) ComponentHandle[T] {
	if name == "" {
		panic("component: NewComponent with empty name")
	}
	return ComponentHandle[T]{kind: Kind(name)}
}

func (h ComponentHandle[T]) Kind() Kind {
	return h.kind
}

func (h ComponentHandle[T]) Valid() bool {
	return h.kind != ""
}

func (h ComponentHandle[T]) resolveKind() (Kind, error) {
	return h.kind.resolveKind()
}
