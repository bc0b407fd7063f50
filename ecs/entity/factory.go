package entity

import (
	"errors"
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/milk9111/tickreg/ecs"
)

var (
	ErrInvalidConstructor = errors.New("entity: invalid constructor")
	ErrUnknownConstructor = errors.New("entity: unknown constructor")
)

// Constructor produces a component or entity payload. Prefab constructors
// return the new ecs.EntityID.
type Constructor func(args ...any) (any, error)

// Factory maps names to constructors, one constructor per name. Names are
// matched with their first letter upper-cased, so "zombie" and "Zombie" are
// the same entry.
type Factory struct {
	ctors map[string]Constructor
}

func NewFactory() *Factory {
	return &Factory{ctors: make(map[string]Constructor)}
}

func normalizeName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// Register stores ctor under name, replacing any previous constructor.
func (f *Factory) Register(name string, ctor Constructor) error {
	if name == "" || ctor == nil {
		return fmt.Errorf("%w: name %q, constructor set %t", ErrInvalidConstructor, name, ctor != nil)
	}
	f.ctors[normalizeName(name)] = ctor
	return nil
}

func (f *Factory) Unregister(name string) bool {
	key := normalizeName(name)
	if _, ok := f.ctors[key]; !ok {
		return false
	}
	delete(f.ctors, key)
	return true
}

func (f *Factory) Has(name string) bool {
	_, ok := f.ctors[normalizeName(name)]
	return ok
}

// Create calls the constructor registered under name.
func (f *Factory) Create(name string, args ...any) (any, error) {
	ctor, ok := f.ctors[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConstructor, name)
	}
	return ctor(args...)
}

// Names lists the registered (normalized) names in sorted order.
func (f *Factory) Names() []string {
	names := make([]string, 0, len(f.ctors))
	for name := range f.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spawn is Create for constructors that build entities.
func (f *Factory) Spawn(name string, args ...any) (ecs.EntityID, error) {
	v, err := f.Create(name, args...)
	if err != nil {
		return 0, err
	}
	id, ok := v.(ecs.EntityID)
	if !ok {
		return 0, fmt.Errorf("entity: constructor %q returned %T, not an entity", name, v)
	}
	return id, nil
}

// RegisterPrefabs registers each named prefab as a constructor that builds it.
func RegisterPrefabs(f *Factory, b *Builder, names ...string) error {
	for _, name := range names {
		prefab := name
		err := f.Register(prefab, func(args ...any) (any, error) {
			return b.Build(prefab, args...)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
