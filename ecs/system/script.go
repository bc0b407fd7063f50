package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/tickreg/ecs"
	"github.com/milk9111/tickreg/ecs/component"
	"github.com/milk9111/tickreg/prefabs"
)

// Spawner builds an entity from a named constructor. entity.Factory is the
// usual implementation.
type Spawner interface {
	Spawn(name string, args ...any) (ecs.EntityID, error)
}

// ScriptSystem runs a tengo script once per frame. The script sees two
// globals: `frame`, the number of completed world updates, and `registry`, an
// immutable map of functions:
//
//	create()            -> new entity id
//	destroy(id)         -> deletes the entity
//	query(["a", "b"])   -> ids holding every named component
//	count()             -> live entity count
//	spawn(name, args..) -> id built by the spawner
//	input()             -> {move_x, move_y, fire} polled this frame
type ScriptSystem struct {
	path     string
	spawner  Spawner
	compiled *tengo.Compiled

	world    *ecs.World
	registry *ecs.Registry
	bindErr  error
	err      error
}

// NewScriptSystem loads path through prefabs.LoadScript and compiles it.
// spawner may be nil, in which case spawn() fails.
func NewScriptSystem(path string, spawner Spawner) (*ScriptSystem, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	return NewScriptSystemFromSource(path, src, spawner)
}

// NewScriptSystemFromSource compiles src; path only names the system.
func NewScriptSystemFromSource(path string, src []byte, spawner Spawner) (*ScriptSystem, error) {
	s := &ScriptSystem{path: path, spawner: spawner}
	if err := s.compile(src); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ScriptSystem) Name() string {
	return "script:" + s.path
}

func (s *ScriptSystem) Path() string {
	return s.path
}

// Err returns the error from the most recent Update, if any. Binding failures
// are reported as their own error rather than the VM's wrapped runtime error.
func (s *ScriptSystem) Err() error {
	return s.err
}

// Reload reads the script again and recompiles it. On failure the previously
// compiled script stays in place.
func (s *ScriptSystem) Reload() error {
	src, err := prefabs.LoadScript(s.path)
	if err != nil {
		return fmt.Errorf("script: load %s: %w", s.path, err)
	}
	return s.compile(src)
}

func (s *ScriptSystem) compile(src []byte) error {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	_ = script.Add("frame", 0)
	_ = script.Add("registry", s.bindings())

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", s.path, err)
	}
	s.compiled = compiled
	return nil
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.compiled == nil {
		return
	}
	s.world = w
	s.registry = w.Registry()
	s.bindErr = nil
	s.err = nil

	if err := s.compiled.Set("frame", int64(w.Frame())); err != nil {
		s.err = err
		return
	}
	if err := s.compiled.Run(); err != nil {
		s.err = err
		if s.bindErr != nil {
			s.err = s.bindErr
		}
		log.Printf("script: %s frame=%d: %v", s.path, w.Frame(), s.err)
	}
}

// fail records err so Err reports it even though the VM wraps it.
func (s *ScriptSystem) fail(err error) (tengo.Object, error) {
	if s.bindErr == nil {
		s.bindErr = err
	}
	return nil, err
}

func (s *ScriptSystem) bindings() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["create"] = &tengo.UserFunction{Name: "create", Value: func(args ...tengo.Object) (tengo.Object, error) {
		id, err := s.registry.CreateEntity()
		if err != nil {
			return s.fail(err)
		}
		return &tengo.Int{Value: int64(id)}, nil
	}}

	values["destroy"] = &tengo.UserFunction{Name: "destroy", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) == 0 {
			return s.fail(fmt.Errorf("%w: destroy needs an entity id", ecs.ErrInvalidArgument))
		}
		id, ok := args[0].(*tengo.Int)
		if !ok {
			return s.fail(fmt.Errorf("%w: destroy: entity id must be an int, got %s", ecs.ErrInvalidArgument, args[0].TypeName()))
		}
		e := ecs.EntityID(id.Value)
		if !e.Valid() {
			return s.fail(fmt.Errorf("%w: destroy: negative entity id %s", ecs.ErrInvalidArgument, e))
		}
		s.registry.DeleteEntity(e)
		return tengo.UndefinedValue, nil
	}}

	values["query"] = &tengo.UserFunction{Name: "query", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return s.fail(fmt.Errorf("%w: query takes one list of component names", ecs.ErrInvalidArgument))
		}
		var items []tengo.Object
		switch v := args[0].(type) {
		case *tengo.Array:
			items = v.Value
		case *tengo.ImmutableArray:
			items = v.Value
		default:
			return s.fail(fmt.Errorf("%w: query: expected a list, got %s", ecs.ErrInvalidArgument, args[0].TypeName()))
		}

		refs := make([]component.KindRef, 0, len(items))
		for _, item := range items {
			name, ok := item.(*tengo.String)
			if !ok {
				return s.fail(fmt.Errorf("%w: query: component name must be a string, got %s", ecs.ErrInvalidArgument, item.TypeName()))
			}
			refs = append(refs, component.Name(name.Value))
		}

		ids, err := s.registry.EntitiesWithComponents(refs)
		if err != nil {
			return s.fail(err)
		}
		out := make([]tengo.Object, 0, len(ids))
		for _, id := range ids {
			out = append(out, &tengo.Int{Value: int64(id)})
		}
		return &tengo.Array{Value: out}, nil
	}}

	values["count"] = &tengo.UserFunction{Name: "count", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(s.registry.Len())}, nil
	}}

	values["spawn"] = &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) == 0 {
			return s.fail(fmt.Errorf("%w: spawn needs a prefab name", ecs.ErrInvalidArgument))
		}
		str, ok := args[0].(*tengo.String)
		if !ok {
			return s.fail(fmt.Errorf("%w: spawn: prefab name must be a string, got %s", ecs.ErrInvalidArgument, args[0].TypeName()))
		}
		if s.spawner == nil {
			return s.fail(fmt.Errorf("script: spawn %q: no spawner configured", str.Value))
		}
		extra := make([]any, 0, len(args)-1)
		for _, a := range args[1:] {
			extra = append(extra, tengo.ToInterface(a))
		}
		id, err := s.spawner.Spawn(str.Value, extra...)
		if err != nil {
			return s.fail(err)
		}
		return &tengo.Int{Value: int64(id)}, nil
	}}

	values["input"] = &tengo.UserFunction{Name: "input", Value: func(args ...tengo.Object) (tengo.Object, error) {
		state := s.world.Input()
		fire := tengo.FalseValue
		if state.Fire {
			fire = tengo.TrueValue
		}
		return &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"move_x": &tengo.Float{Value: state.MoveX},
			"move_y": &tengo.Float{Value: state.MoveY},
			"fire":   fire,
		}}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
