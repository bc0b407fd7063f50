package entity

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/tickreg/ecs"
	"github.com/milk9111/tickreg/ecs/component"
	"github.com/milk9111/tickreg/prefabs"
)

var errNoComponents = errors.New("prefab does not define components")

type componentBuildFn func(raw any) (component.Kinded, error)

var componentRegistry = map[string]componentBuildFn{
	"enemy_tag":      buildEnemyTag,
	"projectile_tag": buildProjectileTag,
	"transform":      buildTransform,
	"velocity":       buildVelocity,
	"health":         buildHealth,
	"ttl":            buildTTL,
	"cooldown":       buildCooldown,
	"physics_body":   buildPhysicsBody,
	"input":          buildInput,
}

var componentBuildOrder = []string{
	"enemy_tag",
	"projectile_tag",
	"transform",
	"velocity",
	"health",
	"ttl",
	"cooldown",
	"physics_body",
	"input",
}

// Builder turns YAML prefabs into entities.
type Builder struct {
	registry *ecs.Registry
	cache    *prefabs.Cache
	spawned  map[string]int
}

func NewBuilder(r *ecs.Registry, cache *prefabs.Cache) *Builder {
	if cache == nil {
		cache = prefabs.NewCache()
	}
	return &Builder{
		registry: r,
		cache:    cache,
		spawned:  make(map[string]int),
	}
}

func (b *Builder) Cache() *prefabs.Cache {
	return b.cache
}

// Build creates an entity from the named prefab. args are handed to the
// prefab's script, if it has one.
func (b *Builder) Build(prefab string, args ...any) (ecs.EntityID, error) {
	if b == nil || b.registry == nil {
		return 0, fmt.Errorf("build entity: registry is nil")
	}
	spec, err := b.cache.Get(prefab)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefab, err)
	}
	key := prefabs.Name(prefab)
	index := b.spawned[key]
	id, err := b.BuildSpec(spec, index, args...)
	if err != nil {
		return 0, err
	}
	b.spawned[key] = index + 1
	return id, nil
}

// BuildSpec creates an entity from an already parsed prefab. Every component
// is decoded before the entity is created, so a failing prefab leaves the
// registry untouched.
func (b *Builder) BuildSpec(spec prefabs.EntityBuildSpec, index int, args ...any) (ecs.EntityID, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: %q: %w", spec.Name, errNoComponents)
	}

	raw := spec.Components
	if spec.Script != "" {
		scripted, err := runBuildScript(spec.Script, raw, index, args)
		if err != nil {
			return 0, fmt.Errorf("build entity: %q: script %s: %w", spec.Name, spec.Script, err)
		}
		raw = scripted
	}

	if unknown := unknownComponents(raw); len(unknown) > 0 {
		return 0, fmt.Errorf("build entity: %q: no builder for component(s) %s", spec.Name, strings.Join(unknown, ", "))
	}

	built := make([]component.Kinded, 0, len(raw))
	for _, name := range componentBuildOrder {
		value, ok := raw[name]
		if !ok {
			continue
		}
		c, err := componentRegistry[name](value)
		if err != nil {
			return 0, fmt.Errorf("build entity: %q: add %q: %w", spec.Name, name, err)
		}
		built = append(built, c)
	}

	e, err := b.registry.CreateEntity()
	if err != nil {
		return 0, fmt.Errorf("build entity: %q: %w", spec.Name, err)
	}
	for _, c := range built {
		if _, err := b.registry.AddComponent(e, c); err != nil {
			b.registry.DeleteEntity(e)
			return 0, fmt.Errorf("build entity: %q: %w", spec.Name, err)
		}
	}
	return e, nil
}

func unknownComponents(raw map[string]any) []string {
	var names []string
	for name := range raw {
		if _, ok := componentRegistry[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// runBuildScript exposes the prefab's components map to a tengo script as
// `components`, together with `index` (how many of this prefab were built
// before) and `args`. Whatever `components` holds afterwards is built.
func runBuildScript(path string, components map[string]any, index int, args []any) (map[string]any, error) {
	scriptBytes, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}

	if args == nil {
		args = []any{}
	}

	script := tengo.NewScript(scriptBytes)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("components", components); err != nil {
		return nil, err
	}
	if err := script.Add("index", index); err != nil {
		return nil, err
	}
	if err := script.Add("args", args); err != nil {
		return nil, err
	}

	compiled, err := script.Run()
	if err != nil {
		return nil, err
	}

	out, ok := compiled.Get("components").Value().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("script global 'components' must stay a map")
	}
	return out, nil
}

func buildEnemyTag(any) (component.Kinded, error) {
	return &component.EnemyTag{}, nil
}

func buildProjectileTag(any) (component.Kinded, error) {
	return &component.ProjectileTag{}, nil
}

type transformSpec = prefabs.TransformComponentSpec

func buildTransform(raw any) (component.Kinded, error) {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode transform spec: %w", err)
	}
	return &component.Transform{X: spec.X, Y: spec.Y, Rotation: spec.Rotation}, nil
}

type velocitySpec = prefabs.VelocityComponentSpec

func buildVelocity(raw any) (component.Kinded, error) {
	spec, err := prefabs.DecodeComponentSpec[velocitySpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode velocity spec: %w", err)
	}
	return &component.Velocity{X: spec.X, Y: spec.Y}, nil
}

type healthSpec = prefabs.HealthComponentSpec

func buildHealth(raw any) (component.Kinded, error) {
	spec, err := prefabs.DecodeComponentSpec[healthSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode health spec: %w", err)
	}
	if spec.Max <= 0 {
		spec.Max = spec.Current
	}
	if spec.Current > spec.Max {
		return nil, fmt.Errorf("health current %d exceeds max %d", spec.Current, spec.Max)
	}
	return &component.Health{Current: spec.Current, Max: spec.Max}, nil
}

type ttlSpec = prefabs.TTLComponentSpec

func buildTTL(raw any) (component.Kinded, error) {
	spec, err := prefabs.DecodeComponentSpec[ttlSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode ttl spec: %w", err)
	}
	if spec.Frames <= 0 {
		return nil, fmt.Errorf("ttl frames must be positive, got %d", spec.Frames)
	}
	return &component.TTL{Frames: spec.Frames}, nil
}

type cooldownSpec = prefabs.CooldownComponentSpec

func buildCooldown(raw any) (component.Kinded, error) {
	spec, err := prefabs.DecodeComponentSpec[cooldownSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode cooldown spec: %w", err)
	}
	return &component.Cooldown{Frames: spec.Frames, Label: spec.Label}, nil
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func buildPhysicsBody(raw any) (component.Kinded, error) {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode physics_body spec: %w", err)
	}
	if spec.Radius <= 0 {
		return nil, fmt.Errorf("physics_body radius must be positive, got %v", spec.Radius)
	}
	if spec.Mass <= 0 && !spec.Static {
		spec.Mass = 1
	}
	return &component.PhysicsBody{
		Radius:     spec.Radius,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Static:     spec.Static,
	}, nil
}

type inputSpec = prefabs.InputComponentSpec

func buildInput(raw any) (component.Kinded, error) {
	spec, err := prefabs.DecodeComponentSpec[inputSpec](raw)
	if err != nil {
		return nil, fmt.Errorf("decode input spec: %w", err)
	}
	if spec.Speed < 0 {
		return nil, fmt.Errorf("input speed must not be negative, got %v", spec.Speed)
	}
	return &component.Input{Speed: spec.Speed}, nil
}
