package entity

import (
	"errors"
	"testing"

	"github.com/milk9111/tickreg/ecs"
	"github.com/milk9111/tickreg/ecs/component"
	"github.com/milk9111/tickreg/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryRegisterAndCreate(t *testing.T) {
	f := NewFactory()
	require.NoError(t, f.Register("crate", func(args ...any) (any, error) {
		return len(args), nil
	}))

	assert.True(t, f.Has("crate"))
	assert.True(t, f.Has("Crate"))
	assert.Equal(t, []string{"Crate"}, f.Names())

	v, err := f.Create("Crate", 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = f.Create("barrel")
	assert.ErrorIs(t, err, ErrUnknownConstructor)

	require.NoError(t, f.Register("Crate", func(...any) (any, error) { return "replaced", nil }))
	v, err = f.Create("crate")
	require.NoError(t, err)
	assert.Equal(t, "replaced", v)
	assert.Len(t, f.Names(), 1)

	assert.True(t, f.Unregister("crate"))
	assert.False(t, f.Unregister("crate"))
	assert.False(t, f.Has("crate"))
}

func TestFactoryRejectsInvalidConstructors(t *testing.T) {
	f := NewFactory()
	assert.ErrorIs(t, f.Register("", func(...any) (any, error) { return nil, nil }), ErrInvalidConstructor)
	assert.ErrorIs(t, f.Register("x", nil), ErrInvalidConstructor)
	assert.Empty(t, f.Names())
}

func TestFactorySpawnRequiresEntity(t *testing.T) {
	f := NewFactory()
	require.NoError(t, f.Register("label", func(...any) (any, error) { return "not an id", nil }))
	_, err := f.Spawn("label")
	assert.Error(t, err)

	boom := errors.New("boom")
	require.NoError(t, f.Register("broken", func(...any) (any, error) { return nil, boom }))
	_, err = f.Spawn("broken")
	assert.ErrorIs(t, err, boom)
}

func TestBuilderBuildsPrefab(t *testing.T) {
	r := ecs.NewRegistry()
	b := NewBuilder(r, nil)

	first, err := b.Build("zombie")
	require.NoError(t, err)
	second, err := b.Build("zombie.yaml", 25)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	for _, h := range []component.KindRef{
		component.EnemyTagComponent,
		component.TransformComponent,
		component.VelocityComponent,
		component.HealthComponent,
		component.CooldownComponent,
		component.PhysicsBodyComponent,
	} {
		ok, err := r.HasComponent(h, first)
		require.NoError(t, err)
		assert.True(t, ok, "missing %v", h)
	}

	t1, ok := ecs.Get(r, first, component.TransformComponent)
	require.True(t, ok)
	t2, ok := ecs.Get(r, second, component.TransformComponent)
	require.True(t, ok)
	assert.Equal(t, 64.0, t1.X)
	assert.Equal(t, 64.0+48, t2.X, "script spreads spawns by index")
	assert.Equal(t, t1.Y, t2.Y)

	h, ok := ecs.Get(r, second, component.HealthComponent)
	require.True(t, ok)
	assert.Equal(t, component.Health{Current: 25, Max: 25}, *h)

	body, ok := ecs.Get(r, first, component.PhysicsBodyComponent)
	require.True(t, ok)
	assert.Nil(t, body.Body, "physics bodies are attached by the physics system")
	assert.Equal(t, 12.0, body.Radius)
}

func TestBuilderFailuresLeaveNoEntity(t *testing.T) {
	cases := []struct {
		name string
		spec prefabs.EntityBuildSpec
	}{
		{"no_components", prefabs.EntityBuildSpec{Name: "empty"}},
		{"unknown_component", prefabs.EntityBuildSpec{
			Name: "bird",
			Components: map[string]any{
				"transform": map[string]any{"x": 1},
				"wings":     map[string]any{},
			},
		}},
		{"bad_ttl", prefabs.EntityBuildSpec{
			Name:       "flash",
			Components: map[string]any{"ttl": map[string]any{"frames": 0}},
		}},
		{"bad_health", prefabs.EntityBuildSpec{
			Name:       "ghost",
			Components: map[string]any{"health": map[string]any{"current": 5, "max": 2}},
		}},
		{"negative_input_speed", prefabs.EntityBuildSpec{
			Name:       "reverse",
			Components: map[string]any{"input": map[string]any{"speed": -1}},
		}},
		{"missing_script", prefabs.EntityBuildSpec{
			Name:       "scripted",
			Script:     "missing.tengo",
			Components: map[string]any{"enemy_tag": map[string]any{}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := ecs.NewRegistry()
			b := NewBuilder(r, nil)
			_, err := b.BuildSpec(tc.spec, 0)
			require.Error(t, err)
			assert.Zero(t, r.Len())
			assert.Empty(t, r.Kinds())
		})
	}
}

func TestBuilderBuildsPlayer(t *testing.T) {
	r := ecs.NewRegistry()
	id, err := NewBuilder(r, nil).Build("player")
	require.NoError(t, err)

	in, ok := ecs.Get(r, id, component.InputComponent)
	require.True(t, ok)
	assert.Equal(t, component.Input{Speed: 3}, *in)
	assert.True(t, ecs.Has(r, id, component.VelocityComponent))
}

func TestBuilderCapacity(t *testing.T) {
	r := ecs.NewRegistry(ecs.WithMaxID(0))
	b := NewBuilder(r, nil)
	_, err := b.Build("bullet")
	assert.ErrorIs(t, err, ecs.ErrCapacityExceeded)
	assert.Zero(t, r.Len())
}

func TestRegisterPrefabsSpawn(t *testing.T) {
	r := ecs.NewRegistry()
	b := NewBuilder(r, prefabs.NewCache())
	f := NewFactory()
	require.NoError(t, RegisterPrefabs(f, b, "zombie", "bullet"))
	assert.Equal(t, []string{"Bullet", "Zombie"}, f.Names())

	id, err := f.Spawn("bullet")
	require.NoError(t, err)
	assert.True(t, r.IsAlive(id))

	ttl, ok := ecs.Get(r, id, component.TTLComponent)
	require.True(t, ok)
	assert.Equal(t, 45, ttl.Frames)
	assert.True(t, ecs.Has(r, id, component.ProjectileTagComponent))

	_, err = f.Spawn("dragon")
	assert.ErrorIs(t, err, ErrUnknownConstructor)
	assert.Equal(t, 1, r.Len())
}
