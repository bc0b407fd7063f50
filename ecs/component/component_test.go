package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	handle := NewComponent[Transform]("transform")

	tests := []struct {
		name    string
		ref     KindRef
		want    Kind
		wantErr bool
	}{
		{name: "name", ref: Name("health"), want: "health"},
		{name: "kind", ref: Kind("ttl"), want: "ttl"},
		{name: "handle", ref: handle, want: "transform"},
		{name: "instance", ref: Of(&Velocity{}), want: "velocity"},
		{name: "empty_name", ref: Name(""), wantErr: true},
		{name: "nil_ref", ref: nil, wantErr: true},
		{name: "nil_instance", ref: Of(nil), wantErr: true},
		{name: "primitive_instance", ref: Of(42), wantErr: true},
		{name: "zero_handle", ref: ComponentHandle[int]{}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.ref)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewComponentPanicsOnEmptyName(t *testing.T) {
	assert.Panics(t, func() { NewComponent[int]("") })
}

func TestHandlesMatchInstances(t *testing.T) {
	cases := map[Kind]Kinded{
		TransformComponent.Kind():     &Transform{},
		VelocityComponent.Kind():      &Velocity{},
		HealthComponent.Kind():        &Health{},
		TTLComponent.Kind():           &TTL{},
		CooldownComponent.Kind():      &Cooldown{},
		PhysicsBodyComponent.Kind():   &PhysicsBody{},
		EnemyTagComponent.Kind():      &EnemyTag{},
		ProjectileTagComponent.Kind(): &ProjectileTag{},
	}
	for want, inst := range cases {
		got, ok := KindOf(inst)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
}
