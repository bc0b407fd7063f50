package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/tickreg/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func TestWorldUpdate(t *testing.T) {
	w := NewWorld()
	var log []string
	require.NoError(t, w.AddSystem(&recordingSystem{name: "a", log: &log}))

	lasts := 0
	timer, err := NewTimer(TimerConfig{Duration: 1, OnLast: func(*Timer) { lasts++ }})
	require.NoError(t, err)
	_, err = w.Timers().Register(timer)
	require.NoError(t, err)
	timer.Start()

	w.Update()
	w.Update()

	assert.Equal(t, []string{"a", "a"}, log)
	assert.Equal(t, uint64(2), w.Frame())
	assert.Equal(t, 1, lasts)

	_, err = w.Registry().CreateEntity()
	require.NoError(t, err)
	w.Reset()
	assert.Equal(t, 0, w.Registry().Len())
	assert.Equal(t, 0, w.Timers().Len())
	assert.Equal(t, 1, w.Scheduler().Len())
}

func TestTypedHelpers(t *testing.T) {
	r := NewRegistry()
	h1 := component.NewComponent[int]("ints")
	h2 := component.NewComponent[string]("strings")

	e1 := mustCreate(t, r)
	e2 := mustCreate(t, r)
	e3 := mustCreate(t, r)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(r, e1, h1, intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(r, e1, h1)
				require.True(t, ok)
				assert.Equal(t, 10, *v)
				assert.False(t, Has(r, e2, h1))
			},
			teardown: func() bool { return Remove(r, e1, h1) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				a, b := "a", "b"
				if err := Add(r, e1, h2, &a); err != nil {
					return err
				}
				return Add(r, e2, h2, &b)
			},
			check: func(t *testing.T) {
				assert.True(t, Has(r, e1, h2))
				assert.True(t, Has(r, e2, h2))
				ids, err := r.Query(h2, h1)
				require.NoError(t, err)
				assert.Empty(t, ids)
			},
			teardown: func() bool { return Remove(r, e1, h2) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.setup())
			tc.check(t)
			require.True(t, tc.teardown(), "teardown failed for %s", tc.name)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		assert.ErrorIs(t, Add(r, e1, h1, nil), component.ErrInvalidComponent)
		assert.ErrorIs(t, Add(r, e1, component.ComponentHandle[int]{}, intPtr(1)), component.ErrInvalidKind)
		_, ok := Get(r, e1, component.ComponentHandle[int]{})
		assert.False(t, ok)
	})

	t.Run("mismatched_type", func(t *testing.T) {
		other := component.NewComponent[float64]("ints")
		require.NoError(t, Add(r, e3, h1, intPtr(4)))
		_, ok := Get(r, e3, other)
		assert.False(t, ok)
	})

	t.Run("for_each_may_delete", func(t *testing.T) {
		r := NewRegistry()
		var ids []EntityID
		for i := 0; i < 4; i++ {
			id := mustCreate(t, r)
			ids = append(ids, id)
			require.NoError(t, Add(r, id, h1, intPtr(i)))
		}

		visited := 0
		ForEach(r, h1, func(id EntityID, v *int) {
			visited++
			if *v == 0 {
				r.DeleteEntity(ids[3])
			}
		})
		assert.Equal(t, 3, visited)
		assert.Equal(t, 3, r.Len())
	})

	t.Run("first", func(t *testing.T) {
		r := NewRegistry()
		_, ok := r.First(h1)
		assert.False(t, ok)
		id := mustCreate(t, r)
		require.NoError(t, Add(r, id, h1, intPtr(1)))
		got, ok := r.First(h1)
		require.True(t, ok)
		assert.Equal(t, id, got)
	})
}
