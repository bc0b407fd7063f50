package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer(t *testing.T) {
	t.Run("rejects_negative_duration", func(t *testing.T) {
		_, err := NewTimer(TimerConfig{Duration: -1})
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("zero_duration_allowed", func(t *testing.T) {
		timer, err := NewTimer(TimerConfig{})
		require.NoError(t, err)
		assert.Equal(t, 0, timer.Ticks())
	})

	t.Run("start_runs_first_once", func(t *testing.T) {
		firsts := 0
		timer, err := NewTimer(TimerConfig{Duration: 3, OnFirst: func(*Timer) { firsts++ }})
		require.NoError(t, err)

		timer.Start()
		assert.True(t, timer.Running())
		timer.Tick()
		timer.Pause()
		assert.False(t, timer.Running())
		timer.Start()
		assert.Equal(t, 1, firsts)
	})

	t.Run("each_and_last", func(t *testing.T) {
		var seen []int
		lasts := 0
		timer, err := NewTimer(TimerConfig{
			Duration: 2,
			OnEach:   func(tm *Timer) { seen = append(seen, tm.Ticks()) },
			OnLast:   func(*Timer) { lasts++ },
		})
		require.NoError(t, err)
		timer.Start()

		timer.Tick()
		assert.Equal(t, 1, timer.Ticks())
		timer.Tick()
		assert.Equal(t, 0, lasts)
		timer.Tick()

		assert.Equal(t, []int{2, 1, 0}, seen)
		assert.Equal(t, 1, lasts)
		assert.Equal(t, -1, timer.Ticks())
		assert.False(t, timer.Running())
	})
}

func newTestTimer(t *testing.T, duration int) *Timer {
	t.Helper()
	timer, err := NewTimer(TimerConfig{Duration: duration})
	require.NoError(t, err)
	return timer
}

func TestTimerManager(t *testing.T) {
	t.Run("ids_start_at_first", func(t *testing.T) {
		m := NewTimerManager()
		id, err := m.Register(newTestTimer(t, 1))
		require.NoError(t, err)
		assert.Equal(t, TimerID(DefaultFirstID), id)
	})

	t.Run("scan_when_hint_exhausted", func(t *testing.T) {
		m := NewTimerManager()
		m.ids.next = m.ids.max
		a, err := m.Register(newTestTimer(t, 0))
		require.NoError(t, err)
		b, err := m.Register(newTestTimer(t, 0))
		require.NoError(t, err)
		assert.Equal(t, []TimerID{0, 1}, []TimerID{a, b})
	})

	t.Run("capacity", func(t *testing.T) {
		m := NewTimerManager(WithMaxID(0))
		_, err := m.Register(newTestTimer(t, 0))
		assert.ErrorIs(t, err, ErrCapacityExceeded)
	})

	t.Run("no_duplicates", func(t *testing.T) {
		m := NewTimerManager()
		timer := newTestTimer(t, 1)
		first, err := m.Register(timer)
		require.NoError(t, err)
		again, err := m.Register(timer)
		require.NoError(t, err)
		assert.Equal(t, first, again)
		assert.Equal(t, 1, m.Len())

		_, err = m.Register(nil)
		assert.ErrorIs(t, err, ErrNilTimer)
		assert.Equal(t, 1, m.Len())
	})

	t.Run("moves_between_managers", func(t *testing.T) {
		from := NewTimerManager()
		to := NewTimerManager(WithFirstID(100))
		ticks := 0
		timer, err := NewTimer(TimerConfig{Duration: 5, OnEach: func(*Timer) { ticks++ }})
		require.NoError(t, err)
		_, err = from.Register(timer)
		require.NoError(t, err)
		timer.Start()

		id, err := to.Register(timer)
		require.NoError(t, err)
		assert.Equal(t, TimerID(100), id)
		assert.Equal(t, 0, from.Len())
		assert.False(t, from.RemoveTimer(timer))

		from.Tick()
		to.Tick()
		assert.Equal(t, 1, ticks, "ticked by its new manager only")

		got, ok := timer.ID()
		require.True(t, ok)
		assert.Equal(t, id, got)
		assert.True(t, to.RemoveTimer(timer))
	})

	t.Run("capacity_keeps_previous_owner", func(t *testing.T) {
		from := NewTimerManager()
		full := NewTimerManager(WithMaxID(0))
		timer := newTestTimer(t, 1)
		id, err := from.Register(timer)
		require.NoError(t, err)

		_, err = full.Register(timer)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		got, ok := from.Get(id)
		require.True(t, ok)
		assert.Same(t, timer, got)
	})

	t.Run("remove", func(t *testing.T) {
		m := NewTimerManager()
		timer := newTestTimer(t, 1)
		id, _ := m.Register(timer)

		assert.True(t, m.RemoveTimer(timer))
		assert.Equal(t, 0, m.Len())
		assert.False(t, m.Remove(id))
		assert.False(t, m.RemoveTimer(newTestTimer(t, 1)))

		_, ok := timer.ID()
		assert.False(t, ok)
	})

	t.Run("get", func(t *testing.T) {
		m := NewTimerManager()
		timer := newTestTimer(t, 1)
		id, _ := m.Register(timer)

		got, ok := m.Get(id)
		require.True(t, ok)
		assert.Same(t, timer, got)

		_, ok = m.Get(id + 100)
		assert.False(t, ok)
	})

	t.Run("remove_all", func(t *testing.T) {
		m := NewTimerManager()
		_, _ = m.Register(newTestTimer(t, 1))
		_, _ = m.Register(newTestTimer(t, 1))
		m.RemoveAll()
		assert.Equal(t, 0, m.Len())
	})

	t.Run("tick_running_only", func(t *testing.T) {
		m := NewTimerManager()
		running1 := newTestTimer(t, 5)
		running2 := newTestTimer(t, 8)
		paused := newTestTimer(t, 3)
		for _, timer := range []*Timer{running1, running2, paused} {
			_, err := m.Register(timer)
			require.NoError(t, err)
		}
		running1.Start()
		running2.Start()

		m.Tick()

		assert.Equal(t, 4, running1.Ticks())
		assert.Equal(t, 7, running2.Ticks())
		assert.Equal(t, 3, paused.Ticks())
	})
}
