package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSystem struct {
	name string
	log  *[]string
}

func (s *recordingSystem) Name() string { return s.name }

func (s *recordingSystem) Update(*World) { *s.log = append(*s.log, s.name) }

type unnamedSystem struct{}

func (unnamedSystem) Update(*World) {}

type emitter struct {
	Publisher
	emit []string
}

func (e *emitter) Update(*World) {
	for _, typ := range e.emit {
		e.Publish(Event{Type: typ})
	}
}

type listener struct {
	Subscriber
	seen [][]Event
}

func (l *listener) Update(*World) {
	l.seen = append(l.seen, l.Queue())
}

func TestScheduler(t *testing.T) {
	t.Run("runs_in_registration_order", func(t *testing.T) {
		var log []string
		s, err := NewScheduler(
			&recordingSystem{name: "a", log: &log},
			&recordingSystem{name: "b", log: &log},
		)
		require.NoError(t, err)
		s.Update(nil)
		assert.Equal(t, []string{"a", "b"}, log)
		assert.Equal(t, []string{"a", "b"}, s.Names())

		systems := s.Systems()
		require.Len(t, systems, 2)
		assert.Equal(t, "b", SystemName(systems[1]))
		systems[0] = nil
		assert.NotNil(t, s.Systems()[0], "Systems returns a copy")
	})

	t.Run("rejects_duplicates_and_nil", func(t *testing.T) {
		var log []string
		s := &Scheduler{}
		name, err := s.Register(&recordingSystem{name: "a", log: &log})
		require.NoError(t, err)
		assert.Equal(t, "a", name)

		_, err = s.Register(&recordingSystem{name: "a", log: &log})
		assert.ErrorIs(t, err, ErrSystemExists)
		_, err = s.Register(nil)
		assert.ErrorIs(t, err, ErrNilSystem)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("type_name_fallback", func(t *testing.T) {
		assert.Equal(t, "ecs.unnamedSystem", SystemName(unnamedSystem{}))
	})

	t.Run("remove", func(t *testing.T) {
		var log []string
		a := &recordingSystem{name: "a", log: &log}
		s, err := NewScheduler(a)
		require.NoError(t, err)

		removed, ok := s.Remove("a")
		require.True(t, ok)
		assert.Same(t, a, removed)
		_, ok = s.Remove("a")
		assert.False(t, ok)

		_, err = s.Register(a)
		require.NoError(t, err)
		_, ok = s.RemoveSystem(a)
		assert.True(t, ok)

		_, _ = s.Register(a)
		s.Clear()
		assert.Equal(t, 0, s.Len())
	})
}

func TestPublishSubscribe(t *testing.T) {
	pub := &emitter{emit: []string{"hit", "miss"}}
	sub := &listener{}
	require.NoError(t, sub.Subscribe(pub))
	assert.ErrorIs(t, sub.Subscribe(nil), ErrNilPublisher)

	s, err := NewScheduler(pub, sub)
	require.NoError(t, err)

	s.Update(nil)
	require.Len(t, sub.seen, 1)
	assert.Equal(t, []Event{{Type: "hit"}, {Type: "miss"}}, sub.seen[0])

	pub.emit = nil
	s.Update(nil)
	assert.Empty(t, sub.seen[1], "publisher events are cleared each frame")

	pub.emit = []string{"late"}
	assert.True(t, sub.Subscribed())
	sub.Unsubscribe()
	assert.False(t, sub.Subscribed())
	s.Update(nil)
	assert.Empty(t, sub.seen[2])
	assert.Len(t, pub.Events(), 1)

	require.NoError(t, sub.Subscribe(pub))
	s.Update(nil)
	assert.Len(t, sub.Queue(), 1)
	sub.ClearQueue()
	assert.Empty(t, sub.Queue())
}

func TestEventQueue(t *testing.T) {
	var q EventQueue
	assert.Nil(t, q.Drain())

	q.Push(Event{Type: EventExpired, Entity: 10})
	q.Push(Event{Type: EventCooldownFinished, Entity: 11, Data: "groan"})
	snap := q.Snapshot()
	snap[0].Entity = 99
	assert.Equal(t, 2, q.Len())

	drained := q.Drain()
	assert.Equal(t, []Event{
		{Type: EventExpired, Entity: 10},
		{Type: EventCooldownFinished, Entity: 11, Data: "groan"},
	}, drained)
	assert.Zero(t, q.Len())
	assert.Nil(t, q.Drain())

	var nilQueue *EventQueue
	nilQueue.Push(Event{Type: "x"})
	assert.Zero(t, nilQueue.Len())
}
