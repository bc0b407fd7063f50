package ecs

import "errors"

var ErrNilPublisher = errors.New("ecs: nil publisher")

// Event is a generic ECS event payload.
type Event struct {
	Type   string
	Entity EntityID
	Data   any
}

const (
	EventExpired          = "expired"
	EventCooldownFinished = "cooldown_finished"
)

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Snapshot returns a copy of the queued events without clearing them.
func (q *EventQueue) Snapshot() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := make([]Event, len(q.items))
	copy(out, q.items)
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}

// EventSource is anything a Subscriber can pull events from.
type EventSource interface {
	Events() []Event
}

// Publisher is embedded by systems that emit events. The scheduler clears a
// publisher's events right before its Update, so subscribers updated later in
// the same frame see exactly what was published this frame.
type Publisher struct {
	events EventQueue
}

func (p *Publisher) Publish(evt Event) {
	p.events.Push(evt)
}

// Events returns a copy of the events published since the last clear.
func (p *Publisher) Events() []Event {
	return p.events.Snapshot()
}

func (p *Publisher) ClearEvents() {
	p.events.flush()
}

func (p *Publisher) beforePublisherUpdate() {
	p.ClearEvents()
}

// Subscriber is embedded by systems that consume another system's events.
type Subscriber struct {
	publisher EventSource
	queue     []Event
}

// Subscribe sets the source events are pulled from before each Update.
func (s *Subscriber) Subscribe(p EventSource) error {
	if p == nil {
		return ErrNilPublisher
	}
	s.publisher = p
	return nil
}

func (s *Subscriber) Unsubscribe() {
	s.publisher = nil
}

func (s *Subscriber) Subscribed() bool {
	return s.publisher != nil
}

// Queue returns the events pulled for the current update.
func (s *Subscriber) Queue() []Event {
	return s.queue
}

func (s *Subscriber) ClearQueue() {
	s.queue = nil
}

func (s *Subscriber) beforeSubscriberUpdate() {
	if s.publisher != nil {
		s.queue = s.publisher.Events()
		return
	}
	s.queue = nil
}

type eventPublisher interface {
	beforePublisherUpdate()
}

type eventSubscriber interface {
	beforeSubscriberUpdate()
}
