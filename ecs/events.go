package ecs

import (
	"iter"
	"reflect"
)

type eventRecord[T any] struct {
	id    uint64
	value T
}

// eventQueue is double buffered: events sent this frame go to current, and
// the Scheduler swaps buffers after every frame. An event therefore stays
// readable for the frame it was sent in and the following one, which lets a
// reader that runs before the writer still see it.
type eventQueue[T any] struct {
	previous []eventRecord[T]
	current  []eventRecord[T]
	nextId   uint64
}

type eventQueueUpdater interface {
	update()
	pending() int
}

func (q *eventQueue[T]) send(value T) {
	q.current = append(q.current, eventRecord[T]{id: q.nextId, value: value})
	q.nextId++
}

func (q *eventQueue[T]) update() {
	clear(q.previous)
	q.previous, q.current = q.current, q.previous[:0]
}

func (q *eventQueue[T]) pending() int {
	return len(q.previous) + len(q.current)
}

func eventsFor[T any](s *Storage) *eventQueue[T] {
	t := reflect.TypeFor[T]()
	if q, ok := s.events[t]; ok {
		return q.(*eventQueue[T])
	}
	q := &eventQueue[T]{}
	s.events[t] = q
	return q
}

// UpdateEvents ages every event queue by one frame. Scheduler.Once calls it
// after flushing commands; only call it directly when driving systems by hand.
func (s *Storage) UpdateEvents() {
	for _, q := range s.events {
		q.update()
	}
}

// SendEvent queues value for readers of T outside of a System.
func SendEvent[T any](s *Storage, value T) {
	eventsFor[T](s).send(value)
}

// EventWriter is a System field that sends events of type T.
type EventWriter[T any] struct {
	queue *eventQueue[T]
}

// Init binds the writer to storage. The Scheduler calls it on Register.
func (w *EventWriter[T]) Init(storage *Storage) {
	w.queue = eventsFor[T](storage)
}

// Send queues one event.
func (w *EventWriter[T]) Send(value T) {
	w.queue.send(value)
}

// EventReader is a System field that receives events of type T. Each reader
// keeps its own cursor, so every reader sees every event exactly once as long
// as it runs at least every other frame.
type EventReader[T any] struct {
	queue  *eventQueue[T]
	cursor uint64
}

// NewEventReader creates a reader outside of a System.
func NewEventReader[T any](storage *Storage) *EventReader[T] {
	r := &EventReader[T]{}
	r.Init(storage)
	return r
}

// Init binds the reader to storage. The Scheduler calls it on Register.
func (r *EventReader[T]) Init(storage *Storage) {
	r.queue = eventsFor[T](storage)
	r.cursor = 0
}

// Read yields unread events oldest first and marks them read.
func (r *EventReader[T]) Read() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, buf := range [2][]eventRecord[T]{r.queue.previous, r.queue.current} {
			for _, rec := range buf {
				if rec.id < r.cursor {
					continue
				}
				r.cursor = rec.id + 1
				if !yield(rec.value) {
					return
				}
			}
		}
	}
}

// Len returns the number of unread events.
func (r *EventReader[T]) Len() int {
	n := 0
	for _, buf := range [2][]eventRecord[T]{r.queue.previous, r.queue.current} {
		for _, rec := range buf {
			if rec.id >= r.cursor {
				n++
			}
		}
	}
	return n
}

// Clear marks every pending event as read.
func (r *EventReader[T]) Clear() {
	r.cursor = r.queue.nextId
}
