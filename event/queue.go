package event

import "github.com/Bonehead-Labs/actorkit/parameter"

// Queue is a bounded FIFO notification buffer for consumers that want to
// drain lifecycle notifications once per tick instead of reacting inline.
// Single writer, single consumer: everything runs on the owning actor's
// update loop, so no synchronization is needed by construction.
//
// Overflow: oldest notifications are dropped when full
type Queue struct {
	buf     []Notification
	head    int
	size    int
	dropped uint64
}

// NewQueue creates a queue with the default capacity
func NewQueue() *Queue {
	return NewQueueSize(parameter.NotificationQueueSize)
}

// NewQueueSize creates a queue with an explicit capacity
func NewQueueSize(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{buf: make([]Notification, capacity)}
}

// Notify appends a notification, evicting the oldest entry when full.
// Implements Sink
func (q *Queue) Notify(n Notification) {
	if q.size == len(q.buf) {
		q.head = (q.head + 1) % len(q.buf)
		q.size--
		q.dropped++
	}
	q.buf[(q.head+q.size)%len(q.buf)] = n
	q.size++
}

// Drain returns all pending notifications in emission order and empties
// the queue. Returns nil when empty
func (q *Queue) Drain() []Notification {
	if q.size == 0 {
		return nil
	}
	out := make([]Notification, q.size)
	for i := 0; i < q.size; i++ {
		out[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.head = 0
	q.size = 0
	return out
}

// Len returns the pending notification count
func (q *Queue) Len() int {
	return q.size
}

// Dropped returns the total notifications evicted due to overflow
func (q *Queue) Dropped() uint64 {
	return q.dropped
}
