// Package notify is the ephemeral queue of user-facing toast messages.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

type Notification struct {
	ID        string
	Kind      Kind
	Message   string
	Duration  time.Duration
	CreatedAt time.Time
}

const DefaultTTL = 5 * time.Second

// Queue keeps notifications in insertion order and removes each one after its
// duration elapses. Duplicate messages are not coalesced.
type Queue struct {
	mu     sync.Mutex
	items  []Notification
	ttl    time.Duration
	now    func() time.Time
	timers map[string]*time.Timer
}

func NewQueue(ttl time.Duration) *Queue {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		ttl:    ttl,
		now:    time.Now,
		timers: make(map[string]*time.Timer),
	}
}

// Add enqueues a notification. A duration of 0 uses the queue default; a
// negative duration disables auto-removal.
func (q *Queue) Add(kind Kind, message string, duration time.Duration) string {
	if duration == 0 {
		duration = q.ttl
	}
	n := Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Duration:  duration,
		CreatedAt: q.now(),
	}

	q.mu.Lock()
	q.items = append(q.items, n)
	if duration > 0 {
		id := n.ID
		q.timers[id] = time.AfterFunc(duration, func() { q.Remove(id) })
	}
	q.mu.Unlock()

	return n.ID
}

func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

func (q *Queue) ClearAll() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.items = nil
}

// Notifications returns a snapshot in insertion order.
func (q *Queue) Notifications() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

func (q *Queue) Success(message string) string { return q.Add(Success, message, 0) }
func (q *Queue) Error(message string) string { return q.Add(Error, message, 0) }
func (q *Queue) Warning(message string) string { return q.Add(Warning, message, 0) }
func (q *Queue) Info(message string) string { return q.Add(Info, message, 0) }
