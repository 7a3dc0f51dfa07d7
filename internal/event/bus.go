package event

import (
	"sync"
	"time"
)

// Topic names what dashboard pages should re-fetch.
type Topic string

const (
	TopicPermissions Topic = "permissions"
	TopicRoles       Topic = "roles"
)

const TypeRefresh = "refresh"

// Event tells subscribers that data they display has changed.
type Event struct {
	Type   string    `json:"type"`
	Topic  Topic     `json:"topic"`
	UserID string    `json:"user_id,omitempty"`
	At     time.Time `json:"at"`
}

// NewRefresh builds a refresh event stamped with the current time.
func NewRefresh(topic Topic, userID string) Event {
	return Event{Type: TypeRefresh, Topic: topic, UserID: userID, At: time.Now().UTC()}
}

// Bus is an in-process observer list. Handlers run synchronously on the
// publishing goroutine and must not block.
type Bus struct {
	mu       sync.RWMutex
	next     int
	handlers map[int]func(Event)
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[int]func(Event))}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.handlers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
		})
	}
}

// Publish delivers e to every current subscriber.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]func(Event), 0, len(b.handlers))
	for _, fn := range b.handlers {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(e)
	}
}

// Subscribers returns the number of registered handlers.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.handlers)
}
