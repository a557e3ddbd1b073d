// Package notify implements the change-notification registry consumed by
// presentation code.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind identifies the mutation that produced an Event.
type Kind string

const (
	KindSolved   Kind = "solved"
	KindReset    Kind = "reset"
	KindImported Kind = "imported"
)

// Event describes one completed mutation.
type Event struct {
	Kind   Kind      `json:"kind"`
	ItemID string    `json:"item_id,omitempty"`
	At     time.Time `json:"at"`
}

// Listener receives events after each mutation.
type Listener func(Event)

type subscription struct {
	id uuid.UUID
	fn Listener
}

// Hub is a registry of listeners. The zero value is ready to use.
type Hub struct {
	mu   sync.RWMutex
	subs []subscription
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (h *Hub) Subscribe(fn Listener) (unsubscribe func()) {
	id := uuid.New()
	h.mu.Lock()
	h.subs = append(h.subs, subscription{id: id, fn: fn})
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub) remove(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers e to every listener in registration order.
// Listeners may subscribe or unsubscribe while being called.
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	subs := make([]subscription, len(h.subs))
	copy(subs, h.subs)
	h.mu.RUnlock()

	for _, s := range subs {
		s.fn(e)
	}
}

// Len returns the number of registered listeners.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
