// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

// Package bus provides the in-process event channel the configuration
// store announces state changes on. Subscribers register explicitly; there
// is no ambient global channel.
package bus

import "sync"

// Event is a state-change announcement. Exactly one of the payload fields
// is meaningful for a given kind.
type Event struct {
	Kind    Kind
	Profile string            // RemovedProfile, CollectionEmpty
	Entries map[string]string // Changed
}

// Kind identifies the event type.
type Kind int

const (
	// Changed fires after a batched save completes, carrying the full
	// normalized batch.
	Changed Kind = iota
	// RemovedProfile fires after a profile namespace was removed.
	RemovedProfile
	// CollectionEmpty fires when bootstrap finds a profile with zero
	// entries before provisioning defaults.
	CollectionEmpty
)

// Handler receives published events. Handlers run synchronously on the
// publisher's goroutine; they must not block.
type Handler func(Event)

// Bus is a minimal synchronous pub/sub channel. The zero value is ready
// to use. Safe for concurrent use.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all events and returns a function
// that removes the subscription.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers == nil {
		b.handlers = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

// Publish delivers an event to every subscriber. Fire-and-forget: there
// is no acknowledgment and no error path.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}
