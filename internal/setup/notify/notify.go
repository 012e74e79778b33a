// Package notify provides change notification for setup documents.
//
// The notify package implements an observer pattern that allows components
// to subscribe to setup changes and receive callbacks when values are
// written. Delivery is synchronous: observers run on the goroutine that
// performed the write, which in ElephAnt is always the UI event loop.
package notify

import (
	"sync"
)

// Change represents a single value write in a setup document.
type Change struct {
	// Section is the section the key belongs to.
	Section string

	// Key is the key that was written.
	Key string

	// Old is the previous value ("" if the key did not exist).
	Old string

	// New is the value that was written.
	New string
}

// Observer is called when a setup value changes.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages setup change subscriptions.
type Notifier struct {
	mu        sync.Mutex
	observers map[uint64]Observer
	nextID    uint64
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{
		observers: make(map[uint64]Observer),
	}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = observer

	return &Subscription{
		id:       id,
		notifier: n,
	}
}

// Notify delivers a change to all observers.
func (n *Notifier) Notify(change Change) {
	n.mu.Lock()
	observers := make([]Observer, 0, len(n.observers))
	for _, obs := range n.observers {
		observers = append(observers, obs)
	}
	n.mu.Unlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(change)
	}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.observers)
}

// unsubscribe removes an observer by ID.
func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}
