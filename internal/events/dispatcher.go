// Package events implements the observer pattern used to notify interested
// components of session and device changes.
package events

import (
	"context"
	"log"
	"sync"
)

// Event is a domain event dispatched to observers.
type Event struct {
	// Type is the event type (e.g., "session:moods", "device:status").
	Type string

	// TypedData contains the event payload as a typed struct.
	TypedData any

	// Context provides execution context for the event.
	Context context.Context
}

// Observer is notified of dispatched events.
type Observer interface {
	// OnEvent is called when an event is dispatched.
	OnEvent(event Event) error

	// Name returns a human-readable name for logging.
	Name() string

	// ShouldHandle reports whether this observer wants the event type.
	ShouldHandle(eventType string) bool
}

// Dispatcher distributes events to registered observers. Thread-safe for
// concurrent use.
type Dispatcher struct {
	observers []Observer
	mu        sync.RWMutex
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{observers: make([]Observer, 0)}
}

// Register adds an observer. It will receive all future events filtered by
// its ShouldHandle.
func (d *Dispatcher) Register(observer Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, observer)
}

// Unregister removes an observer.
func (d *Dispatcher) Unregister(observer Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, obs := range d.observers {
		if obs == observer {
			d.observers[i] = d.observers[len(d.observers)-1]
			d.observers = d.observers[:len(d.observers)-1]
			return
		}
	}
}

// Dispatch sends an event to all registered observers in registration
// order. Observer errors are logged and do not stop distribution.
func (d *Dispatcher) Dispatch(event Event) {
	d.mu.RLock()
	observers := make([]Observer, len(d.observers))
	copy(observers, d.observers)
	d.mu.RUnlock()

	for _, observer := range observers {
		if !observer.ShouldHandle(event.Type) {
			continue
		}
		if err := observer.OnEvent(event); err != nil {
			log.Printf("[Dispatcher] Observer %s failed on %s: %v", observer.Name(), event.Type, err)
		}
	}
}
