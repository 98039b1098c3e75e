// Package event provides a lightweight notification system for the dashboard.
//
// Design principles:
// - Events carry identifiers only, not full records
// - Each event type is a separate Go type for type safety
// - Clients call HTTP APIs to fetch actual data after receiving notifications
// - The drafting preview is the one exception: draft.updated carries the draft
package event

import "sync"

// Event is the interface all event types must implement.
type Event interface {
	// EventName returns the unique name for this event type (e.g., "protocol.created")
	EventName() string
}

// Listener is a callback function for handling events.
type Listener func(Event)

// Emitter manages event subscriptions and dispatching.
type Emitter struct {
	mu           sync.RWMutex
	listeners    map[string][]Listener // eventName -> listeners
	anyListeners []listenerEntry       // listeners for all events
}

// NewEmitter creates a new event emitter.
func NewEmitter() *Emitter {
	return &Emitter{
		listeners: make(map[string][]Listener),
	}
}

// On subscribes to a specific event type.
func (e *Emitter) On(eventName string, fn Listener) {
	e.mu.Lock()
	e.listeners[eventName] = append(e.listeners[eventName], fn)
	e.mu.Unlock()
}

// OnAny subscribes to all events. Returns an unsubscribe function.
func (e *Emitter) OnAny(fn Listener) func() {
	id := new(int)
	wrapped := listenerEntry{id: id, fn: fn}

	e.mu.Lock()
	e.anyListeners = append(e.anyListeners, wrapped)
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.anyListeners {
			if l.id == id {
				e.anyListeners = append(e.anyListeners[:i], e.anyListeners[i+1:]...)
				break
			}
		}
	}
}

// Emit dispatches an event to all matching listeners.
func (e *Emitter) Emit(ev Event) {
	e.mu.RLock()
	// Copy listeners to avoid holding the lock during callbacks.
	specific := make([]Listener, len(e.listeners[ev.EventName()]))
	copy(specific, e.listeners[ev.EventName()])
	all := make([]listenerEntry, len(e.anyListeners))
	copy(all, e.anyListeners)
	e.mu.RUnlock()

	for _, fn := range specific {
		fn(ev)
	}
	for _, l := range all {
		l.fn(ev)
	}
}

type listenerEntry struct {
	id *int
	fn Listener
}

// ---- Global Emitter ----

var globalEmitter *Emitter
var globalOnce sync.Once

// Global returns the global event emitter.
func Global() *Emitter {
	globalOnce.Do(func() {
		globalEmitter = NewEmitter()
	})
	return globalEmitter
}

// Emit is a shortcut for Global().Emit(ev).
func Emit(ev Event) {
	Global().Emit(ev)
}
