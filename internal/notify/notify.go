// Package notify provides change notification for project session
// updates.
//
// The notify package implements an observer pattern that allows
// components to subscribe to session changes (configuration reloads,
// configuration errors, lint refresh requests) and receive callbacks
// when they occur.
package notify

import (
	"sync"
)

// EventType represents the type of session event.
type EventType int

const (
	// EventConfigLoaded indicates a project configuration was
	// published after a successful reload.
	EventConfigLoaded EventType = iota

	// EventConfigError indicates a configuration error message was
	// published (parse failure, I/O failure, or unsupported format).
	EventConfigError

	// EventRelint indicates lint results should be refreshed.
	EventRelint

	// EventPreferenceChanged indicates a tool preference was toggled.
	EventPreferenceChanged
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventConfigLoaded:
		return "config-loaded"
	case EventConfigError:
		return "config-error"
	case EventRelint:
		return "relint"
	case EventPreferenceChanged:
		return "preference-changed"
	default:
		return "unknown"
	}
}

// Event represents a session change event.
type Event struct {
	// Type is the type of event.
	Type EventType

	// Root is the project root the event applies to.
	Root string

	// Message carries the error message for EventConfigError.
	Message string

	// Generation is the configuration generation at emission time.
	Generation int64
}

// Observer is called when session events occur.
type Observer func(event Event)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages session event subscriptions.
type Notifier struct {
	mu sync.RWMutex

	// Global observers that receive all events
	globalObservers map[uint64]Observer

	// Type-specific observers
	typeObservers map[EventType]map[uint64]Observer

	// Next subscription ID
	nextID uint64

	// Whether to notify synchronously or asynchronously
	async bool

	// Buffer for async notifications
	buffer chan Event

	// Done channel for shutdown
	done chan struct{}

	// Wait group for async goroutine
	wg sync.WaitGroup

	// Closed flag for idempotent Close
	closed bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync enables asynchronous notification delivery.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Event, bufferSize)
		}
	}
}

// New creates a new Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		globalObservers: make(map[uint64]Observer),
		typeObservers:   make(map[EventType]map[uint64]Observer),
		done:            make(chan struct{}),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.async {
		n.wg.Add(1)
		go n.processAsync()
	}

	return n
}

// Subscribe registers an observer for all events.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.globalObservers[id] = observer

	return &Subscription{
		id:       id,
		notifier: n,
	}
}

// SubscribeType registers an observer for events of a specific type.
func (n *Notifier) SubscribeType(typ EventType, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.typeObservers[typ] == nil {
		n.typeObservers[typ] = make(map[uint64]Observer)
	}
	n.typeObservers[typ][id] = observer

	return &Subscription{
		id:       id,
		notifier: n,
	}
}

// Notify sends an event to all relevant observers.
func (n *Notifier) Notify(event Event) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	n.mu.RUnlock()

	if n.async {
		select {
		case n.buffer <- event:
		case <-n.done:
		}
		return
	}

	n.deliver(event)
}

// Close shuts down the notifier. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

// unsubscribe removes an observer by ID.
func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)

	for typ, observers := range n.typeObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.typeObservers, typ)
		}
	}
}

// deliver sends an event to all matching observers.
func (n *Notifier) deliver(event Event) {
	n.mu.RLock()

	var observers []Observer
	for _, obs := range n.globalObservers {
		observers = append(observers, obs)
	}
	if typeObs, ok := n.typeObservers[event.Type]; ok {
		for _, obs := range typeObs {
			observers = append(observers, obs)
		}
	}

	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(event)
	}
}

// processAsync handles asynchronous notification delivery.
func (n *Notifier) processAsync() {
	defer n.wg.Done()

	for {
		select {
		case event := <-n.buffer:
			n.deliver(event)
		case <-n.done:
			// Drain remaining buffered events
			for {
				select {
				case event := <-n.buffer:
					n.deliver(event)
				default:
					return
				}
			}
		}
	}
}
