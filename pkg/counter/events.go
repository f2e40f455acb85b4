package counter

import (
	"sync"

	"github.com/go-drift/countup/pkg/errors"
)

// EventName identifies a counter event.
type EventName string

const (
	// EventStart fires on the first frame of a run or resumed run.
	EventStart EventName = "start"
	// EventUpdate fires on every frame with the raw current value.
	EventUpdate EventName = "update"
	// EventComplete fires once a run reaches its end value.
	EventComplete EventName = "complete"
)

// Event is delivered to handlers. Value and Progress are set for update
// events.
type Event struct {
	Name     EventName
	Value    float64
	Progress float64
}

// Handler receives events.
type Handler func(Event)

// Subscription is a registered handler. Its pointer identity is what On and
// Off compare, so registering the same Subscription twice is a no-op.
type Subscription struct {
	fn Handler
}

// NewSubscription wraps fn in a handle that can be passed to On and Off.
func NewSubscription(fn Handler) *Subscription {
	return &Subscription{fn: fn}
}

// Bus is a minimal synchronous publish/subscribe registry. Handlers for an
// event run in registration order.
type Bus struct {
	mu        sync.Mutex
	listeners map[EventName][]*Subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[EventName][]*Subscription)}
}

// On registers sub for name. Registering an already registered
// subscription does nothing.
func (b *Bus) On(name EventName, sub *Subscription) {
	if sub == nil || sub.fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, cur := range b.listeners[name] {
		if cur == sub {
			return
		}
	}
	b.listeners[name] = append(b.listeners[name], sub)
}

// OnFunc registers fn for name and returns its subscription.
func (b *Bus) OnFunc(name EventName, fn Handler) *Subscription {
	sub := NewSubscription(fn)
	b.On(name, sub)
	return sub
}

// Off removes sub from name. Unknown subscriptions are ignored.
func (b *Bus) Off(name EventName, sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.listeners[name]
	for i, cur := range subs {
		if cur == sub {
			b.listeners[name] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.listeners[name]) == 0 {
		delete(b.listeners, name)
	}
}

// Emit calls every handler registered for name with ev. Handlers added or
// removed during Emit take effect on the next call. A panicking handler is
// reported to the error handler and does not stop the others.
func (b *Bus) Emit(name EventName, ev Event) {
	b.mu.Lock()
	subs := append([]*Subscription(nil), b.listeners[name]...)
	b.mu.Unlock()

	ev.Name = name
	for _, sub := range subs {
		dispatch(sub, ev)
	}
}

func dispatch(sub *Subscription, ev Event) {
	defer errors.Recover("counter.Emit")
	sub.fn(ev)
}

// Len returns how many handlers are registered for name.
func (b *Bus) Len(name EventName) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners[name])
}

// Clear removes every handler.
func (b *Bus) Clear() {
	b.mu.Lock()
	b.listeners = make(map[EventName][]*Subscription)
	b.mu.Unlock()
}
