package events

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// maxDispatchDepth bounds re-entrant Publish calls. Handlers are allowed to
// publish further events synchronously, but a cycle of handlers feeding each
// other would otherwise recurse forever.
const maxDispatchDepth = 64

// Event is a published message. Every payload type carries its own name, so
// the name/shape pairing is fixed at compile time instead of being a loose
// (string, any) tuple.
type Event interface {
	Name() string
}

// Handler receives a published event.
type Handler func(Event)

// Subscription identifies a single registered handler.
type Subscription struct {
	id    uuid.UUID
	event string
}

type registration struct {
	id uuid.UUID
	fn Handler
}

// Bus is a synchronous in-process publish/subscribe bus. Publish invokes all
// handlers registered for the event's name, in subscription order, before it
// returns. There is no queueing: a handler that publishes causes nested
// delivery on the same call stack. A panicking handler aborts delivery to the
// remaining handlers of that publish.
//
// A Bus is meant to be injected into every component at construction. Create
// one per test case instead of sharing a global.
type Bus struct {
	mu       sync.Mutex
	handlers map[string][]registration
	hooks    []Handler
	depth    int
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]registration)}
}

// Subscribe registers fn for events published under name.
func (b *Bus) Subscribe(name string, fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := Subscription{id: uuid.New(), event: name}
	b.handlers[name] = append(b.handlers[name], registration{id: sub.id, fn: fn})
	return sub
}

// Unsubscribe removes a previously registered handler. Unknown subscriptions
// are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[sub.event]
	for i, reg := range regs {
		if reg.id == sub.id {
			b.handlers[sub.event] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// OnAny registers a hook that receives every published event regardless of
// name, after the named handlers. Intended for debugging and tests.
func (b *Bus) OnAny(fn Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hooks = append(b.hooks, fn)
}

// Publish delivers evt synchronously to all current subscribers of its name.
func (b *Bus) Publish(evt Event) {
	b.mu.Lock()
	b.depth++
	if b.depth > maxDispatchDepth {
		depth := b.depth
		b.depth--
		b.mu.Unlock()
		panic(fmt.Sprintf("events: dispatch depth %d exceeds %d publishing %q, handler cycle suspected",
			depth, maxDispatchDepth, evt.Name()))
	}
	regs := append([]registration(nil), b.handlers[evt.Name()]...)
	hooks := append([]Handler(nil), b.hooks...)
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.depth--
		b.mu.Unlock()
	}()

	for _, reg := range regs {
		reg.fn(evt)
	}
	for _, hook := range hooks {
		hook(evt)
	}
}

// On subscribes fn to the event name derived from T's zero value, asserting
// the payload type at the subscription boundary so handlers never see a
// mismatched shape.
func On[T Event](b *Bus, fn func(T)) Subscription {
	var zero T
	return b.Subscribe(zero.Name(), func(e Event) {
		if evt, ok := e.(T); ok {
			fn(evt)
		}
	})
}
