package event

import (
	"sync"

	"github.com/elliotchance/orderedmap/v2"
)

// Subscription identifies a subscriber registered on a Bus.
type Subscription uint64

type subscriber struct {
	id byte
	f  func(Event)
}

// Bus delivers events to subscribers in the order they subscribed. A Bus is safe for concurrent use,
// and subscribers may subscribe or unsubscribe from within a handler.
type Bus struct {
	mu   sync.Mutex
	next Subscription
	subs *orderedmap.OrderedMap[Subscription, subscriber]
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: orderedmap.NewOrderedMap[Subscription, subscriber]()}
}

// Subscribe registers f to be called with every event with the ID passed. An ID of 0 subscribes to
// all events.
func (b *Bus) Subscribe(id byte, f func(Event)) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	b.subs.Set(b.next, subscriber{id: id, f: f})
	return b.next
}

// Unsubscribe removes a subscriber. It returns false if the subscription was not registered.
func (b *Bus) Unsubscribe(s Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.subs.Delete(s)
}

// Len returns the amount of subscribers registered.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.subs.Len()
}

// Publish delivers the events passed, in order, to the subscribers registered when Publish was called.
func (b *Bus) Publish(events ...Event) {
	if len(events) == 0 {
		return
	}

	b.mu.Lock()
	subs := make([]subscriber, 0, b.subs.Len())
	for el := b.subs.Front(); el != nil; el = el.Next() {
		subs = append(subs, el.Value)
	}
	b.mu.Unlock()

	for _, ev := range events {
		for _, s := range subs {
			if s.id == 0 || s.id == ev.ID() {
				s.f(ev)
			}
		}
	}
}
