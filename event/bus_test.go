package event

import (
	"testing"
	"time"
)

func TestBusDeliversInRegistrationOrder(t *testing.T) {
	b := NewBus()
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		b.Subscribe(EventIDPhysicsTick, func(Event) {
			order = append(order, i)
		})
	}
	b.Publish(PhysicsTickEvent{Tick: 1})

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Fatalf("expected delivery order [1 2 3], got %v", order)
	}
}

func TestBusFiltersByID(t *testing.T) {
	b := NewBus()
	var ticks, all int
	b.Subscribe(EventIDPhysicsTick, func(Event) { ticks++ })
	b.Subscribe(0, func(Event) { all++ })

	b.Publish(PhysicsTickEvent{}, MoveEvent{}, ForcedMoveEvent{})
	if ticks != 1 {
		t.Errorf("expected 1 tick event, got %d", ticks)
	}
	if all != 3 {
		t.Errorf("expected 3 events for the catch-all subscriber, got %d", all)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	b := NewBus()
	var calls int
	s := b.Subscribe(EventIDMove, func(Event) { calls++ })
	if !b.Unsubscribe(s) {
		t.Fatalf("expected subscription to be removed")
	}
	if b.Unsubscribe(s) {
		t.Fatalf("expected second unsubscribe to report false")
	}
	b.Publish(MoveEvent{})
	if calls != 0 {
		t.Fatalf("expected no calls after unsubscribing, got %d", calls)
	}
}

func TestBusUnsubscribeFromHandler(t *testing.T) {
	b := NewBus()
	var calls int
	var s Subscription
	s = b.Subscribe(EventIDPhysicsTick, func(Event) {
		calls++
		b.Unsubscribe(s)
	})
	b.Publish(PhysicsTickEvent{Tick: 1})
	b.Publish(PhysicsTickEvent{Tick: 2})
	if calls != 1 {
		t.Fatalf("expected exactly one call, got %d", calls)
	}
	if b.Len() != 0 {
		t.Fatalf("expected no subscribers left, got %d", b.Len())
	}
}

func TestStamp(t *testing.T) {
	now := time.Unix(10, 5)
	ev := PhysicsTickEvent{NopEvent: Stamp(now), Tick: 3}
	if ev.Time() != now.UnixNano() {
		t.Fatalf("expected time %d, got %d", now.UnixNano(), ev.Time())
	}
}
