// Package event holds the notifications published by a movement session and the bus delivering
// them to subscribers.
package event

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	EventIDPhysicsTick byte = iota + 1
	EventIDMove
	EventIDForcedMove
)

// Event is a notification published by a session.
type Event interface {
	ID() byte
	Time() int64
}

type NopEvent struct {
	EvTime int64
}

func (n NopEvent) Time() int64 {
	return n.EvTime
}

// Stamp returns a NopEvent carrying the time passed.
func Stamp(t time.Time) NopEvent {
	return NopEvent{EvTime: t.UnixNano()}
}

// PhysicsTickEvent is published after every simulation tick.
type PhysicsTickEvent struct {
	NopEvent

	Tick int64
}

func (PhysicsTickEvent) ID() byte {
	return EventIDPhysicsTick
}

// MoveEvent is published after a position or orientation update was sent to the server.
type MoveEvent struct {
	NopEvent

	OldPosition mgl64.Vec3
	Position    mgl64.Vec3
}

func (MoveEvent) ID() byte {
	return EventIDMove
}

// ForcedMoveEvent is published after the server corrected the position of the entity.
type ForcedMoveEvent struct {
	NopEvent

	Position   mgl64.Vec3
	Yaw, Pitch float64
}

func (ForcedMoveEvent) ID() byte {
	return EventIDForcedMove
}
