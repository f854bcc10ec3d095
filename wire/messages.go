// Package wire holds the movement messages exchanged with the server, independent of any transport
// encoding.
package wire

import "time"

// Message is a single outbound message written by a session.
type Message interface {
	// Name returns a short, stable name of the message, used for logging.
	Name() string
}

// Writer writes messages to the server. Implementations are provided by transports.
type Writer interface {
	WriteMessage(m Message) error
}

// PositionUpdate reports a new position only.
type PositionUpdate struct {
	X, Y, Z  float64
	OnGround bool
	Flags    RelativeFlags
}

// OrientationUpdate reports a new orientation only. Yaw and Pitch are in wire degrees.
type OrientationUpdate struct {
	Yaw, Pitch float32
	OnGround   bool
	Flags      RelativeFlags
}

// PositionOrientationUpdate reports both a new position and orientation.
type PositionOrientationUpdate struct {
	X, Y, Z    float64
	Yaw, Pitch float32
	OnGround   bool
	Flags      RelativeFlags
}

// Heartbeat is sent while nothing changed, keeping the server's view of the ground state and the
// session's liveness up to date.
type Heartbeat struct {
	OnGround bool
	Flags    RelativeFlags
}

// TeleportConfirm acknowledges an AuthoritativePose that carried an ID.
type TeleportConfirm struct {
	ID int32
}

// PlayerInput is the per-tick input message used by servers that no longer accept sneak toggles
// as entity actions.
type PlayerInput struct {
	Sneak bool
}

func (PositionUpdate) Name() string            { return "position" }
func (OrientationUpdate) Name() string         { return "look" }
func (PositionOrientationUpdate) Name() string { return "position_look" }
func (Heartbeat) Name() string                 { return "flying" }
func (TeleportConfirm) Name() string           { return "teleport_confirm" }
func (PlayerInput) Name() string               { return "player_input" }

// Snapshot is the pose last transmitted to the server.
type Snapshot struct {
	X, Y, Z    float64
	Yaw, Pitch float32
	OnGround   bool
	// Time is the moment the last message was sent.
	Time time.Time
}

// AuthoritativePose is a position and orientation correction issued by the server. Yaw and Pitch
// are in wire degrees. Each axis is either absolute or relative to the current value according to
// Flags.
type AuthoritativePose struct {
	X, Y, Z    float64
	Yaw, Pitch float64
	Flags      RelativeFlags
	// ID is the correlation ID of the correction, if the server sent one.
	ID    int32
	HasID bool
}
