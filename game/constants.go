package game

import (
	"math"
	"time"
)

const (
	// TicksPerSecond is the rate at which the server expects movement updates.
	TicksPerSecond = 20
	// Timestep is the duration of a single simulation tick.
	Timestep = time.Second / TicksPerSecond
	// TimestepSeconds is Timestep expressed in seconds.
	TimestepSeconds = 1.0 / TicksPerSecond

	// DefaultCatchupTicks is the maximum amount of ticks drained in a single scheduler callback.
	DefaultCatchupTicks = 4
	// DefaultHeartbeatInterval is the longest a session stays silent while idle.
	DefaultHeartbeatInterval = time.Second
	// DeadGraceTicks is the amount of ticks after death during which pose updates are still sent.
	DeadGraceTicks = 20

	// DefaultTurnSpeed is the default yaw and pitch turn rate in radians per second.
	DefaultTurnSpeed = 3.0

	// LookStep is the smallest angular step a look request may move by: the vanilla mouse step at
	// 100% sensitivity, 0.15 degrees, in radians.
	LookStep = 0.15 * math.Pi / 180
	// LookEpsilon is the distance in radians under which a look is considered to have converged.
	LookEpsilon = 0.001
	// EasingOverrunFactor is the fraction of the planned duration after which an eased look that
	// has not converged is reported.
	EasingOverrunFactor = 1.2
)
