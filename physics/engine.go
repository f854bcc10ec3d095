// Package physics holds the movement state of an entity and the engines that advance it.
package physics

import (
	"github.com/df-mc/dragonfly/server/block/cube"
)

// BlockSource is the part of the world an Engine needs to move an entity around.
type BlockSource interface {
	// Solid returns true if the block at pos may be stood on.
	Solid(pos cube.Pos) bool
}

// Engine advances a State by a single tick.
type Engine interface {
	// Simulate runs one tick of movement for s with the controls held.
	Simulate(s *State, c Controls, w BlockSource)
	// YawSpeed returns the default yaw turn rate in radians per second.
	YawSpeed() float64
	// PitchSpeed returns the default pitch turn rate in radians per second.
	PitchSpeed() float64
}
