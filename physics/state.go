package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesync/game"
)

// Controls is the set of movement inputs held by the client.
type Controls struct {
	Forward, Back bool
	Left, Right   bool
	Jump          bool
	Sprint        bool
	Sneak         bool
}

// State holds the movement state of the controlled entity. Yaw and Pitch are in radians: yaw is
// measured counter-clockwise from north and pitch is positive upwards. Velocity is in blocks per
// tick.
type State struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3

	Yaw, Pitch float64

	OnGround bool
	Alive    bool

	// Height is the height of the hitbox, which changes when sneaking, swimming or gliding.
	Height float64

	// JumpQueued requests a single jump on the next tick, even if the jump control was released
	// before the tick ran.
	JumpQueued bool
	// JumpTicks is the remaining cooldown before another jump is allowed while holding jump.
	JumpTicks int

	ElytraFlying bool
	InWater      bool
	Creative     bool
	HasElytra    bool

	// Effects maps the IDs of active effects to their amplifier.
	Effects map[int32]int32
}

// NewState returns the state of an alive, standing entity at pos.
func NewState(pos mgl64.Vec3) *State {
	return &State{
		Position: pos,
		Alive:    true,
		Height:   game.PlayerHeight,
		Effects:  make(map[int32]int32),
	}
}

// Effect returns the amplifier of the effect with the ID passed, if it is active.
func (s *State) Effect(id int32) (amplifier int32, ok bool) {
	amplifier, ok = s.Effects[id]
	return
}

// SetEffect activates the effect with the ID passed, or updates its amplifier.
func (s *State) SetEffect(id, amplifier int32) {
	if s.Effects == nil {
		s.Effects = make(map[int32]int32)
	}
	s.Effects[id] = amplifier
}

// RemoveEffect deactivates the effect with the ID passed.
func (s *State) RemoveEffect(id int32) {
	delete(s.Effects, id)
}

// EyePosition returns the position of the eyes of the entity.
func (s *State) EyePosition(sneaking bool) mgl64.Vec3 {
	offset := game.DefaultPlayerHeightOffset
	if sneaking {
		offset = game.SneakingPlayerHeightOffset
	}
	return s.Position.Add(mgl64.Vec3{0, offset})
}
