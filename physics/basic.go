package physics

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesync/game"
	"github.com/sandertv/gophertunnel/minecraft/protocol/packet"
)

const (
	groundEpsilon          = 1e-3
	levitationMultiplier   = 0.05
	velocityZeroThreshold  = 1e-12
	groundMovementConstant = 0.16277136
)

// Basic is a minimal Engine: gravity, drag, walking, sprinting, jumping and elytra gliding. It has
// no collision other than landing on top of solid blocks.
type Basic struct {
	// TurnSpeed is the yaw and pitch turn rate in radians per second. game.DefaultTurnSpeed is used
	// if it is zero.
	TurnSpeed float64
}

// YawSpeed ...
func (b Basic) YawSpeed() float64 {
	if b.TurnSpeed <= 0 {
		return game.DefaultTurnSpeed
	}
	return b.TurnSpeed
}

// PitchSpeed ...
func (b Basic) PitchSpeed() float64 {
	return b.YawSpeed()
}

// Simulate ...
func (b Basic) Simulate(s *State, c Controls, w BlockSource) {
	if s.Velocity.LenSqr() < velocityZeroThreshold {
		s.Velocity = mgl64.Vec3{}
	}
	if s.JumpTicks > 0 {
		s.JumpTicks--
	}

	if s.ElytraFlying {
		if s.HasElytra && !s.OnGround && !s.InWater {
			glide(s)
			b.move(s, w)
			if s.OnGround {
				s.ElytraFlying = false
			}
			return
		}
		s.ElytraFlying = false
	}

	friction := game.DefaultAirFriction
	speed := game.DefaultAirSpeed
	if c.Sprint {
		speed += game.DefaultAirSpeed * (game.SprintMultiplier - 1)
	}
	if s.OnGround {
		friction *= game.DefaultBlockFriction
		mSpeed := game.DefaultMovementSpeed
		if c.Sprint {
			mSpeed *= game.SprintMultiplier
		}
		speed = mSpeed * (groundMovementConstant / (friction * friction * friction))
	}

	moveRelative(s, impulse(c), speed)

	jump := c.Jump || s.JumpQueued
	s.JumpQueued = false
	if !c.Jump {
		s.JumpTicks = 0
	}
	if jump && s.OnGround && s.JumpTicks == 0 {
		b.jump(s, c)
	}

	b.move(s, w)

	vel := s.Velocity
	if amp, ok := s.Effect(packet.EffectLevitation); ok {
		vel[1] += (levitationMultiplier*float64(amp+1) - vel[1]) * 0.2
	} else {
		vel[1] -= game.NormalGravity
		vel[1] *= game.NormalGravityMultiplier
	}
	vel[0] *= friction
	vel[2] *= friction
	s.Velocity = vel
}

// jump applies the jump velocity to s, with the sprint boost along the facing direction.
func (b Basic) jump(s *State, c Controls) {
	height := game.DefaultJumpHeight
	if amp, ok := s.Effect(packet.EffectJumpBoost); ok {
		height += float64(amp+1) * 0.1
	}
	s.Velocity[1] = math.Max(height, s.Velocity[1])
	if c.Jump {
		s.JumpTicks = game.JumpDelayTicks
	}

	if c.Sprint {
		// Vanilla yaw in radians.
		force := math.Pi - s.Yaw
		s.Velocity[0] -= game.MCSin(force) * game.SprintJumpBoost
		s.Velocity[2] += game.MCCos(force) * game.SprintJumpBoost
	}
}

// move moves s along its velocity, landing it on the first solid block below its feet.
func (Basic) move(s *State, w BlockSource) {
	next := s.Position.Add(s.Velocity)
	s.OnGround = false
	if s.Velocity.Y() <= 0 {
		feet := cube.PosFromVec3(mgl64.Vec3{next.X(), next.Y() - groundEpsilon, next.Z()})
		top := float64(feet.Y() + 1)
		if w.Solid(feet) && top <= s.Position.Y()+groundEpsilon {
			next[1] = top
			s.Velocity[1] = 0
			s.OnGround = true
		}
	}
	s.Position = next
}

// impulse returns the strafe and forward impulse of the controls held.
func impulse(c Controls) mgl64.Vec2 {
	var strafe, forward float64
	if c.Forward {
		forward++
	}
	if c.Back {
		forward--
	}
	if c.Left {
		strafe++
	}
	if c.Right {
		strafe--
	}
	if c.Sneak {
		strafe *= game.MaxSneakImpulse
		forward *= game.MaxSneakImpulse
	}
	return mgl64.Vec2{strafe, forward}.Mul(0.98)
}

func moveRelative(s *State, impulse mgl64.Vec2, speed float64) {
	force := impulse.Y()*impulse.Y() + impulse.X()*impulse.X()
	if force < 1e-4 {
		return
	}
	force = speed / math.Max(math.Sqrt(force), 1.0)
	mf, ms := impulse.Y()*force, impulse.X()*force

	yaw := math.Pi - s.Yaw
	v2, v3 := game.MCSin(yaw), game.MCCos(yaw)
	s.Velocity[0] += ms*v3 - mf*v2
	s.Velocity[2] += mf*v3 + ms*v2
}

func glide(s *State) {
	yaw, pitch := math.Pi-s.Yaw, -s.Pitch
	yawCos := math.Cos(-yaw - math.Pi)
	yawSin := math.Sin(-yaw - math.Pi)
	pitchCos := math.Cos(pitch)
	pitchSin := math.Sin(pitch)

	lookX := yawSin * -pitchCos
	lookZ := yawCos * -pitchCos

	vel := s.Velocity
	velHz := math.Sqrt(vel[0]*vel[0] + vel[2]*vel[2])
	lookHz := pitchCos
	sqrPitchCos := pitchCos * pitchCos

	vel[1] += -game.NormalGravity + sqrPitchCos*0.06
	if vel[1] < 0 && lookHz > 0 {
		yAccel := vel[1] * -0.1 * sqrPitchCos
		vel[1] += yAccel
		vel[0] += lookX * yAccel / lookHz
		vel[2] += lookZ * yAccel / lookHz
	}
	if pitch < 0 && lookHz > 0 {
		yAccel := velHz * -pitchSin * 0.04
		vel[1] += yAccel * 3.2
		vel[0] -= lookX * yAccel / lookHz
		vel[2] -= lookZ * yAccel / lookHz
	}
	if lookHz > 0 {
		vel[0] += (lookX/lookHz*velHz - vel[0]) * 0.1
		vel[2] += (lookZ/lookHz*velHz - vel[2]) * 0.1
	}

	vel[0] *= 0.99
	vel[1] *= 0.98
	vel[2] *= 0.99
	s.Velocity = vel
}
