package player

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesync/event"
	"github.com/oomph-ac/movesync/game"
	"github.com/oomph-ac/movesync/wire"
)

// HandleTeleport applies a position and orientation correction sent by the server. Each axis of the
// pose is either added to or replaces the current value depending on its relative flag. The corrected
// pose is echoed back to the server and becomes the new baseline for reconciliation.
func (p *Player) HandleTeleport(pose wire.AuthoritativePose) {
	p.bus.Publish(p.teleport(pose)...)
}

func (p *Player) teleport(pose wire.AuthoritativePose) []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	now := p.clock()
	s, f := p.state, pose.Flags

	p.state.Height = game.PlayerHeight

	vel := mgl64.Vec3{}
	if f.X {
		vel[0] = s.Velocity.X()
	}
	if f.Y {
		vel[1] = s.Velocity.Y()
	}
	if f.Z {
		vel[2] = s.Velocity.Z()
	}
	s.Velocity = vel
	s.Position = mgl64.Vec3{
		wire.Apply(f.X, s.Position.X(), pose.X),
		wire.Apply(f.Y, s.Position.Y(), pose.Y),
		wire.Apply(f.Z, s.Position.Z(), pose.Z),
	}

	yaw := wire.Apply(f.Yaw, game.WireYawDegrees(s.Yaw), pose.Yaw)
	pitch := wire.Apply(f.Pitch, game.WirePitchDegrees(s.Pitch), pose.Pitch)
	s.Yaw, s.Pitch = game.FromWireYaw(yaw), game.FromWirePitch(pitch)
	s.OnGround = false

	if p.caps.TeleportConfirm && pose.HasID {
		p.write(wire.TeleportConfirm{ID: pose.ID})
	}
	// The echo is encoded the way the reconciler encodes the last-sent orientation, so the next tick
	// compares equal to it whatever range the server sent the yaw in.
	p.orient.setLastSent(s.Yaw, s.Pitch)
	p.sendPose(now, wire.PositionOrientationUpdate{
		X: s.Position.X(), Y: s.Position.Y(), Z: s.Position.Z(),
		Yaw: game.ToWireYaw(s.Yaw), Pitch: game.ToWirePitch(s.Pitch),
		OnGround: false,
	})

	p.shouldUsePhysics = true
	s.JumpTicks = 0
	p.deadTicks = 0
	p.checkConverged()

	p.log.Debugf("entity %d teleported to %v", p.entityID, s.Position)
	p.queue(event.ForcedMoveEvent{NopEvent: event.Stamp(now), Position: s.Position, Yaw: s.Yaw, Pitch: s.Pitch})
	return p.takePending()
}
