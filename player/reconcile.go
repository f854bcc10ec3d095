package player

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesync/event"
	"github.com/oomph-ac/movesync/game"
	"github.com/oomph-ac/movesync/wire"
)

// entityRemoved updates the death tick counter and returns true if the entity has been dead for
// longer than the grace window. p.mu must be held.
func (p *Player) entityRemoved() bool {
	if p.state.Alive {
		p.deadTicks = 0
	} else if p.deadTicks <= p.conf.DeadGraceTicks {
		p.deadTicks++
	}
	return p.deadTicks > p.conf.DeadGraceTicks
}

// heartbeatDue returns true if no message was sent for at least the heartbeat interval, with the
// elapsed time rounded to the nearest tick.
func (p *Player) heartbeatDue(now time.Time) bool {
	elapsed := now.Sub(p.snapshot.Time).Round(game.Timestep)
	return elapsed >= p.conf.HeartbeatInterval
}

// reconcile steps the last-sent orientation and sends the single message needed to bring the
// server up to date with the entity, if any. p.mu must be held.
func (p *Player) reconcile(now time.Time) {
	if p.entityRemoved() {
		return
	}
	p.stepOrientation()

	yaw, pitch := game.ToWireYaw(p.orient.yaw), game.ToWirePitch(p.orient.pitch)
	pos := p.state.Position
	onGround := p.state.OnGround
	snap := p.snapshot

	positionUpdated := snap.X != pos.X() || snap.Y != pos.Y() || snap.Z != pos.Z()
	lookUpdated := snap.Yaw != yaw || snap.Pitch != pitch

	switch {
	case positionUpdated && lookUpdated:
		p.sendPose(now, wire.PositionOrientationUpdate{
			X: pos.X(), Y: pos.Y(), Z: pos.Z(),
			Yaw: yaw, Pitch: pitch,
			OnGround: onGround,
		})
	case positionUpdated:
		p.sendPose(now, wire.PositionUpdate{X: pos.X(), Y: pos.Y(), Z: pos.Z(), OnGround: onGround})
	case lookUpdated:
		p.sendPose(now, wire.OrientationUpdate{Yaw: yaw, Pitch: pitch, OnGround: onGround})
	case p.caps.HeartbeatEveryTick || onGround != snap.OnGround || p.heartbeatDue(now):
		if p.write(wire.Heartbeat{OnGround: onGround}) {
			p.snapshot.Time = now
		}
	}
	p.snapshot.OnGround = onGround

	p.checkConverged()
}

// sendPose writes a pose message and, if it was written, records it in the snapshot and queues a
// MoveEvent. p.mu must be held.
func (p *Player) sendPose(now time.Time, m wire.Message) {
	if !p.write(m) {
		return
	}
	old := p.snapshot
	switch m := m.(type) {
	case wire.PositionUpdate:
		p.snapshot.X, p.snapshot.Y, p.snapshot.Z = m.X, m.Y, m.Z
		p.snapshot.OnGround = m.OnGround
	case wire.OrientationUpdate:
		p.snapshot.Yaw, p.snapshot.Pitch = m.Yaw, m.Pitch
		p.snapshot.OnGround = m.OnGround
	case wire.PositionOrientationUpdate:
		p.snapshot.X, p.snapshot.Y, p.snapshot.Z = m.X, m.Y, m.Z
		p.snapshot.Yaw, p.snapshot.Pitch = m.Yaw, m.Pitch
		p.snapshot.OnGround = m.OnGround
	}
	p.snapshot.Time = now

	p.queue(event.MoveEvent{
		NopEvent:    event.Stamp(now),
		OldPosition: mgl64.Vec3{old.X, old.Y, old.Z},
		Position:    mgl64.Vec3{p.snapshot.X, p.snapshot.Y, p.snapshot.Z},
	})
}
