package player

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesync/game"
	"github.com/oomph-ac/movesync/oerror"
	"github.com/oomph-ac/movesync/wire"
	"github.com/sandertv/gophertunnel/minecraft/protocol/packet"
)

// ElytraFly starts gliding with the elytra worn by the entity. A *oerror.PreconditionError is
// returned, and nothing is sent, if the entity is unable to start gliding.
func (p *Player) ElytraFly() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	const action = "elytra fly"
	s := p.state
	switch {
	case s.ElytraFlying:
		return oerror.Precondition(action, "already elytra flying")
	case s.OnGround:
		return oerror.Precondition(action, "entity is on the ground")
	case s.InWater:
		return oerror.Precondition(action, "entity is in water")
	case !s.HasElytra:
		return oerror.Precondition(action, "no elytra equipped")
	}
	if _, ok := s.Effect(packet.EffectLevitation); ok {
		return oerror.Precondition(action, "entity has the levitation effect")
	}

	if !p.writeAction(wire.ActionStartElytraFlying) {
		return oerror.New("unable to write %s action", wire.ActionStartElytraFlying.Key())
	}
	s.ElytraFlying = true
	return nil
}

// HandleRotation applies an orientation sent by the server, in wire degrees. Unlike HandleTeleport,
// the orientation is not echoed and the last-sent orientation turns towards it as usual.
func (p *Player) HandleRotation(yaw, pitch float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.Yaw = game.FromWireYaw(yaw)
	p.state.Pitch = game.FromWirePitch(pitch)
}

// HandleExplosion adds the knockback of an explosion to the velocity of the entity. It does nothing
// while physics is disabled or the entity is in creative mode.
func (p *Player) HandleExplosion(knockback mgl64.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.conf.PhysicsEnabled || p.state.Creative {
		return
	}
	p.state.Velocity = p.state.Velocity.Add(knockback)
}

// HandleMount suspends simulation until the next position correction.
func (p *Player) HandleMount() {
	p.suspend()
}

// HandleRespawn suspends simulation until the next position correction.
func (p *Player) HandleRespawn() {
	p.suspend()
}

// HandleLogin suspends simulation until the first position correction and starts ticking the session
// if it isn't already.
func (p *Player) HandleLogin() {
	p.suspend()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if p.scheduler.Start(p.log) {
		p.log.Debugf("movement session for entity %d started", p.entityID)
	}
}

func (p *Player) suspend() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shouldUsePhysics = false
}
