package player

import (
	"github.com/oomph-ac/movesync/assert"
	"github.com/oomph-ac/movesync/physics"
	"github.com/oomph-ac/movesync/wire"
)

// Names of the controls accepted by SetControl and Control.
const (
	ControlForward = "forward"
	ControlBack    = "back"
	ControlLeft    = "left"
	ControlRight   = "right"
	ControlJump    = "jump"
	ControlSprint  = "sprint"
	ControlSneak   = "sneak"
)

// controlNames lists every control in a fixed order.
var controlNames = [...]string{ControlForward, ControlBack, ControlLeft, ControlRight, ControlJump, ControlSprint, ControlSneak}

// controlField returns a pointer to the field of c holding the control with the name passed.
func controlField(c *physics.Controls, name string) (*bool, bool) {
	switch name {
	case ControlForward:
		return &c.Forward, true
	case ControlBack:
		return &c.Back, true
	case ControlLeft:
		return &c.Left, true
	case ControlRight:
		return &c.Right, true
	case ControlJump:
		return &c.Jump, true
	case ControlSprint:
		return &c.Sprint, true
	case ControlSneak:
		return &c.Sneak, true
	}
	return nil, false
}

// SetControl sets the state of the control with the name passed. Setting a control to the state it
// already has does nothing. SetControl panics if the control does not exist.
func (p *Player) SetControl(name string, state bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setControl(name, state)
}

// Control returns the state of the control with the name passed. Control panics if the control
// does not exist.
func (p *Player) Control(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	field, ok := controlField(&p.controls, name)
	assert.IsTrue(ok, "invalid control: %s", name)
	return *field
}

// Controls returns the state of all controls.
func (p *Player) Controls() physics.Controls {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.controls
}

// ClearControls releases all controls.
func (p *Player) ClearControls() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, name := range controlNames {
		p.setControl(name, false)
	}
}

// setControl sets a control and writes the messages its transition requires. p.mu must be held.
func (p *Player) setControl(name string, state bool) {
	field, ok := controlField(&p.controls, name)
	assert.IsTrue(ok, "invalid control: %s", name)
	if *field == state {
		return
	}
	*field = state

	switch name {
	case ControlJump:
		if state {
			p.state.JumpQueued = true
		}
	case ControlSprint:
		action := wire.ActionStopSprinting
		if state {
			action = wire.ActionStartSprinting
		}
		p.writeAction(action)
	case ControlSneak:
		if p.caps.PlayerInput {
			p.write(wire.PlayerInput{Sneak: state})
			return
		}
		action := wire.ActionStopSneaking
		if state {
			action = wire.ActionStartSneaking
		}
		p.writeAction(action)
	}
}

// writeAction writes an entity action for the controlled entity. p.mu must be held.
func (p *Player) writeAction(a wire.Action) bool {
	return p.write(wire.EntityAction{EntityID: p.entityID, Action: a, Named: p.caps.NamedActions})
}
