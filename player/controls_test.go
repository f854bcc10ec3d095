package player

import (
	"testing"

	"github.com/oomph-ac/movesync/game"
	"github.com/oomph-ac/movesync/oerror"
	"github.com/oomph-ac/movesync/physics"
	"github.com/oomph-ac/movesync/wire"
)

func TestSprintAction(t *testing.T) {
	tests := []struct {
		name  string
		named bool
		start any
		stop  any
	}{
		{"numeric", false, int32(3), int32(4)},
		{"named", true, "start_sprinting", "stop_sprinting"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, wire.Capabilities{NamedActions: tt.named}, game.DefaultTurnSpeed)

			s.SetControl(ControlSprint, true)
			s.SetControl(ControlSprint, false)
			m := s.out.take()
			if len(m) != 2 {
				t.Fatalf("expected two entity actions, got %v", m)
			}
			for i, want := range []any{tt.start, tt.stop} {
				a, ok := m[i].(wire.EntityAction)
				if !ok {
					t.Fatalf("expected an entity action, got %T", m[i])
				}
				if a.EntityID != 7 {
					t.Fatalf("expected action for entity 7, got %d", a.EntityID)
				}
				if a.Identifier() != want {
					t.Fatalf("expected action %v, got %v", want, a.Identifier())
				}
			}
		})
	}
}

func TestSneak(t *testing.T) {
	s := newTestSession(t, wire.Capabilities{}, game.DefaultTurnSpeed)
	s.SetControl(ControlSneak, true)
	m := s.out.take()
	if len(m) != 1 {
		t.Fatalf("expected one message, got %v", m)
	}
	if a, ok := m[0].(wire.EntityAction); !ok || a.Action != wire.ActionStartSneaking {
		t.Fatalf("expected a start sneaking action, got %#v", m[0])
	}

	s = newTestSession(t, wire.Capabilities{PlayerInput: true}, game.DefaultTurnSpeed)
	s.SetControl(ControlSneak, true)
	s.SetControl(ControlSneak, false)
	m = s.out.take()
	if len(m) != 2 {
		t.Fatalf("expected two messages, got %v", m)
	}
	for i, want := range []bool{true, false} {
		in, ok := m[i].(wire.PlayerInput)
		if !ok || in.Sneak != want {
			t.Fatalf("expected player input with sneak=%v, got %#v", want, m[i])
		}
	}
}

func TestSetControlIdempotent(t *testing.T) {
	s := newTestSession(t, wire.Capabilities{}, game.DefaultTurnSpeed)
	s.SetControl(ControlSprint, true)
	s.out.take()

	s.SetControl(ControlSprint, true)
	s.SetControl(ControlForward, false)
	if m := s.out.take(); len(m) != 0 {
		t.Fatalf("expected nothing to be sent for unchanged controls, got %v", m)
	}
}

func TestJumpQueuesJump(t *testing.T) {
	s := newTestSession(t, wire.Capabilities{}, game.DefaultTurnSpeed)
	s.SetControl(ControlJump, true)
	if m := s.out.take(); len(m) != 0 {
		t.Fatalf("expected jumping to send nothing, got %v", m)
	}
	s.UpdateState(func(st *physics.State) {
		if !st.JumpQueued {
			t.Fatalf("expected a jump to be queued")
		}
	})
}

func TestInvalidControl(t *testing.T) {
	s := newTestSession(t, wire.Capabilities{}, game.DefaultTurnSpeed)
	s.SetControl(ControlForward, true)

	func() {
		defer func() {
			r := recover()
			if _, ok := r.(*oerror.Error); !ok {
				t.Fatalf("expected a panic with *oerror.Error, got %#v", r)
			}
		}()
		s.SetControl("fly", true)
	}()

	if c := s.Controls(); c != (physics.Controls{Forward: true}) {
		t.Fatalf("expected controls to be unchanged, got %+v", c)
	}
	// The session must still be usable after the panic.
	s.SetControl(ControlBack, true)
	if !s.Control(ControlBack) {
		t.Fatalf("expected back control to be set")
	}
}

func TestClearControls(t *testing.T) {
	s := newTestSession(t, wire.Capabilities{}, game.DefaultTurnSpeed)
	for _, name := range controlNames {
		s.SetControl(name, true)
	}
	s.out.take()

	s.ClearControls()
	if c := s.Controls(); c != (physics.Controls{}) {
		t.Fatalf("expected all controls to be released, got %+v", c)
	}
	m := s.out.take()
	if len(m) != 2 {
		t.Fatalf("expected stop sprinting and stop sneaking, got %v", m)
	}
	if a := m[0].(wire.EntityAction); a.Action != wire.ActionStopSprinting {
		t.Fatalf("expected stop sprinting first, got %v", a.Action)
	}
	if a := m[1].(wire.EntityAction); a.Action != wire.ActionStopSneaking {
		t.Fatalf("expected stop sneaking second, got %v", a.Action)
	}
}
