package wire

import "testing"

func TestEntityActionIdentifier(t *testing.T) {
	tests := []struct {
		action Action
		key    string
		code   int32
	}{
		{ActionStartSneaking, "start_sneaking", 0},
		{ActionStopSneaking, "stop_sneaking", 1},
		{ActionStartSprinting, "start_sprinting", 3},
		{ActionStopSprinting, "stop_sprinting", 4},
		{ActionStartElytraFlying, "start_elytra_flying", 8},
	}
	for _, tt := range tests {
		named := EntityAction{Action: tt.action, Named: true}
		if got := named.Identifier(); got != tt.key {
			t.Errorf("named identifier of %d = %v, want %q", tt.action, got, tt.key)
		}
		numeric := EntityAction{Action: tt.action}
		if got := numeric.Identifier(); got != tt.code {
			t.Errorf("numeric identifier of %d = %v, want %d", tt.action, got, tt.code)
		}
	}
}
