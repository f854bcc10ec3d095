package wire

// Action is an entity action the client reports to the server.
type Action uint8

const (
	ActionStartSneaking Action = iota
	ActionStopSneaking
	ActionStartSprinting
	ActionStopSprinting
	ActionStartElytraFlying
)

var actionNames = [...]string{
	ActionStartSneaking:     "start_sneaking",
	ActionStopSneaking:      "stop_sneaking",
	ActionStartSprinting:    "start_sprinting",
	ActionStopSprinting:     "stop_sprinting",
	ActionStartElytraFlying: "start_elytra_flying",
}

var actionCodes = [...]int32{
	ActionStartSneaking:     0,
	ActionStopSneaking:      1,
	ActionStartSprinting:    3,
	ActionStopSprinting:     4,
	ActionStartElytraFlying: 8,
}

// Key returns the string identifier of the action used by newer protocol versions.
func (a Action) Key() string {
	return actionNames[a]
}

// Code returns the numeric identifier of the action used by older protocol versions.
func (a Action) Code() int32 {
	return actionCodes[a]
}

// EntityAction reports an Action performed by the entity with EntityID. Named selects whether the
// action is encoded with its string key or its numeric code.
type EntityAction struct {
	EntityID  int64
	Action    Action
	Named     bool
	JumpBoost int32
}

func (EntityAction) Name() string { return "entity_action" }

// Identifier returns the action identifier as it is encoded on the wire: a string for named
// actions and an int32 otherwise.
func (e EntityAction) Identifier() any {
	if e.Named {
		return e.Action.Key()
	}
	return e.Action.Code()
}
