package wire

// Capabilities is the protocol variant negotiated for a session. It is resolved once when the
// session starts and consulted by every component afterwards.
type Capabilities struct {
	// HeartbeatEveryTick requires a message to be sent every tick, even if nothing changed.
	HeartbeatEveryTick bool `toml:"heartbeat_every_tick"`
	// TeleportConfirm requires every AuthoritativePose carrying an ID to be acknowledged.
	TeleportConfirm bool `toml:"teleport_confirm"`
	// NamedActions encodes entity actions using string keys instead of numeric codes.
	NamedActions bool `toml:"named_actions"`
	// PlayerInput sends sneak changes through PlayerInput instead of EntityAction.
	PlayerInput bool `toml:"player_input"`
}
