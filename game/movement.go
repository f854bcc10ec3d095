package game

const (
	DefaultJumpHeight       = 0.42
	DefaultAirFriction      = 0.91
	DefaultBlockFriction    = 0.6
	NormalGravityMultiplier = 0.98
	NormalGravity           = 0.08
	SprintJumpBoost         = 0.2

	DefaultMovementSpeed = 0.1
	DefaultAirSpeed      = 0.02
	SprintMultiplier     = 1.3
	MaxSneakImpulse      = 0.3
	MaxNormalizedImpulse = 0.70710678118 // 1/sqrt(2)

	PlayerWidth                = 0.6
	PlayerHeight               = 1.8
	DefaultPlayerHeightOffset  = 1.62
	SneakingPlayerHeightOffset = 1.27

	JumpDelayTicks = 10
)
