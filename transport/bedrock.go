package transport

import (
	"github.com/df-mc/dragonfly/server/world"
	"github.com/df-mc/dragonfly/server/world/chunk"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/movesync/game"
	"github.com/oomph-ac/movesync/oerror"
	"github.com/oomph-ac/movesync/physics"
	"github.com/oomph-ac/movesync/player"
	"github.com/oomph-ac/movesync/utils"
	"github.com/oomph-ac/movesync/wire"
	oworld "github.com/oomph-ac/movesync/world"
	"github.com/sandertv/gophertunnel/minecraft"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
	"github.com/sandertv/gophertunnel/minecraft/protocol/packet"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// Conn is a connection to a Bedrock server. *minecraft.Conn implements it.
type Conn interface {
	WritePacket(pk packet.Packet) error
}

// Bedrock connects a player.Player to a Bedrock Edition server. It encodes the movement messages of
// the player into packets, and applies the packets the server sends to the player and its world.
type Bedrock struct {
	log  *logrus.Logger
	conn Conn
	w    *oworld.World
	p    *player.Player

	runtimeID uint64
	authInput bool

	mu deadlock.Mutex

	tick       uint64
	position   mgl32.Vec3
	yaw, pitch float32
	onGround   bool

	sneaking, sprinting bool
	// inputFlags holds the one-shot input flags written with the next PlayerAuthInput.
	inputFlags []int
}

// NewBedrock creates a Bedrock transport writing to conn. The game data is the data the server sent
// when the connection was established. Attach must be called before packets are handled.
func NewBedrock(log *logrus.Logger, conn Conn, data minecraft.GameData, w *oworld.World) *Bedrock {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Bedrock{
		log:       log,
		conn:      conn,
		w:         w,
		runtimeID: data.EntityRuntimeID,
		authInput: data.PlayerMovementSettings.MovementType != protocol.PlayerMovementModeClient,
		position:  data.PlayerPosition,
		yaw:       data.Yaw,
		pitch:     data.Pitch,
	}
}

// Capabilities returns the protocol variant of the server. Servers with server authoritative movement
// expect an input packet every tick, which also carries the sneak state.
func (b *Bedrock) Capabilities() wire.Capabilities {
	return wire.Capabilities{
		HeartbeatEveryTick: b.authInput,
		PlayerInput:        b.authInput,
	}
}

// Attach sets the player packets from the server are applied to.
func (b *Bedrock) Attach(p *player.Player) {
	b.p = p
}

// WriteMessage encodes m into a packet and writes it to the server.
func (b *Bedrock) WriteMessage(m wire.Message) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch m := m.(type) {
	case wire.PositionUpdate:
		b.setPosition(m.X, m.Y, m.Z)
		b.onGround = m.OnGround
	case wire.OrientationUpdate:
		b.yaw, b.pitch = m.Yaw, m.Pitch
		b.onGround = m.OnGround
	case wire.PositionOrientationUpdate:
		b.setPosition(m.X, m.Y, m.Z)
		b.yaw, b.pitch = m.Yaw, m.Pitch
		b.onGround = m.OnGround
	case wire.Heartbeat:
		b.onGround = m.OnGround
	case wire.PlayerInput:
		if m.Sneak == b.sneaking {
			return nil
		}
		b.sneaking = m.Sneak
		if m.Sneak {
			b.inputFlags = append(b.inputFlags, packet.InputFlagStartSneaking)
		} else {
			b.inputFlags = append(b.inputFlags, packet.InputFlagStopSneaking)
		}
		return nil
	case wire.EntityAction:
		return b.writeAction(m.Action)
	case wire.TeleportConfirm:
		return oerror.New("%s is not supported by bedrock servers", m.Name())
	default:
		return oerror.New("unable to encode message %s", m.Name())
	}
	return b.writeMovement()
}

// setPosition sets the position written in movement packets, which is at eye height.
func (b *Bedrock) setPosition(x, y, z float64) {
	b.position = mgl32.Vec3{float32(x), float32(y + game.DefaultPlayerHeightOffset), float32(z)}
}

// writeMovement writes the current pose. b.mu must be held.
func (b *Bedrock) writeMovement() error {
	b.tick++
	if !b.authInput {
		return b.conn.WritePacket(&packet.MovePlayer{
			EntityRuntimeID: b.runtimeID,
			Position:        b.position,
			Pitch:           b.pitch,
			Yaw:             b.yaw,
			HeadYaw:         b.yaw,
			Mode:            packet.MoveModeNormal,
			OnGround:        b.onGround,
			Tick:            b.tick,
		})
	}

	input := protocol.NewBitset(packet.PlayerAuthInputBitsetSize)
	for _, flag := range b.inputFlags {
		input.Set(flag)
	}
	if b.sneaking {
		input.Set(packet.InputFlagSneaking)
	}
	if b.sprinting {
		input.Set(packet.InputFlagSprinting)
	}
	if err := b.conn.WritePacket(&packet.PlayerAuthInput{
		Pitch:     b.pitch,
		Yaw:       b.yaw,
		HeadYaw:   b.yaw,
		Position:  b.position,
		InputData: input,
		InputMode: packet.InputModeMouse,
		Tick:      b.tick,
	}); err != nil {
		return err
	}
	b.inputFlags = b.inputFlags[:0]
	return nil
}

// writeAction writes an entity action. Servers with server authoritative movement receive it as an
// input flag with the next PlayerAuthInput. b.mu must be held.
func (b *Bedrock) writeAction(a wire.Action) error {
	switch a {
	case wire.ActionStartSprinting, wire.ActionStopSprinting:
		b.sprinting = a == wire.ActionStartSprinting
	case wire.ActionStartSneaking, wire.ActionStopSneaking:
		b.sneaking = a == wire.ActionStartSneaking
	}
	if b.authInput {
		b.inputFlags = append(b.inputFlags, actionInputFlags[a])
		return nil
	}
	return b.conn.WritePacket(&packet.PlayerAction{
		EntityRuntimeID: b.runtimeID,
		ActionType:      playerActions[a],
	})
}

var (
	actionInputFlags = [...]int{
		wire.ActionStartSneaking:     packet.InputFlagStartSneaking,
		wire.ActionStopSneaking:      packet.InputFlagStopSneaking,
		wire.ActionStartSprinting:    packet.InputFlagStartSprinting,
		wire.ActionStopSprinting:     packet.InputFlagStopSprinting,
		wire.ActionStartElytraFlying: packet.InputFlagStartGliding,
	}
	playerActions = [...]int32{
		wire.ActionStartSneaking:     protocol.PlayerActionStartSneak,
		wire.ActionStopSneaking:      protocol.PlayerActionStopSneak,
		wire.ActionStartSprinting:    protocol.PlayerActionStartSprint,
		wire.ActionStopSprinting:     protocol.PlayerActionStopSprint,
		wire.ActionStartElytraFlying: protocol.PlayerActionStartGlide,
	}
)

// HandlePacket applies a packet sent by the server. Packets that do not concern the movement of the
// player are ignored.
func (b *Bedrock) HandlePacket(pk packet.Packet) error {
	switch pk := pk.(type) {
	case *packet.MovePlayer:
		if pk.EntityRuntimeID != b.runtimeID {
			return nil
		}
		if pk.Mode == packet.MoveModeRotation {
			b.p.HandleRotation(float64(pk.Yaw), float64(pk.Pitch))
			return nil
		}
		b.p.HandleTeleport(wire.AuthoritativePose{
			X:     float64(pk.Position[0]),
			Y:     float64(pk.Position[1]) - game.DefaultPlayerHeightOffset,
			Z:     float64(pk.Position[2]),
			Yaw:   float64(pk.Yaw),
			Pitch: float64(pk.Pitch),
		})
	case *packet.SetActorMotion:
		if pk.EntityRuntimeID != b.runtimeID {
			return nil
		}
		b.p.UpdateState(func(s *physics.State) {
			s.Velocity = utils.Vec32To64(pk.Velocity)
		})
	case *packet.MobEffect:
		if pk.EntityRuntimeID != b.runtimeID {
			return nil
		}
		b.p.UpdateState(func(s *physics.State) {
			switch pk.Operation {
			case packet.MobEffectAdd, packet.MobEffectModify:
				s.SetEffect(pk.EffectType, pk.Amplifier)
			case packet.MobEffectRemove:
				s.RemoveEffect(pk.EffectType)
			}
		})
	case *packet.SetHealth:
		b.p.UpdateState(func(s *physics.State) {
			s.Alive = pk.Health > 0
		})
	case *packet.SetPlayerGameType:
		b.p.UpdateState(func(s *physics.State) {
			s.Creative = pk.GameType == packet.GameTypeCreative
		})
	case *packet.ChangeDimension:
		b.w.PurgeChunks()
		b.p.HandleRespawn()
	case *packet.LevelChunk:
		return b.handleLevelChunk(pk)
	case *packet.UpdateBlock:
		bl, ok := world.BlockByRuntimeID(pk.NewBlockRuntimeID)
		if !ok {
			b.log.Errorf("unable to find block with runtime ID %v", pk.NewBlockRuntimeID)
			return nil
		}
		b.w.SetBlock(utils.BlockToCubePos(pk.Position), bl)
	case *packet.NetworkChunkPublisherUpdate:
		b.w.CleanChunks(int32(pk.Radius>>4), protocol.ChunkPos{pk.Position.X() >> 4, pk.Position.Z() >> 4})
	case *packet.NetworkStackLatency:
		if !pk.NeedsResponse {
			return nil
		}
		return b.conn.WritePacket(&packet.NetworkStackLatency{Timestamp: pk.Timestamp})
	}
	return nil
}

// handleLevelChunk adds the chunk sent to the world. Chunks whose sub chunks are requested separately
// are added without block data.
func (b *Bedrock) handleLevelChunk(pk *packet.LevelChunk) error {
	if pk.CacheEnabled || pk.SubChunkCount == protocol.SubChunkRequestModeLimited || pk.SubChunkCount == protocol.SubChunkRequestModeLimitless {
		b.w.AddChunk(pk.Position, nil)
		return nil
	}

	c, err := chunk.NetworkDecode(oworld.AirRuntimeID, pk.RawPayload, int(pk.SubChunkCount), world.Overworld.Range())
	if err != nil {
		return oerror.New("unable to decode chunk at %v: %v", pk.Position, err)
	}
	c.Compact()
	b.w.AddChunk(pk.Position, c)
	return nil
}
