package transport

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesync/physics"
	"github.com/oomph-ac/movesync/player"
	"github.com/oomph-ac/movesync/settings"
	"github.com/oomph-ac/movesync/wire"
	oworld "github.com/oomph-ac/movesync/world"
	"github.com/sandertv/gophertunnel/minecraft"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
	"github.com/sandertv/gophertunnel/minecraft/protocol/packet"
	"github.com/sirupsen/logrus"
)

type mockConn struct {
	mu      sync.Mutex
	packets []packet.Packet
}

func (c *mockConn) WritePacket(pk packet.Packet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.packets = append(c.packets, pk)
	return nil
}

func (c *mockConn) take() []packet.Packet {
	c.mu.Lock()
	defer c.mu.Unlock()
	pks := c.packets
	c.packets = nil
	return pks
}

const runtimeID = 5

func newBedrock(t *testing.T, movementType int32) (*Bedrock, *mockConn, *player.Player, *oworld.World) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	conn := &mockConn{}
	w := oworld.New(log)
	data := minecraft.GameData{EntityRuntimeID: runtimeID}
	data.PlayerMovementSettings.MovementType = movementType

	b := NewBedrock(log, conn, data, w)
	p := player.New(log, w, b, physics.NewState(mgl64.Vec3{}), player.Config{
		EntityID:     runtimeID,
		Movement:     settings.DefaultSettings().Movement,
		Capabilities: b.Capabilities(),
		Clock:        func() time.Time { return time.Unix(0, 0) },
	})
	b.Attach(p)
	t.Cleanup(p.Close)
	return b, conn, p, w
}

func TestCapabilities(t *testing.T) {
	b, _, _, _ := newBedrock(t, protocol.PlayerMovementModeClient)
	if c := b.Capabilities(); c.HeartbeatEveryTick || c.PlayerInput {
		t.Fatalf("expected client authoritative movement to send only on change, got %+v", c)
	}
	b, _, _, _ = newBedrock(t, protocol.PlayerMovementModeServerWithRewind)
	if c := b.Capabilities(); !c.HeartbeatEveryTick || !c.PlayerInput {
		t.Fatalf("expected server authoritative movement to send every tick, got %+v", c)
	}
}

func TestMovePlayerEncoding(t *testing.T) {
	b, conn, _, _ := newBedrock(t, protocol.PlayerMovementModeClient)

	if err := b.WriteMessage(wire.PositionOrientationUpdate{X: 1, Y: 64, Z: 3, Yaw: 90, Pitch: -10, OnGround: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.WriteMessage(wire.OrientationUpdate{Yaw: 45}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pks := conn.take()
	if len(pks) != 2 {
		t.Fatalf("expected two packets, got %d", len(pks))
	}
	first, ok := pks[0].(*packet.MovePlayer)
	if !ok {
		t.Fatalf("expected a MovePlayer packet, got %T", pks[0])
	}
	if first.Position.Sub(mgl32.Vec3{1, 65.62, 3}).Len() > 1e-4 || first.Yaw != 90 || first.Pitch != -10 || !first.OnGround {
		t.Fatalf("unexpected packet %+v", first)
	}
	if first.EntityRuntimeID != runtimeID || first.Mode != packet.MoveModeNormal {
		t.Fatalf("unexpected packet header %+v", first)
	}

	second := pks[1].(*packet.MovePlayer)
	if second.Position != first.Position || second.Yaw != 45 || second.Pitch != 0 || second.OnGround {
		t.Fatalf("expected the orientation update to keep the position, got %+v", second)
	}
	if second.Tick != first.Tick+1 {
		t.Fatalf("expected ticks to increase, got %d and %d", first.Tick, second.Tick)
	}
}

func TestPlayerActionEncoding(t *testing.T) {
	b, conn, _, _ := newBedrock(t, protocol.PlayerMovementModeClient)

	if err := b.WriteMessage(wire.EntityAction{EntityID: runtimeID, Action: wire.ActionStartSprinting}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pks := conn.take()
	if len(pks) != 1 {
		t.Fatalf("expected one packet, got %d", len(pks))
	}
	pk, ok := pks[0].(*packet.PlayerAction)
	if !ok || pk.ActionType != protocol.PlayerActionStartSprint || pk.EntityRuntimeID != runtimeID {
		t.Fatalf("expected a start sprint action, got %#v", pks[0])
	}

	if err := b.WriteMessage(wire.TeleportConfirm{ID: 1}); err == nil {
		t.Fatalf("expected teleport confirmations to be refused")
	}
}

func TestAuthInputFlags(t *testing.T) {
	b, conn, _, _ := newBedrock(t, protocol.PlayerMovementModeServer)

	if err := b.WriteMessage(wire.PlayerInput{Sneak: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.WriteMessage(wire.EntityAction{Action: wire.ActionStartSprinting}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pks := conn.take(); len(pks) != 0 {
		t.Fatalf("expected input to be held until the next tick, got %v", pks)
	}

	_ = b.WriteMessage(wire.Heartbeat{})
	_ = b.WriteMessage(wire.Heartbeat{})
	pks := conn.take()
	if len(pks) != 2 {
		t.Fatalf("expected two input packets, got %d", len(pks))
	}
	first, ok := pks[0].(*packet.PlayerAuthInput)
	if !ok {
		t.Fatalf("expected a PlayerAuthInput packet, got %T", pks[0])
	}
	for _, flag := range []int{packet.InputFlagStartSneaking, packet.InputFlagSneaking, packet.InputFlagStartSprinting, packet.InputFlagSprinting} {
		if !first.InputData.Load(flag) {
			t.Fatalf("expected input flag %d to be set", flag)
		}
	}
	second := pks[1].(*packet.PlayerAuthInput)
	if second.InputData.Load(packet.InputFlagStartSneaking) || second.InputData.Load(packet.InputFlagStartSprinting) {
		t.Fatalf("expected one-shot flags to be cleared")
	}
	if !second.InputData.Load(packet.InputFlagSneaking) || !second.InputData.Load(packet.InputFlagSprinting) {
		t.Fatalf("expected held flags to remain set")
	}
}

func TestHandleMovePlayer(t *testing.T) {
	b, conn, p, _ := newBedrock(t, protocol.PlayerMovementModeClient)

	_ = b.HandlePacket(&packet.MovePlayer{EntityRuntimeID: runtimeID + 1, Position: mgl32.Vec3{9, 9, 9}})
	if pos := p.Position(); pos != (mgl64.Vec3{}) {
		t.Fatalf("expected packets for other entities to be ignored, got %v", pos)
	}

	_ = b.HandlePacket(&packet.MovePlayer{EntityRuntimeID: runtimeID, Position: mgl32.Vec3{2, 11.62, 4}, Yaw: 180, Mode: packet.MoveModeTeleport})
	pos := p.Position()
	if pos.Sub(mgl64.Vec3{2, 10, 4}).Len() > 1e-4 {
		t.Fatalf("expected the player to be teleported to feet position, got %v", pos)
	}
	pks := conn.take()
	if len(pks) != 1 {
		t.Fatalf("expected the correction to be echoed, got %d packets", len(pks))
	}
	echo := pks[0].(*packet.MovePlayer)
	if echo.Position.Sub(mgl32.Vec3{2, 11.62, 4}).Len() > 1e-4 || echo.Yaw != 180 {
		t.Fatalf("unexpected echo %+v", echo)
	}
}

func TestHandleStatePackets(t *testing.T) {
	b, _, p, _ := newBedrock(t, protocol.PlayerMovementModeClient)

	_ = b.HandlePacket(&packet.MobEffect{EntityRuntimeID: runtimeID, Operation: packet.MobEffectAdd, EffectType: packet.EffectLevitation, Amplifier: 2})
	_ = b.HandlePacket(&packet.SetActorMotion{EntityRuntimeID: runtimeID, Velocity: mgl32.Vec3{0, 0.5, 0}})
	_ = b.HandlePacket(&packet.SetPlayerGameType{GameType: packet.GameTypeCreative})
	_ = b.HandlePacket(&packet.SetHealth{Health: 0})

	p.UpdateState(func(s *physics.State) {
		if amp, ok := s.Effect(packet.EffectLevitation); !ok || amp != 2 {
			t.Errorf("expected levitation with amplifier 2, got %v %v", amp, ok)
		}
		if s.Velocity != (mgl64.Vec3{0, 0.5, 0}) {
			t.Errorf("expected velocity to be set, got %v", s.Velocity)
		}
		if !s.Creative {
			t.Errorf("expected creative mode")
		}
		if s.Alive {
			t.Errorf("expected the player to be dead")
		}
	})

	_ = b.HandlePacket(&packet.MobEffect{EntityRuntimeID: runtimeID, Operation: packet.MobEffectRemove, EffectType: packet.EffectLevitation})
	p.UpdateState(func(s *physics.State) {
		if _, ok := s.Effect(packet.EffectLevitation); ok {
			t.Errorf("expected levitation to be removed")
		}
	})
}

func TestHandleChunks(t *testing.T) {
	b, _, _, w := newBedrock(t, protocol.PlayerMovementModeClient)

	_ = b.HandlePacket(&packet.LevelChunk{Position: protocol.ChunkPos{1, 2}, SubChunkCount: protocol.SubChunkRequestModeLimitless})
	if !w.ChunkLoaded(protocol.ChunkPos{1, 2}) {
		t.Fatalf("expected chunk to be loaded")
	}

	_ = b.HandlePacket(&packet.NetworkChunkPublisherUpdate{Position: protocol.BlockPos{160, 64, 160}, Radius: 16})
	if w.ChunkLoaded(protocol.ChunkPos{1, 2}) {
		t.Fatalf("expected chunk outside the publisher radius to be removed")
	}

	_ = b.HandlePacket(&packet.LevelChunk{Position: protocol.ChunkPos{0, 0}, SubChunkCount: protocol.SubChunkRequestModeLimitless})
	_ = b.HandlePacket(&packet.ChangeDimension{})
	if w.ChunkLoaded(protocol.ChunkPos{0, 0}) {
		t.Fatalf("expected chunks to be purged on dimension change")
	}
}

func TestNetworkStackLatency(t *testing.T) {
	b, conn, _, _ := newBedrock(t, protocol.PlayerMovementModeClient)

	_ = b.HandlePacket(&packet.NetworkStackLatency{Timestamp: 10})
	if pks := conn.take(); len(pks) != 0 {
		t.Fatalf("expected no response when none is needed, got %v", pks)
	}
	_ = b.HandlePacket(&packet.NetworkStackLatency{Timestamp: 10, NeedsResponse: true})
	pks := conn.take()
	if len(pks) != 1 {
		t.Fatalf("expected a response, got %d packets", len(pks))
	}
	if pk := pks[0].(*packet.NetworkStackLatency); pk.Timestamp != 10 || pk.NeedsResponse {
		t.Fatalf("unexpected response %+v", pk)
	}
}
