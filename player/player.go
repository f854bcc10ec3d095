package player

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesync/event"
	"github.com/oomph-ac/movesync/game"
	"github.com/oomph-ac/movesync/physics"
	"github.com/oomph-ac/movesync/settings"
	"github.com/oomph-ac/movesync/wire"
	"github.com/sirupsen/logrus"
)

// World is the view of the world a Player moves in.
type World interface {
	physics.BlockSource
	// ColumnLoaded returns true if the chunk column containing pos is loaded.
	ColumnLoaded(pos mgl64.Vec3) bool
}

// Config holds the per-session configuration of a Player.
type Config struct {
	// EntityID is the ID of the controlled entity, used in entity actions.
	EntityID int64
	Movement settings.Movement
	// Capabilities is the protocol variant of the session. It is never changed afterwards.
	Capabilities wire.Capabilities
	// Engine advances the entity every tick. A physics.Basic with the configured turn speed is used
	// if it is nil.
	Engine physics.Engine
	// Clock returns the current time. time.Now is used if it is nil.
	Clock func() time.Time
}

// Player is a single movement session: it simulates the controlled entity at a fixed rate, sends
// the resulting pose to the server and applies corrections the server sends back. All methods are
// safe to call from any goroutine.
type Player struct {
	log *logrus.Logger

	mu sync.Mutex

	world  World
	out    wire.Writer
	engine physics.Engine
	clock  func() time.Time

	conf     settings.Movement
	caps     wire.Capabilities
	entityID int64

	state    *physics.State
	controls physics.Controls
	orient   orientation

	snapshot wire.Snapshot
	// lastCamera is the last-sent orientation recorded by LastCameraAction.
	lastCamera    [2]float64
	lastCameraSet bool

	shouldUsePhysics bool
	deadTicks        int
	tick             int64

	pending   []event.Event
	bus       *event.Bus
	scheduler *Scheduler

	closed bool
}

// New creates a Player controlling the entity with the state passed. The player does not tick until
// HandleLogin is called, and does not send anything before the server positions it with
// HandleTeleport.
func New(log *logrus.Logger, w World, out wire.Writer, state *physics.State, conf Config) *Player {
	if log == nil {
		log = logrus.StandardLogger()
	}
	p := &Player{
		log:      log,
		world:    w,
		out:      out,
		engine:   conf.Engine,
		clock:    conf.Clock,
		conf:     conf.Movement,
		caps:     conf.Capabilities,
		entityID: conf.EntityID,
		state:    state,
		bus:      event.NewBus(),
	}
	if p.engine == nil {
		p.engine = physics.Basic{TurnSpeed: conf.Movement.TurnSpeed}
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	if p.conf.DeadGraceTicks <= 0 {
		p.conf.DeadGraceTicks = game.DeadGraceTicks
	}
	if p.conf.HeartbeatInterval <= 0 {
		p.conf.HeartbeatInterval = game.DefaultHeartbeatInterval
	}
	// Nothing is sent while dead until the first tick the entity is seen alive.
	p.deadTicks = p.conf.DeadGraceTicks + 1
	p.scheduler = NewScheduler(p.conf.CatchupTicks, p.tickAt)
	return p
}

// Capabilities returns the protocol variant of the session.
func (p *Player) Capabilities() wire.Capabilities {
	return p.caps
}

// Position returns the current position of the entity.
func (p *Player) Position() mgl64.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Position
}

// Orientation returns the current yaw and pitch of the entity in radians.
func (p *Player) Orientation() (yaw, pitch float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Yaw, p.state.Pitch
}

// Snapshot returns the pose last sent to the server.
func (p *Player) Snapshot() wire.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

// Tick returns the amount of simulation ticks run so far.
func (p *Player) Tick() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tick
}

// UpdateState calls f with the state of the entity while no tick is running. It is used by transports
// to apply server-side changes such as effects, health or game mode.
func (p *Player) UpdateState(f func(s *physics.State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	f(p.state)
}

// SetPhysicsEnabled controls whether the entity is simulated every tick.
func (p *Player) SetPhysicsEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conf.PhysicsEnabled = enabled
}

// PhysicsEnabled returns true if the entity is simulated every tick.
func (p *Player) PhysicsEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conf.PhysicsEnabled
}

// LastCameraAction returns how far the orientation sent to the server moved since the previous call.
// The first call, and any call before an orientation was sent, returns zero.
func (p *Player) LastCameraAction() (dYaw, dPitch float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	yaw, pitch, ok := p.orient.lastSent()
	if !ok {
		return 0, 0
	}
	if p.lastCameraSet {
		dYaw, dPitch = yaw-p.lastCamera[0], pitch-p.lastCamera[1]
	}
	p.lastCamera, p.lastCameraSet = [2]float64{yaw, pitch}, true
	return dYaw, dPitch
}

// LastFrameTime returns the time of the most recent scheduler frame.
func (p *Player) LastFrameTime() time.Time {
	return p.scheduler.LastFrame()
}

// Subscribe registers f to be called with every event with the ID passed, or every event if id is
// 0. Events are delivered after the tick that produced them, in the order subscribers registered.
func (p *Player) Subscribe(id byte, f func(event.Event)) event.Subscription {
	return p.bus.Subscribe(id, f)
}

// Unsubscribe removes a subscriber added with Subscribe.
func (p *Player) Unsubscribe(s event.Subscription) bool {
	return p.bus.Unsubscribe(s)
}

// WaitForTicks returns a Task completed after n more simulation ticks. It is completed at once if n
// is not positive.
func (p *Player) WaitForTicks(n int) *Task {
	if n <= 0 {
		return doneTask(TaskCompleted)
	}
	t := newTask()

	var (
		mu        sync.Mutex
		remaining = n
		sub       event.Subscription
	)
	// The subscription is registered under mu so that a tick delivered before Subscribe returns
	// cannot read sub before it is set.
	mu.Lock()
	sub = p.bus.Subscribe(event.EventIDPhysicsTick, func(event.Event) {
		mu.Lock()
		defer mu.Unlock()

		remaining--
		if remaining == 0 {
			p.bus.Unsubscribe(sub)
			t.resolve(TaskCompleted)
		}
	})
	mu.Unlock()
	return t
}

// Close stops the session. No tick runs after Close returns. Close may be called multiple times.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	p.scheduler.Stop()
	p.orient.supersede()
	p.log.Debugf("movement session for entity %d closed", p.entityID)
}

// tickAt runs a single simulation tick followed by its reconciliation pass, then delivers the events
// it produced.
func (p *Player) tickAt(now time.Time) {
	p.bus.Publish(p.runTick(now)...)
}

func (p *Player) runTick(now time.Time) []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || !p.world.ColumnLoaded(p.state.Position) {
		return nil
	}
	if p.conf.PhysicsEnabled && p.shouldUsePhysics {
		p.engine.Simulate(p.state, p.controls, p.world)
		p.tick++
		p.queue(event.PhysicsTickEvent{NopEvent: event.Stamp(now), Tick: p.tick})
	}
	if p.shouldUsePhysics {
		p.reconcile(now)
	}
	return p.takePending()
}

// queue queues an event to be delivered once p.mu is released. p.mu must be held.
func (p *Player) queue(ev event.Event) {
	p.pending = append(p.pending, ev)
}

// takePending returns the queued events and clears the queue. p.mu must be held.
func (p *Player) takePending() []event.Event {
	events := p.pending
	p.pending = nil
	return events
}

// write writes m to the server, logging any error. It returns true if the write succeeded.
func (p *Player) write(m wire.Message) bool {
	if err := p.out.WriteMessage(m); err != nil {
		p.log.Errorf("failed writing %s for entity %d: %v", m.Name(), p.entityID, err)
		return false
	}
	return true
}
