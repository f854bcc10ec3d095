package player

import (
	"math"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/movesync/game"
	"github.com/oomph-ac/movesync/utils"
	"github.com/tanema/gween"
)

// LookOpts holds the options of a look request.
type LookOpts struct {
	// Force applies the orientation to the server at once instead of turning towards it.
	Force bool
	// YawSpeed and PitchSpeed override the turn rate of the engine in radians per second. Zero
	// keeps the engine's rate.
	YawSpeed, PitchSpeed float64
	// Easing turns along a trapezoid speed profile instead of at a constant rate.
	Easing bool
}

// orientation is the orientation last sent to the server and the state of the look request
// converging it towards the orientation of the entity.
type orientation struct {
	yaw, pitch float64
	// set is false until an orientation was sent or forced. An unset orientation counts as zero.
	set bool

	yawOverride, pitchOverride float64

	easing *trajectory
	task   *Task
}

// lastSent returns the last-sent orientation and whether it was set.
func (o *orientation) lastSent() (yaw, pitch float64, ok bool) {
	return o.yaw, o.pitch, o.set
}

func (o *orientation) setLastSent(yaw, pitch float64) {
	o.yaw, o.pitch, o.set = yaw, pitch, true
}

// clear drops the speed overrides and the easing trajectory.
func (o *orientation) clear() {
	o.yawOverride, o.pitchOverride = 0, 0
	o.easing = nil
}

// supersede resolves the pending look request, if any, as superseded and clears its state.
func (o *orientation) supersede() {
	if o.task != nil {
		o.task.resolve(TaskSuperseded)
		o.task = nil
	}
	o.clear()
}

// complete resolves the pending look request, if any, as completed and clears its state.
func (o *orientation) complete() {
	if o.task != nil {
		o.task.resolve(TaskCompleted)
		o.task = nil
	}
	o.clear()
}

// trajectory is an eased turn from a start to a target orientation over a fixed amount of ticks.
type trajectory struct {
	startYaw, startPitch   float64
	targetYaw, targetPitch float64

	elapsed, duration int
	progress          *gween.Tween
	warned            bool
}

func newTrajectory(startYaw, startPitch, targetYaw, targetPitch float64, duration int) *trajectory {
	duration = max(duration, 1)
	return &trajectory{
		startYaw:    startYaw,
		startPitch:  startPitch,
		targetYaw:   targetYaw,
		targetPitch: targetPitch,
		duration:    duration,
		progress:    gween.New(0, 1, float32(duration), game.TrapezoidTween),
	}
}

// advance moves the trajectory one tick forward and returns the orientation it should be at.
func (t *trajectory) advance() (yaw, pitch float64) {
	t.elapsed++
	progress, _ := t.progress.Set(float32(t.elapsed))

	yaw = t.startYaw + game.DeltaYaw(t.targetYaw, t.startYaw)*float64(progress)
	pitch = t.startPitch + (t.targetPitch-t.startPitch)*float64(progress)
	return yaw, pitch
}

// overrun returns true if the trajectory ran longer than expected.
func (t *trajectory) overrun() bool {
	return float64(t.elapsed) > float64(t.duration)*game.EasingOverrunFactor
}

// Look turns the entity towards the yaw and pitch passed, in radians. The turn is applied to the
// entity at once and sent to the server over the following ticks at a limited rate. The Task
// returned completes once the orientation sent matches the entity, or is superseded by the next
// look request.
func (p *Player) Look(yaw, pitch float64, opts LookOpts) *Task {
	p.mu.Lock()
	defer p.mu.Unlock()

	o := &p.orient
	o.supersede()

	yawChange := game.Quantize(yaw-p.state.Yaw, game.LookStep)
	pitchChange := game.Quantize(pitch-p.state.Pitch, game.LookStep)
	if yawChange == 0 && pitchChange == 0 {
		return doneTask(TaskCompleted)
	}
	p.state.Yaw += yawChange
	p.state.Pitch += pitchChange

	if opts.Force {
		o.setLastSent(yaw, pitch)
		return doneTask(TaskCompleted)
	}

	o.yawOverride, o.pitchOverride = max(opts.YawSpeed, 0), max(opts.PitchSpeed, 0)
	if opts.Easing {
		duration := max(
			game.EasedDurationTicks(yawChange, p.yawSpeed()),
			game.EasedDurationTicks(pitchChange, p.pitchSpeed()),
		)
		// An unset orientation counts as zero.
		o.easing = newTrajectory(o.yaw, o.pitch, p.state.Yaw, p.state.Pitch, duration)
	}
	o.task = newTask()
	return o.task
}

// LookAt turns the eyes of the entity towards the point passed. See Look.
func (p *Player) LookAt(point mgl64.Vec3, opts LookOpts) *Task {
	p.mu.Lock()
	eye := p.state.EyePosition(p.controls.Sneak)
	p.mu.Unlock()

	yaw, pitch := game.YawPitchTowards(point.Sub(eye))
	return p.Look(yaw, pitch, opts)
}

// yawSpeed returns the yaw turn rate of the current look request. p.mu must be held.
func (p *Player) yawSpeed() float64 {
	if p.orient.yawOverride > 0 {
		return p.orient.yawOverride
	}
	return p.engine.YawSpeed()
}

// pitchSpeed returns the pitch turn rate of the current look request. p.mu must be held.
func (p *Player) pitchSpeed() float64 {
	if p.orient.pitchOverride > 0 {
		return p.orient.pitchOverride
	}
	return p.engine.PitchSpeed()
}

// stepOrientation moves the last-sent orientation one tick towards the orientation of the entity,
// never further than the turn rate allows. p.mu must be held.
func (p *Player) stepOrientation() {
	o := &p.orient

	var dYaw, dPitch float64
	if e := o.easing; e != nil {
		yaw, pitch := e.advance()
		dYaw = game.DeltaYaw(yaw, o.yaw)
		dPitch = pitch - o.pitch
		if e.overrun() && !e.warned {
			e.warned = true
			p.warnOverrun(e)
		}
	} else {
		dYaw = game.DeltaYaw(p.state.Yaw, o.yaw)
		dPitch = p.state.Pitch - o.pitch
	}

	maxYaw := game.TimestepSeconds * p.yawSpeed()
	maxPitch := game.TimestepSeconds * p.pitchSpeed()
	o.setLastSent(
		o.yaw+game.ClampFloat(dYaw, -maxYaw, maxYaw),
		o.pitch+game.ClampFloat(dPitch, -maxPitch, maxPitch),
	)
}

// checkConverged completes the pending look request once the last-sent orientation matches the
// entity. p.mu must be held.
func (p *Player) checkConverged() {
	o := &p.orient
	if o.task == nil {
		return
	}
	if math.Abs(game.DeltaYaw(p.state.Yaw, o.yaw)) < game.LookEpsilon && math.Abs(p.state.Pitch-o.pitch) < game.LookEpsilon {
		o.complete()
	}
}

func (p *Player) warnOverrun(e *trajectory) {
	fields := orderedmap.NewOrderedMap[string, any]()
	fields.Set("t", float64(e.elapsed)/float64(e.duration))
	fields.Set("elapsed", e.elapsed)
	fields.Set("duration", e.duration)
	fields.Set("startYaw", e.startYaw)
	fields.Set("targetYaw", e.targetYaw)
	fields.Set("lastSentYaw", p.orient.yaw)
	fields.Set("startPitch", e.startPitch)
	fields.Set("targetPitch", e.targetPitch)
	fields.Set("lastSentPitch", p.orient.pitch)
	p.log.Warnf("eased look for entity %d has not converged: %s", p.entityID, utils.OrderedMapToString(fields))
}
