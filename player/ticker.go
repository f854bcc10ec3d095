package player

import (
	"time"

	"github.com/oomph-ac/movesync/game"
	"github.com/oomph-ac/movesync/worker"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// Scheduler turns wall clock time into a bounded amount of fixed game.Timestep ticks. Advance must
// only be called from one goroutine at a time.
type Scheduler struct {
	accumulator time.Duration
	lastFrame   atomic.Time
	catchup     int
	tick        func(now time.Time)

	started atomic.Bool
	stopped atomic.Bool
	stop    chan struct{}
}

// NewScheduler returns a Scheduler that calls tick once per drained step, running at most catchup
// steps per Advance.
func NewScheduler(catchup int, tick func(now time.Time)) *Scheduler {
	if catchup < 1 {
		catchup = 1
	}
	return &Scheduler{catchup: catchup, tick: tick, stop: make(chan struct{})}
}

// Reset sets the time of the last frame to now and clears the accumulated time.
func (s *Scheduler) Reset(now time.Time) {
	s.accumulator = 0
	s.lastFrame.Store(now)
}

// Advance adds the time passed since the previous frame to the accumulator and drains it in whole
// timesteps. It returns the amount of ticks run. If the catch-up cap is hit, whole timesteps still
// owed are dropped and only the fraction of a step is kept.
func (s *Scheduler) Advance(now time.Time) int {
	last := s.lastFrame.Load()
	s.lastFrame.Store(now)
	if last.IsZero() {
		return 0
	}
	if delta := now.Sub(last); delta > 0 {
		s.accumulator += delta
	}

	var n int
	for s.accumulator >= game.Timestep {
		if s.stopped.Load() {
			break
		}
		s.tick(now)
		s.accumulator -= game.Timestep
		n++
		if n >= s.catchup {
			s.accumulator %= game.Timestep
			break
		}
	}
	return n
}

// LastFrame returns the time passed to the most recent Advance or Reset.
func (s *Scheduler) LastFrame() time.Time {
	return s.lastFrame.Load()
}

// Start resets the scheduler and starts advancing it on a new goroutine every timestep. It returns
// false if the scheduler was started or stopped before.
func (s *Scheduler) Start(log *logrus.Logger) bool {
	if s.stopped.Load() || !s.started.CompareAndSwap(false, true) {
		return false
	}
	s.Reset(time.Now())

	worker.Go("movement scheduler", log, func() {
		t := time.NewTicker(game.Timestep)
		defer t.Stop()

		for {
			select {
			case <-s.stop:
				return
			case now := <-t.C:
				s.Advance(now)
			}
		}
	}, nil)
	return true
}

// Running returns true if the scheduler was started and not yet stopped.
func (s *Scheduler) Running() bool {
	return s.started.Load() && !s.stopped.Load()
}

// Stop stops the scheduler. Ticks not yet started are never run. Stop may be called multiple times.
func (s *Scheduler) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stop)
	}
}
