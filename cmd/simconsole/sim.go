package main

import (
	"context"
	"time"

	"github.com/conveyorsim/conveyor/world"
)

// Sim owns a world.World and serializes every interaction with it
// through one goroutine: the Run loop is the only caller of w.Step and
// the only place submitted operations execute. The world's contract is
// single-caller — Step takes no lock and must stay atomic with the
// tick's re-indexing and snapshot builds — so background ticking and
// console commands are funneled through the same loop instead of
// racing each other.
type Sim struct {
	w        *world.World
	interval time.Duration
	ops      chan simOp
	stopped  chan struct{}
}

type simOp struct {
	fn   func(*world.World)
	done chan struct{}
}

// NewSim returns a Sim driving w. interval is the wall-clock period
// between background Step calls; zero or negative disables background
// ticking, leaving the world to advance only through Do-submitted
// steps.
func NewSim(w *world.World, interval time.Duration) *Sim {
	return &Sim{
		w:        w,
		interval: interval,
		ops:      make(chan simOp),
		stopped:  make(chan struct{}),
	}
}

// Run drains the background ticker and submitted operations until ctx
// is cancelled. It must be running for Do to make progress.
func (s *Sim) Run(ctx context.Context) {
	defer close(s.stopped)
	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick:
			dt := now.Sub(last)
			last = now
			_ = s.w.Step(float64(dt.Milliseconds()))
		case op := <-s.ops:
			op.fn(s.w)
			close(op.done)
		}
	}
}

// Do runs fn on the simulation goroutine and waits for it to finish.
// It reports false if the simulation loop has already stopped and fn
// never ran.
func (s *Sim) Do(fn func(*world.World)) bool {
	op := simOp{fn: fn, done: make(chan struct{})}
	select {
	case s.ops <- op:
		<-op.done
		return true
	case <-s.stopped:
		return false
	}
}
