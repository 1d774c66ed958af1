package world

import "math"

// TickMS is the fixed simulation step, 60 Hz.
const TickMS float64 = 1000.0 / 60.0

// StepEpsilon is the fractional tolerance the accumulator uses when
// deciding how many whole ticks fit in its current balance.
const StepEpsilon float64 = 1e-7

// Step converts dtMs of wall-clock time into zero or more whole ticks.
// The caller decides when and how much time has passed; the World
// decides how many ticks that represents. The same total unpaused time
// yields the same tick count no matter how the deltas are chunked.
//
// Step takes no lock: a tick's dispatch, re-indexing, and snapshot
// reads must stay atomic, so Step — like every mutation — must come
// from the single goroutine that owns the World. Callers that also
// tick from a background loop (cmd/simconsole) funnel all access
// through that one loop.
//
// Step returns an error only if an Update panics during this call or
// panicked during an earlier one (either poisons the world), or if Step
// is called re-entrantly from inside an Update.
func (w *World) Step(dtMs float64) (err error) {
	if w.poisoned {
		return errInvariantViolation("world is poisoned by a prior failed update")
	}
	if w.inStep {
		return errInvariantViolation("Step called re-entrantly")
	}
	if w.paused {
		return nil
	}
	if math.IsNaN(dtMs) || math.IsInf(dtMs, 0) || dtMs <= 0 {
		return nil
	}

	w.accumulator += dtMs
	n := int64(math.Floor((w.accumulator + StepEpsilon) / TickMS))
	if n <= 0 {
		return nil
	}
	w.accumulator -= float64(n) * TickMS
	if w.accumulator > -StepEpsilon && w.accumulator < 0 {
		w.accumulator = 0
	}

	w.inStep = true
	defer func() {
		w.inStep = false
		if r := recover(); r != nil {
			w.poisoned = true
			w.log.Error("entity update panicked, poisoning world", "tick", w.tick, "panic", r)
			err = errInvariantViolation("entity update panicked; world is poisoned")
		}
	}()

	for i := int64(0); i < n; i++ {
		w.runOneTick()
	}
	return nil
}

func (w *World) runOneTick() {
	w.scheduler.runTick(w)
	w.tickSamples++
}

// ObservedTickRate reports the number of ticks run by Step across the
// world's lifetime, useful for driver instrumentation.
func (w *World) ObservedTickRate() uint64 {
	return w.tickSamples
}
