package world

import "sort"

// scheduler orders live entities by (phase rank, insertion order) and
// walks them once per tick: a deterministic order rebuilt lazily
// behind a dirty flag. Every Update is dispatched synchronously on the
// caller's goroutine; an update never yields, suspends, or blocks.
type scheduler struct {
	order []uint64
	dirty bool
}

func newScheduler() *scheduler {
	return &scheduler{dirty: true}
}

func (s *scheduler) markDirty() {
	s.dirty = true
}

// rebuildOrder recomputes s.order from w's live entities if dirty.
func (s *scheduler) rebuildOrder(w *World) {
	if !s.dirty {
		return
	}
	order := make([]uint64, 0, len(w.entities))
	for id := range w.entities {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := w.entities[order[i]], w.entities[order[j]]
		ra, rb := phaseRank(w.phaseOf(a.Kind)), phaseRank(w.phaseOf(b.Kind))
		if ra != rb {
			return ra < rb
		}
		return a.insertionOrder < b.insertionOrder
	})
	s.order = order
	s.dirty = false
}

// runTick executes exactly one tick against w: build the snapshot,
// rebuild the traversal order if needed, dispatch Update to every
// still-live entity in order, re-index any that moved, and advance the
// world's counters.
func (s *scheduler) runTick(w *World) {
	snapshot := newSnapshot(w.entities, w.byID, w.spatial, w.tick)
	s.rebuildOrder(w)
	ctx := newTickContext(w, snapshot, w.tick)

	for _, id := range s.order {
		e, ok := w.entities[id]
		if !ok {
			continue
		}
		def, ok := w.registry.Get(e.Kind)
		if !ok || def.Update == nil {
			e.localTicks++
			continue
		}
		beforePos := e.Pos
		e.localTicks++
		def.Update(e, TickMS, ctx)
		if e.Pos != beforePos {
			w.spatial.Attach(id, e.Pos)
		}
	}

	w.lastSupply = ctx.supply
	w.lastDemand = ctx.demand

	w.tick++
	w.tickCount++
	w.elapsedMs += TickMS
}

// phaseOf looks up kind's phase, defaulting to PhaseUnphased (sorts
// last) when the kind is unregistered.
func (w *World) phaseOf(kind EntityKind) Phase {
	def, ok := w.registry.Get(kind)
	if !ok {
		return PhaseUnphased
	}
	return def.Phase
}
