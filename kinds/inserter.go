package kinds

import "github.com/conveyorsim/conveyor/world"

// InserterCadence is the number of ticks between inserter attempts.
const InserterCadence = 20

// InserterState is an inserter arm's opaque per-entity state: empty or
// holding one item.
type InserterState struct {
	Holding  *world.ItemKind
	Attempts uint64
	Moved    uint64
	Blocked  uint64
}

// Clone satisfies world.Cloner for the same reason as BeltState: the
// Holding pointer must not alias the live entity's.
func (s *InserterState) Clone() any {
	cp := *s
	if s.Holding != nil {
		v := *s.Holding
		cp.Holding = &v
	}
	return &cp
}

func inserterCreate(init world.EntityInit, w *world.World) (any, error) {
	return &InserterState{}, nil
}

func inserterUpdate(e *world.Entity, dtMs float64, ctx *world.TickContext) {
	st := e.State.(*InserterState)
	if e.LocalTicks()%InserterCadence != 0 {
		return
	}
	st.Attempts++

	if st.Holding == nil {
		pickupFrom := world.Behind(e.Pos, e.Rot)
		if pickUpFromBelt(ctx, pickupFrom, st) {
			return
		}
		st.Blocked++
		return
	}

	dropTo := world.Forward(e.Pos, e.Rot)
	if dropInto(ctx, dropTo, st) {
		return
	}
	st.Blocked++
}

// pickUpFromBelt takes the item off a belt at pos, if any, into st.
// It reports whether a pickup occurred.
func pickUpFromBelt(ctx *world.TickContext, pos world.GridCoord, st *InserterState) bool {
	if ctx.ClaimKey(targetClaimKey(pos) ^ pickupClaimSalt) {
		return false
	}
	liveEntities := ctx.LiveEntitiesAt(pos)
	for _, le := range liveEntities {
		if le.Kind != world.KindBelt {
			continue
		}
		belt := le.State.(*BeltState)
		if belt.Item == nil {
			continue
		}
		v := *belt.Item
		st.Holding = &v
		belt.Item = nil
		st.Moved++
		return true
	}
	return false
}

// pickupClaimSalt keeps the pickup claim namespace distinct from the
// delivery claim namespace: an inserter pulling from a cell this tick
// must not be conflated with a belt/extractor delivering into it.
const pickupClaimSalt = int64(0x5bd1e995)

// dropInto places st's held item ahead: preferentially a belt with an
// empty cell, else a smelter with an empty input/output that isn't
// currently crafting, else a chest or assembler with room. It reports
// whether the drop occurred.
func dropInto(ctx *world.TickContext, pos world.GridCoord, st *InserterState) bool {
	if deliverToBelt(ctx, pos, *st.Holding) {
		st.Holding = nil
		st.Moved++
		return true
	}
	if deliverToSmelterInput(ctx, pos, *st.Holding) {
		st.Holding = nil
		st.Moved++
		return true
	}
	if deliverToChest(ctx, pos, *st.Holding) {
		st.Holding = nil
		st.Moved++
		return true
	}
	if deliverToAssemblerInput(ctx, pos, *st.Holding) {
		st.Holding = nil
		st.Moved++
		return true
	}
	return false
}
