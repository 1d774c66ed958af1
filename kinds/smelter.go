package kinds

import "github.com/conveyorsim/conveyor/world"

// SmelterCraftTicks is the number of ticks a smelter spends crafting
// once it accepts ore.
const SmelterCraftTicks = 180

// SmelterDemandPerTick is the power demand a smelter accrues into the
// world's supply/demand telemetry while actively crafting.
const SmelterDemandPerTick = 5.0

// SmelterState is a smelter's opaque per-entity state.
type SmelterState struct {
	Input     *world.ItemKind
	Output    *world.ItemKind
	Crafting  bool
	Progress  int
	Completed uint64
}

// Clone satisfies world.Cloner: Input and Output are both pointers.
func (s *SmelterState) Clone() any {
	cp := *s
	if s.Input != nil {
		v := *s.Input
		cp.Input = &v
	}
	if s.Output != nil {
		v := *s.Output
		cp.Output = &v
	}
	return &cp
}

func smelterCreate(init world.EntityInit, w *world.World) (any, error) {
	return &SmelterState{}, nil
}

// smelterUpdate runs every tick rather than on a cadence boundary: the
// 180-tick figure is the craft duration, not an attempt interval like
// the ones the extractor, belt, and inserter gate on.
func smelterUpdate(e *world.Entity, dtMs float64, ctx *world.TickContext) {
	st := e.State.(*SmelterState)

	if !st.Crafting {
		if st.Input != nil && st.Output == nil {
			st.Input = nil
			st.Crafting = true
			st.Progress = 0
		}
		return
	}

	ctx.AddDemand(SmelterDemandPerTick)
	st.Progress++
	if st.Progress >= SmelterCraftTicks {
		plate := world.ItemIronPlate
		st.Output = &plate
		st.Crafting = false
		st.Progress = 0
		st.Completed++
	}
}

// deliverToSmelterInput places item into the smelter at pos's input
// slot, if it is idle, not crafting, and its output is unoccupied. It
// reports whether the drop occurred.
func deliverToSmelterInput(ctx *world.TickContext, pos world.GridCoord, item world.ItemKind) bool {
	if item != world.ItemIronOre {
		return false
	}
	if ctx.ClaimKey(targetClaimKey(pos) ^ smelterInputClaimSalt) {
		return false
	}
	liveEntities := ctx.LiveEntitiesAt(pos)
	for _, le := range liveEntities {
		if le.Kind != world.KindSmelter {
			continue
		}
		sm := le.State.(*SmelterState)
		if sm.Crafting || sm.Input != nil || sm.Output != nil {
			return false
		}
		v := item
		sm.Input = &v
		return true
	}
	return false
}

const smelterInputClaimSalt = int64(0x1b873593)
