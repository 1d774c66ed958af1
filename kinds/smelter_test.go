package kinds

import (
	"testing"

	"github.com/conveyorsim/conveyor/world"
)

// The smelt state machine in isolation: accept one tick after ore is
// staged, emit the plate exactly 180 crafting ticks later.
func TestSmelterCraftDuration(t *testing.T) {
	w := newTestWorld(t, 4, 4)
	id := mustAdd(t, w, world.KindSmelter, 1, 1, world.North)
	ore := world.ItemIronOre
	smelterState(t, w, id).Input = &ore

	stepTicks(t, w, 1)
	sm := smelterState(t, w, id)
	if !sm.Crafting || sm.Input != nil {
		t.Fatalf("smelter did not accept the staged ore: crafting=%v input=%v", sm.Crafting, sm.Input)
	}

	stepTicks(t, w, SmelterCraftTicks - 1)
	sm = smelterState(t, w, id)
	if !sm.Crafting || sm.Progress != SmelterCraftTicks-1 {
		t.Fatalf("progress = %d, want %d", sm.Progress, SmelterCraftTicks-1)
	}

	stepTicks(t, w, 1)
	sm = smelterState(t, w, id)
	if sm.Crafting || sm.Output == nil || *sm.Output != world.ItemIronPlate {
		t.Fatalf("crafting=%v output=%v, want finished plate", sm.Crafting, sm.Output)
	}
	if sm.Completed != 1 || sm.Progress != 0 {
		t.Fatalf("completed=%d progress=%d, want 1/0", sm.Completed, sm.Progress)
	}
}

// While the output slot is occupied, staged input is not consumed.
func TestSmelterRefusesWorkWhileOutputOccupied(t *testing.T) {
	w := newTestWorld(t, 4, 4)
	id := mustAdd(t, w, world.KindSmelter, 1, 1, world.North)
	sm := smelterState(t, w, id)
	ore, plate := world.ItemIronOre, world.ItemIronPlate
	sm.Input = &ore
	sm.Output = &plate

	stepTicks(t, w, 5)
	sm = smelterState(t, w, id)
	if sm.Crafting || sm.Input == nil {
		t.Fatalf("smelter started crafting with an occupied output: crafting=%v input=%v",
			sm.Crafting, sm.Input)
	}

	sm.Output = nil
	stepTicks(t, w, 1)
	sm = smelterState(t, w, id)
	if !sm.Crafting {
		t.Fatalf("smelter did not start once the output drained")
	}
}
