package kinds

import (
	"testing"

	"github.com/conveyorsim/conveyor/world"
)

func chestState(t *testing.T, w *world.World, id string) *ChestState {
	t.Helper()
	e, ok := w.GetEntity(id)
	if !ok {
		t.Fatalf("entity %q not found", id)
	}
	return e.State.(*ChestState)
}

// An inserter drops into a chest when no belt or smelter is ahead.
func TestInserterDropsIntoChest(t *testing.T) {
	w := newTestWorld(t, 8, 3)
	srcID := mustAdd(t, w, world.KindBelt, 1, 1, world.East)
	mustAdd(t, w, world.KindInserter, 2, 1, world.East)
	chestID := mustAdd(t, w, world.KindChest, 3, 1, world.North)
	fillBelt(t, w, srcID, world.ItemIronGear)

	stepTicks(t, w, 2*InserterCadence)
	ch := chestState(t, w, chestID)
	if ch.Items[world.ItemIronGear] != 1 {
		t.Fatalf("chest holds %v, want one iron-gear", ch.Items)
	}
}

func TestChestCapacityBlocksDrops(t *testing.T) {
	w := newTestWorld(t, 8, 3)
	srcID := mustAdd(t, w, world.KindBelt, 1, 1, world.East)
	inserterID := mustAdd(t, w, world.KindInserter, 2, 1, world.East)
	chestID, err := w.AddEntity(world.KindChest, world.EntityInit{
		Pos:   world.GridCoord{X: 3, Y: 1},
		Extra: ChestConfig{Capacity: 1},
	})
	if err != nil {
		t.Fatalf("AddEntity: %v", err)
	}
	fillBelt(t, w, srcID, world.ItemCoal)

	// First cycle fills the chest to capacity.
	stepTicks(t, w, 2*InserterCadence)
	if got := chestState(t, w, chestID).Total(); got != 1 {
		t.Fatalf("chest total = %d, want 1", got)
	}

	// Second cycle: the arm picks up again but cannot drop.
	fillBelt(t, w, srcID, world.ItemCoal)
	stepTicks(t, w, 2*InserterCadence)
	ins := inserterState(t, w, inserterID)
	if ins.Holding == nil || *ins.Holding != world.ItemCoal {
		t.Fatalf("inserter should retain the coal against a full chest: %v", ins.Holding)
	}
	if got := chestState(t, w, chestID).Total(); got != 1 {
		t.Fatalf("full chest accepted a drop, total = %d", got)
	}
}

func TestChestWithdraw(t *testing.T) {
	s := &ChestState{Items: map[world.ItemKind]int{world.ItemWood: 3}, Capacity: 50}
	if got := s.Withdraw(world.ItemWood, 2); got != 2 {
		t.Fatalf("Withdraw = %d, want 2", got)
	}
	if got := s.Withdraw(world.ItemWood, 5); got != 1 {
		t.Fatalf("Withdraw beyond stock = %d, want 1", got)
	}
	if got := s.Withdraw(world.ItemWood, 1); got != 0 {
		t.Fatalf("Withdraw from empty = %d, want 0", got)
	}
	if len(s.Items) != 0 {
		t.Fatalf("depleted kinds not pruned: %v", s.Items)
	}
}
