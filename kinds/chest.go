package kinds

import "github.com/conveyorsim/conveyor/world"

// ChestDefaultCapacity is the default total item count a chest can
// hold across all item kinds.
const ChestDefaultCapacity = 50

// ChestConfig is the per-kind init payload an AddEntity caller passes
// via EntityInit.Extra to override a chest's capacity.
type ChestConfig struct {
	Capacity int
}

// ChestState is a chest's opaque per-entity state: a bounded,
// multi-kind inventory, mirroring the simplicity of a block inventory
// without any network-serialization concerns (there is no protocol
// layer here).
type ChestState struct {
	Items    map[world.ItemKind]int
	Capacity int
}

// Clone satisfies world.Cloner: Items is a map.
func (s *ChestState) Clone() any {
	cp := *s
	cp.Items = make(map[world.ItemKind]int, len(s.Items))
	for k, v := range s.Items {
		cp.Items[k] = v
	}
	return &cp
}

// Total returns the chest's current item count across all kinds.
func (s *ChestState) Total() int {
	total := 0
	for _, n := range s.Items {
		total += n
	}
	return total
}

func chestCreate(init world.EntityInit, w *world.World) (any, error) {
	capacity := ChestDefaultCapacity
	if cfg, ok := init.Extra.(ChestConfig); ok && cfg.Capacity > 0 {
		capacity = cfg.Capacity
	}
	return &ChestState{Items: make(map[world.ItemKind]int), Capacity: capacity}, nil
}

// chestUpdate is a no-op: a chest is a passive item host, acted on only
// by deliverToChest (inserter drops) and withdrawals from outside
// collaborators (e.g. a plan interpreter or player pickup), neither of
// which requires a per-tick attempt cadence.
func chestUpdate(e *world.Entity, dtMs float64, ctx *world.TickContext) {}

// deliverToChest deposits one unit of item into the chest at pos, if
// it has room. It reports whether the deposit occurred.
func deliverToChest(ctx *world.TickContext, pos world.GridCoord, item world.ItemKind) bool {
	if ctx.ClaimKey(targetClaimKey(pos) ^ chestClaimSalt) {
		return false
	}
	liveEntities := ctx.LiveEntitiesAt(pos)
	for _, le := range liveEntities {
		if le.Kind != world.KindChest {
			continue
		}
		ch := le.State.(*ChestState)
		if ch.Total() >= ch.Capacity {
			return false
		}
		ch.Items[item]++
		return true
	}
	return false
}

const chestClaimSalt = int64(0xc2b2ae3d)

// Withdraw removes up to n units of item from the chest, returning how
// many it actually removed. It's the collaborator-facing complement to
// deliverToChest, used by an out-of-core player-pickup or
// plan-interpreter caller, never by another kind's Update.
func (s *ChestState) Withdraw(item world.ItemKind, n int) int {
	have := s.Items[item]
	if n > have {
		n = have
	}
	if n <= 0 {
		return 0
	}
	s.Items[item] -= n
	if s.Items[item] == 0 {
		delete(s.Items, item)
	}
	return n
}
