// Package kinds implements the transport/production state machines
// (extractor, belt, inserter, smelter, chest, assembler, power-source)
// and registers them into a world.EntityRegistry.
package kinds

import "github.com/conveyorsim/conveyor/world"

// ExtractorCadence is the number of ticks between extractor attempts.
const ExtractorCadence = 60

// ExtractorConfig is the per-kind init payload an AddEntity caller
// passes via EntityInit.Extra to pick what resource an extractor mines.
// A zero value defaults to iron-ore.
type ExtractorConfig struct {
	Resource world.ItemKind
}

// ExtractorState is the opaque per-entity state an extractor's
// Create constructor returns.
type ExtractorState struct {
	Resource world.ItemKind
	Holding  bool
	Attempts uint64
	Moved    uint64
	Blocked  uint64
}

// Clone satisfies world.Cloner. ExtractorState has no reference fields,
// but the entity holds it by pointer, and cloneState returns a
// non-Cloner state unchanged, so without Clone the snapshot would share
// this struct with the live entity.
func (s *ExtractorState) Clone() any {
	cp := *s
	return &cp
}

func extractorCreate(init world.EntityInit, w *world.World) (any, error) {
	resource := world.ItemIronOre
	if cfg, ok := init.Extra.(ExtractorConfig); ok && cfg.Resource != "" {
		resource = cfg.Resource
	}
	return &ExtractorState{Resource: resource}, nil
}

func extractorUpdate(e *world.Entity, dtMs float64, ctx *world.TickContext) {
	st := e.State.(*ExtractorState)
	if e.LocalTicks()%ExtractorCadence != 0 {
		return
	}
	st.Attempts++

	if !st.Holding {
		st.Resource = tileResource(ctx, e.Pos, st.Resource)
		st.Holding = true
	}

	target := world.Forward(e.Pos, e.Rot)
	if deliverToBelt(ctx, target, st.Resource) {
		st.Holding = false
		st.Moved++
		return
	}
	st.Blocked++
}

// tileResource maps the resource map tile under pos to the item an
// extractor there yields, falling back to the configured resource when
// no map is attached or the tile carries nothing extractable.
func tileResource(ctx *world.TickContext, pos world.GridCoord, fallback world.ItemKind) world.ItemKind {
	m := ctx.Map()
	if m == nil || !m.IsWithinBounds(pos) {
		return fallback
	}
	switch {
	case m.IsOre(pos):
		return world.ItemIronOre
	case m.IsCoal(pos):
		return world.ItemCoal
	case m.IsTree(pos):
		return world.ItemWood
	default:
		return fallback
	}
}

// deliverToBelt attempts to place item into the belt occupying target.
// The transfer requires the cell to be empty at the tick snapshot,
// still empty in the live view, and unclaimed by any earlier transfer
// this tick. It reports whether the delivery succeeded.
func deliverToBelt(ctx *world.TickContext, target world.GridCoord, item world.ItemKind) bool {
	if ctx.ClaimKey(targetClaimKey(target)) {
		return false
	}

	snapBelt := findBelt(ctx.GetEntitiesAt(target))
	if snapBelt == nil || snapBelt.Item != nil {
		return false
	}
	liveEntities := ctx.LiveEntitiesAt(target)
	var liveEntity *world.Entity
	for _, le := range liveEntities {
		if le.Kind == world.KindBelt {
			liveEntity = le
			break
		}
	}
	if liveEntity == nil {
		return false
	}
	liveBelt := liveEntity.State.(*BeltState)
	if liveBelt.Item != nil {
		return false
	}
	v := item
	liveBelt.Item = &v
	return true
}

func findBelt(entities []*world.Entity) *BeltState {
	for _, e := range entities {
		if e.Kind == world.KindBelt {
			return e.State.(*BeltState)
		}
	}
	return nil
}
