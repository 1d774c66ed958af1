package world

// TickContext is handed to every Update call during one tick. It
// exposes the frozen pre-tick snapshot for neighbor reads, a live-view
// escape hatch for kinds that must observe writes made earlier in the
// same tick (e.g. belt contention), the world's static dimensions and
// resource map, and the current tick number.
type TickContext struct {
	width, height int
	resourceMap   ResourceMap
	tick          uint64
	snapshot      *Snapshot
	live          *World

	// claimed tracks transfer targets already claimed this tick: the
	// first belt, extractor or inserter to attempt a transfer into a
	// target claims it here, whether or not that transfer then
	// succeeds, so a later entity in scheduling order sees the slot as
	// already spoken for.
	claimed map[int64]bool

	supply float64
	demand float64
}

func newTickContext(w *World, snapshot *Snapshot, tick uint64) *TickContext {
	return &TickContext{
		width:       w.width,
		height:      w.height,
		resourceMap: w.resourceMap,
		tick:        tick,
		snapshot:    snapshot,
		live:        w,
		claimed:     make(map[int64]bool),
	}
}

// Width and Height report the world's fixed dimensions.
func (c *TickContext) Width() int  { return c.width }
func (c *TickContext) Height() int { return c.height }

// TickNumber reports the tick currently being processed.
func (c *TickContext) TickNumber() uint64 { return c.tick }

// Map returns the external resource map handle.
func (c *TickContext) Map() ResourceMap { return c.resourceMap }

// InBounds reports whether pos lies within [0,W) x [0,H).
func (c *TickContext) InBounds(pos GridCoord) bool {
	return pos.X >= 0 && pos.X < c.width && pos.Y >= 0 && pos.Y < c.height
}

// GetEntitiesAt returns the snapshot's copies of the entities at pos,
// the tick-start view every kind should read neighbor state from.
func (c *TickContext) GetEntitiesAt(pos GridCoord) []*Entity {
	return c.snapshot.At(pos)
}

// GetEntityByID returns the snapshot's copy of the entity with the
// given public ID.
func (c *TickContext) GetEntityByID(id string) (*Entity, bool) {
	return c.snapshot.EntityByID(id)
}

// GetAll returns the snapshot's copies of every entity.
func (c *TickContext) GetAll() []*Entity {
	return c.snapshot.All()
}

// LiveEntitiesAt returns the entities occupying pos in the live store
// right now, reflecting every write made earlier in this same tick.
// Belt and extractor contention resolution needs this to see whether
// an earlier-scheduled entity already filled a shared target.
func (c *TickContext) LiveEntitiesAt(pos GridCoord) []*Entity {
	return c.live.entitiesAtLive(pos)
}

// LiveEntityByID returns the live entity with the given public ID,
// reflecting writes made earlier in this same tick.
func (c *TickContext) LiveEntityByID(id string) (*Entity, bool) {
	return c.live.entityByIDLive(id)
}

// ClaimKey reports whether the given key has already been claimed this
// tick by an earlier transfer, and if not, claims it. Callers use this
// alongside LiveEntitiesAt to resolve contention deterministically: the
// live view alone isn't enough when two entities inspect the same
// empty cell before either writes to it. Kinds derive the key from the
// target position (typically via a fast non-cryptographic hash over
// the packed coordinate) so the claim set doesn't go through the
// generic map hasher on the hot transport path.
func (c *TickContext) ClaimKey(key int64) (alreadyClaimed bool) {
	if c.claimed[key] {
		return true
	}
	c.claimed[key] = true
	return false
}

// AddSupply accrues n units of power supply for this tick's telemetry.
func (c *TickContext) AddSupply(n float64) { c.supply += n }

// AddDemand accrues n units of power demand for this tick's telemetry.
func (c *TickContext) AddDemand(n float64) { c.demand += n }

// Throttled reports whether accrued demand exceeds accrued supply so
// far this tick. Power is best-effort telemetry: no kind is required
// to consult this, and none of the core kinds currently do, but it's
// available for collaborators that choose to throttle.
func (c *TickContext) Throttled() bool {
	return c.demand > c.supply
}
