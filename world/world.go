package world

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/conveyorsim/conveyor/internal/sliceutil"
)

// Config is the small struct of cross-cutting dependencies a World
// needs but shouldn't hardcode. Log defaults to slog.Default() when
// left nil.
type Config struct {
	Log *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Log == nil {
		c.Log = slog.Default()
	}
	return c
}

// CreateOptions configures a new World.
type CreateOptions struct {
	Width, Height int
	// Seed is an opaque value passed to Registry Create constructors.
	// If empty, CreateWorld generates a random one via google/uuid.
	Seed string
	Map  ResourceMap
}

// World is the authoritative simulation store: it owns every entity,
// the spatial index, and the scheduler/driver state, and is the only
// thing that ever mutates them.
type World struct {
	mu sync.Mutex

	width, height int
	seed          string
	resourceMap   ResourceMap
	registry      *EntityRegistry
	log           *slog.Logger

	entities  map[uint64]*Entity
	byID      map[string]uint64
	spatial   *spatialIndex
	scheduler *scheduler

	nextID    uint64
	insertion uint64

	tick      uint64
	tickCount uint64
	elapsedMs float64

	accumulator float64
	paused      bool
	inStep      bool
	poisoned    bool

	tickSamples uint64
	lastSupply  float64
	lastDemand  float64
}

// CreateWorld builds a new World. Width and Height must be
// positive; registry must already have every kind the caller intends
// to use registered (kinds.DefaultRegistry is the usual choice).
func CreateWorld(opts CreateOptions, registry *EntityRegistry, cfg Config) (*World, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, errInvariantViolation("world dimensions must be positive")
	}
	cfg = cfg.withDefaults()
	w := newWorldInternal(opts.Width, opts.Height, registry, opts.Map)
	w.log = cfg.Log
	w.seed = opts.Seed
	if w.seed == "" {
		w.seed = uuid.NewString()
	}
	return w, nil
}

// newWorldInternal builds the bare World struct shared by CreateWorld
// and DecodeState, before either fills in seed/tick/entity state.
func newWorldInternal(width, height int, registry *EntityRegistry, resourceMap ResourceMap) *World {
	return &World{
		width:       width,
		height:      height,
		resourceMap: resourceMap,
		registry:    registry,
		log:         slog.Default(),
		entities:    make(map[uint64]*Entity),
		byID:        make(map[string]uint64),
		spatial:     newSpatialIndex(),
		scheduler:   newScheduler(),
	}
}

// Seed returns the opaque seed value passed to Registry constructors.
func (w *World) Seed() string { return w.seed }

// AddEntity validates init and kind, allocates the next id, runs the
// kind's Create constructor, and inserts the entity into the id map
// and spatial index. It returns the new id string. The id is only
// allocated after every validation passes; a failed add commits
// nothing.
func (w *World) AddEntity(kind EntityKind, init EntityInit) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !inBoundsRect(init.Pos, w.width, w.height) {
		return "", errOutOfBounds(init.Pos)
	}
	if !init.HasRot {
		init.Rot = North
	} else if !init.Rot.Valid() {
		return "", errInvalidDirection()
	}
	def, ok := w.registry.Get(kind)
	if !ok {
		return "", errUnknownKind(kind)
	}

	var state any
	if def.Create != nil {
		var err error
		state, err = def.Create(init, w)
		if err != nil {
			return "", err
		}
	}

	id := w.nextID + 1
	w.nextID = id
	order := w.insertion
	w.insertion++

	idStr := formatID(id)
	e := &Entity{
		ID:             idStr,
		Kind:           kind,
		Pos:            init.Pos,
		Rot:            init.Rot,
		State:          state,
		id:             id,
		insertionOrder: order,
	}
	w.entities[id] = e
	w.byID[idStr] = id
	w.spatial.Attach(id, init.Pos)
	w.scheduler.markDirty()
	return idStr, nil
}

// restoreEntity re-inserts a validated, already-decoded EntityState
// without running the kind's Create constructor, preserving exactly
// the persisted state rather than regenerating it. The persisted
// numeric id is kept as the internal id, and nextID stays past every
// restored id so later AddEntity calls never mint a colliding one.
func (w *World) restoreEntity(es EntityState, id uint64) string {
	if id > w.nextID {
		w.nextID = id
	}
	order := w.insertion
	w.insertion++

	e := &Entity{
		ID:             es.ID,
		Kind:           es.Kind,
		Pos:            es.Pos,
		Rot:            es.Rot,
		State:          es.State,
		id:             id,
		insertionOrder: order,
	}
	w.entities[id] = e
	w.byID[es.ID] = id
	w.spatial.Attach(id, es.Pos)
	w.scheduler.markDirty()
	return es.ID
}

// RemoveEntity deletes the entity with the given id. It reports
// whether an entity was actually removed.
func (w *World) RemoveEntity(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	internalID, ok := w.byID[id]
	if !ok {
		return false
	}
	delete(w.entities, internalID)
	delete(w.byID, id)
	w.spatial.Detach(internalID)
	w.scheduler.markDirty()
	return true
}

// GetEntity returns the live entity with the given id.
func (w *World) GetEntity(id string) (*Entity, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.entityByIDLive(id)
}

func (w *World) entityByIDLive(id string) (*Entity, bool) {
	internalID, ok := w.byID[id]
	if !ok {
		return nil, false
	}
	e, ok := w.entities[internalID]
	return e, ok
}

// GetEntitiesAt returns the live entities occupying pos.
func (w *World) GetEntitiesAt(pos GridCoord) []*Entity {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.entitiesAtLive(pos)
}

func (w *World) entitiesAtLive(pos GridCoord) []*Entity {
	ids := w.spatial.At(pos)
	if len(ids) == 0 {
		return nil
	}
	out := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := w.entities[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// GetAllEntities returns every live entity, ordered by internal id.
func (w *World) GetAllEntities() []*Entity {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]*Entity, 0, len(w.entities))
	for _, id := range sliceutil.SortedKeys(w.entities) {
		out = append(out, w.entities[id])
	}
	return out
}

// Pause stops Step from advancing ticks while preserving the
// accumulator exactly, so the first tick after Resume is still a full
// tick.
func (w *World) Pause() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paused = true
}

// Resume allows Step to advance ticks again.
func (w *World) Resume() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paused = false
}

// TogglePause flips the paused state and returns the new value.
func (w *World) TogglePause() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paused = !w.paused
	return w.paused
}

// IsPaused reports the current paused state.
func (w *World) IsPaused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.paused
}

// TickCount returns the number of ticks run so far.
func (w *World) TickCount() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tickCount
}

// Tick returns the current tick number (equal to TickCount here; the
// core has no notion of a tick number independent of the count).
func (w *World) Tick() uint64 {
	return w.TickCount()
}

// ElapsedMs returns the total simulated (unpaused) time elapsed.
func (w *World) ElapsedMs() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.elapsedMs
}

// GetMap returns the external resource map handle.
func (w *World) GetMap() ResourceMap {
	return w.resourceMap
}

// SupplyDemand is the aggregate power telemetry GetSupplyDemand
// returns.
type SupplyDemand struct {
	Supply   float64
	Demand   float64
	Shortage bool
}

// GetSupplyDemand reports the previous tick's aggregate power
// telemetry. It is zero-valued until the first tick runs.
func (w *World) GetSupplyDemand() SupplyDemand {
	w.mu.Lock()
	defer w.mu.Unlock()
	return SupplyDemand{
		Supply:   w.lastSupply,
		Demand:   w.lastDemand,
		Shortage: w.lastDemand > w.lastSupply,
	}
}

// PlacementSnapshot is the player-facing summary GetPlacementSnapshot
// returns.
type PlacementSnapshot struct {
	Tick        uint64
	TickCount   uint64
	ElapsedMs   float64
	EntityCount int
	Width       int
	Height      int
	Paused      bool
}

// GetPlacementSnapshot returns a read-only summary of the world
// suitable for a renderer or HUD to poll.
func (w *World) GetPlacementSnapshot() PlacementSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return PlacementSnapshot{
		Tick:        w.tick,
		TickCount:   w.tickCount,
		ElapsedMs:   w.elapsedMs,
		EntityCount: len(w.entities),
		Width:       w.width,
		Height:      w.height,
		Paused:      w.paused,
	}
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
