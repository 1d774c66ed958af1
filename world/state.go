package world

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/conveyorsim/conveyor/internal/sliceutil"
)

// StateVersion is the current persisted-state schema version.
// EncodeState always writes this; DecodeState rejects any other value
// rather than attempting migration, since no prior version has ever
// shipped.
const StateVersion = 1

// EntityState is the persisted form of one Entity.
type EntityState struct {
	ID    string
	Kind  EntityKind
	Pos   GridCoord
	Rot   Direction
	State any
}

// State is the persisted-state record: everything a collaborator
// needs to reconstruct a World, exactly as it was serialized by
// EncodeState. persistence/ is the only intended consumer; the core
// never interprets State beyond EncodeState/DecodeState.
type State struct {
	Version    int
	InstanceID string
	Width      int
	Height     int
	Tick       uint64
	TickCount  uint64
	ElapsedMs  float64
	Paused     bool
	Entities   []EntityState
}

// EncodeState captures w's current public view as a State record. It
// never fails: any World, however constructed, is representable.
func EncodeState(w *World) *State {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Entities are emitted in internal-id order, which is insertion
	// order; DecodeState restores insertion order from slice position,
	// so scheduler tie-breaks survive a save/load cycle.
	entities := make([]EntityState, 0, len(w.entities))
	for _, id := range sliceutil.SortedKeys(w.entities) {
		e := w.entities[id]
		entities = append(entities, EntityState{
			ID:    e.ID,
			Kind:  e.Kind,
			Pos:   e.Pos,
			Rot:   e.Rot,
			State: cloneState(e.State),
		})
	}

	return &State{
		Version:    StateVersion,
		InstanceID: uuid.NewString(),
		Width:      w.width,
		Height:     w.height,
		Tick:       w.tick,
		TickCount:  w.tickCount,
		ElapsedMs:  w.elapsedMs,
		Paused:     w.paused,
		Entities:   entities,
	}
}

// DecodeState validates s and, if every field is well-formed, builds a
// fresh World from it using registry and resourceMap. Any validation
// failure discards the whole payload. registry must already have every
// kind referenced by s registered, or decoding fails with UnknownKind.
func DecodeState(s *State, registry *EntityRegistry, resourceMap ResourceMap) (*World, error) {
	if s == nil {
		return nil, errInvariantViolation("nil state")
	}
	if s.Version != StateVersion {
		return nil, errInvariantViolation("unsupported state version")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, errInvariantViolation("non-positive world dimensions")
	}
	ids := make([]uint64, len(s.Entities))
	seen := make(map[uint64]bool, len(s.Entities))
	for i, es := range s.Entities {
		if !es.Kind.Valid(registry) {
			return nil, errUnknownKind(es.Kind)
		}
		if !inBoundsRect(es.Pos, s.Width, s.Height) {
			return nil, errOutOfBounds(es.Pos)
		}
		if !es.Rot.Valid() {
			return nil, errInvalidDirection()
		}
		id, err := strconv.ParseUint(es.ID, 10, 64)
		if err != nil || id == 0 || seen[id] {
			return nil, errInvariantViolation("malformed or duplicate entity id")
		}
		ids[i] = id
		seen[id] = true
	}

	w := newWorldInternal(s.Width, s.Height, registry, resourceMap)
	w.tick = s.Tick
	w.tickCount = s.TickCount
	w.elapsedMs = s.ElapsedMs
	w.paused = s.Paused

	for i, es := range s.Entities {
		w.restoreEntity(es, ids[i])
	}
	return w, nil
}

func inBoundsRect(pos GridCoord, width, height int) bool {
	return pos.X >= 0 && pos.X < width && pos.Y >= 0 && pos.Y < height
}

// Valid reports whether kind is registered in registry. Unlike
// ItemKind.Valid, EntityKind validity depends on a specific registry
// instance.
func (k EntityKind) Valid(registry *EntityRegistry) bool {
	return registry.Registered(k)
}
