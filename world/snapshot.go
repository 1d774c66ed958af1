package world

import "github.com/conveyorsim/conveyor/internal/sliceutil"

// Cloner is implemented by a kind's opaque State when a shallow copy is
// not enough to make the snapshot immutable: any State holding a slice,
// map, or pointer must implement it so the cloned entity shares no
// mutable memory with the live one.
type Cloner interface {
	Clone() any
}

// cloneState deep-copies an entity's opaque State for inclusion in a
// snapshot. States implementing Cloner are copied that way; anything
// else is assumed to be a plain value type (or already immutable) and
// is copied by value.
func cloneState(state any) any {
	if state == nil {
		return nil
	}
	if c, ok := state.(Cloner); ok {
		return c.Clone()
	}
	return state
}

// Snapshot is the frozen, read-only view of the world taken at the
// start of a tick. The TickContext snapshot queries read from it, and
// a write made by another entity earlier in the same tick is never
// visible through it; only the TickContext live queries see such
// writes.
type Snapshot struct {
	entities map[uint64]*Entity
	byID     map[string]uint64
	spatial  *spatialIndex
	tick     uint64
}

// newSnapshot builds a Snapshot from the live World state. It is the
// only place a deep clone of every entity happens; everything else in
// the tick pipeline reads through the result.
func newSnapshot(entities map[uint64]*Entity, byID map[string]uint64, spatial *spatialIndex, tick uint64) *Snapshot {
	clonedEntities := make(map[uint64]*Entity, len(entities))
	for id, e := range entities {
		clonedEntities[id] = e.clone()
	}
	clonedByID := make(map[string]uint64, len(byID))
	for id, internalID := range byID {
		clonedByID[id] = internalID
	}
	return &Snapshot{
		entities: clonedEntities,
		byID:     clonedByID,
		spatial:  spatial.clone(),
		tick:     tick,
	}
}

// EntityByInternalID returns the snapshot's copy of the entity with the
// given internal id, if present.
func (s *Snapshot) EntityByInternalID(id uint64) (*Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// EntityByID returns the snapshot's copy of the entity with the given
// public ID, if present.
func (s *Snapshot) EntityByID(id string) (*Entity, bool) {
	internalID, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return s.EntityByInternalID(internalID)
}

// At returns the snapshot's copies of the entities occupying pos.
func (s *Snapshot) At(pos GridCoord) []*Entity {
	ids := s.spatial.At(pos)
	if len(ids) == 0 {
		return nil
	}
	out := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.entities[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// All returns the snapshot's copies of every entity, ordered by
// internal id.
func (s *Snapshot) All() []*Entity {
	out := make([]*Entity, 0, len(s.entities))
	for _, id := range sliceutil.SortedKeys(s.entities) {
		out = append(out, s.entities[id])
	}
	return out
}

// TickNumber reports which tick this snapshot was captured at the start
// of.
func (s *Snapshot) TickNumber() uint64 {
	return s.tick
}
