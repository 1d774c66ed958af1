package world

// EntityKind tags an entity with the behavior the Registry should
// dispatch to. The core ships extractor, belt, inserter, smelter,
// chest, assembler, power-source and resource; collaborators may
// register additional kinds.
type EntityKind string

const (
	KindExtractor    EntityKind = "extractor"
	KindBelt         EntityKind = "belt"
	KindInserter     EntityKind = "inserter"
	KindSmelter      EntityKind = "smelter"
	KindChest        EntityKind = "chest"
	KindAssembler    EntityKind = "assembler"
	KindPowerSource  EntityKind = "power-source"
	KindResourceNode EntityKind = "resource"
)

// Entity is a single grid-bound object tracked by a World: an
// extractor, belt segment, inserter arm, smelter, and so on. State is
// the opaque per-kind payload that kind's Create constructor returned;
// the engine never inspects it, only a kind's own Update does.
type Entity struct {
	ID    string
	Kind  EntityKind
	Pos   GridCoord
	Rot   Direction
	State any

	// id is the internal monotonic integer identity id renders from.
	id uint64
	// insertionOrder records relative creation order for scheduler
	// tie-breaks, independent of id reuse policy.
	insertionOrder uint64
	// localTicks is the per-entity attempt counter transport/production
	// kinds check their cadence against.
	localTicks uint64
}

// LocalTicks returns the number of times this entity has been updated
// since it was created. Transport/production kinds use this to decide
// whether the current call is a cadence "attempt" tick.
func (e *Entity) LocalTicks() uint64 {
	return e.localTicks
}

// EntityInit is the caller-supplied initialization passed to
// AddEntity. Per-kind constructors receive the same struct so they can
// read kind-specific fields out of Extra.
type EntityInit struct {
	Pos GridCoord
	// Rot defaults to North when unset.
	Rot Direction
	// HasRot distinguishes "caller passed North" from "caller omitted
	// rotation"; both default to North, but callers may pass either.
	HasRot bool
	// Extra carries kind-specific construction parameters (e.g. which
	// resource an extractor should mine, or a custom assembler
	// recipe). The core never interprets it.
	Extra any
}

// clone returns a deep copy of e suitable for inclusion in a tick
// snapshot. Primitive fields are copied by value; State is
// cloned via cloneState so in-tick mutation of the live entity never
// becomes visible through a previously taken snapshot.
func (e *Entity) clone() *Entity {
	cp := *e
	cp.State = cloneState(e.State)
	return &cp
}
