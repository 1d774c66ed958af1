package world

// Phase is the coarse scheduling bucket a registered kind's Update
// runs in. Within a tick, all entities of an earlier phase run before
// any entity of a later phase.
type Phase uint8

const (
	PhaseExtractor Phase = iota
	PhaseBelt
	PhaseSmelter
	PhaseInserter
	PhaseUnphased
)

// phaseRank maps a Phase to its scheduling priority. Unknown/invalid
// phase values are treated the same as PhaseUnphased: they sort last.
func phaseRank(p Phase) int {
	switch p {
	case PhaseExtractor:
		return 0
	case PhaseBelt:
		return 1
	case PhaseSmelter:
		return 2
	case PhaseInserter:
		return 3
	default:
		return 4
	}
}

// Definition describes how the Registry should construct and update
// one EntityKind. Create and Update are optional: a definition with
// neither is a purely inert marker kind.
type Definition struct {
	// Create builds the entity's opaque state, if any. May be nil.
	Create func(init EntityInit, w *World) (state any, err error)
	// Update runs every tick the entity is scheduled for. May be nil
	// for kinds with no per-tick behavior.
	Update func(e *Entity, dtMs float64, ctx *TickContext)
	// Phase selects this kind's scheduling bucket.
	Phase Phase
}

// EntityRegistry maps an EntityKind tag to its Definition. Unlike a
// process-wide singleton, each World owns its own Registry instance so
// multiple simulations can coexist in one process.
type EntityRegistry struct {
	defs map[EntityKind]Definition
}

// NewEntityRegistry returns an empty registry.
func NewEntityRegistry() *EntityRegistry {
	return &EntityRegistry{defs: make(map[EntityKind]Definition)}
}

// Register installs definition for kind. It fails with
// ErrAlreadyRegistered if kind was already registered.
func (r *EntityRegistry) Register(kind EntityKind, definition Definition) error {
	if _, ok := r.defs[kind]; ok {
		return errAlreadyRegistered(kind)
	}
	r.defs[kind] = definition
	return nil
}

// Get returns the definition registered for kind, if any.
func (r *EntityRegistry) Get(kind EntityKind) (Definition, bool) {
	d, ok := r.defs[kind]
	return d, ok
}

// Registered reports whether kind has a registered definition.
func (r *EntityRegistry) Registered(kind EntityKind) bool {
	_, ok := r.defs[kind]
	return ok
}
