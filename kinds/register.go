package kinds

import "github.com/conveyorsim/conveyor/world"

// DefaultRegistry builds a *world.EntityRegistry with the core kinds
// installed. It returns a new instance per call so multiple
// simulations can coexist in one process.
func DefaultRegistry() *world.EntityRegistry {
	r := world.NewEntityRegistry()
	mustRegister(r, world.KindExtractor, world.Definition{
		Create: extractorCreate,
		Update: extractorUpdate,
		Phase:  world.PhaseExtractor,
	})
	mustRegister(r, world.KindBelt, world.Definition{
		Create: beltCreate,
		Update: beltUpdate,
		Phase:  world.PhaseBelt,
	})
	mustRegister(r, world.KindSmelter, world.Definition{
		Create: smelterCreate,
		Update: smelterUpdate,
		Phase:  world.PhaseSmelter,
	})
	mustRegister(r, world.KindInserter, world.Definition{
		Create: inserterCreate,
		Update: inserterUpdate,
		Phase:  world.PhaseInserter,
	})
	mustRegister(r, world.KindChest, world.Definition{
		Create: chestCreate,
		Update: chestUpdate,
		Phase:  world.PhaseUnphased,
	})
	mustRegister(r, world.KindAssembler, world.Definition{
		Create: assemblerCreate,
		Update: assemblerUpdate,
		Phase:  world.PhaseUnphased,
	})
	mustRegister(r, world.KindPowerSource, world.Definition{
		Create: powerSourceCreate,
		Update: powerSourceUpdate,
		Phase:  world.PhaseUnphased,
	})
	mustRegister(r, world.KindResourceNode, world.Definition{
		Phase: world.PhaseUnphased,
	})
	return r
}

// mustRegister panics on registration failure, which can only happen
// if DefaultRegistry itself lists a kind twice — a programming error,
// not a runtime condition a caller needs to handle.
func mustRegister(r *world.EntityRegistry, kind world.EntityKind, def world.Definition) {
	if err := r.Register(kind, def); err != nil {
		panic(err)
	}
}
