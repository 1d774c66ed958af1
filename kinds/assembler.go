package kinds

import "github.com/conveyorsim/conveyor/world"

// AssemblerCadence is the number of ticks an assembler spends crafting
// once its recipe is fully stocked, the same craft-duration shape as
// the smelter one tier up the production chain.
const AssemblerCadence = 120

// AssemblerDemandPerTick is the power demand an assembler accrues into
// the world's supply/demand telemetry while actively crafting.
const AssemblerDemandPerTick = 8.0

// Recipe describes an assembler's craft: consume Inputs, produce one
// unit of Output. The zero Recipe is invalid; DefaultRecipe is used
// when an AddEntity caller doesn't supply one via AssemblerConfig.
type Recipe struct {
	Inputs map[world.ItemKind]int
	Output world.ItemKind
}

// DefaultRecipe produces one iron-gear from two iron-plate. Recipe
// output never equals a recipe input, so a chain of assemblers can
// never cycle on itself.
func DefaultRecipe() Recipe {
	return Recipe{
		Inputs: map[world.ItemKind]int{world.ItemIronPlate: 2},
		Output: world.ItemIronGear,
	}
}

// AssemblerConfig is the per-kind init payload an AddEntity caller
// passes via EntityInit.Extra to override an assembler's recipe.
type AssemblerConfig struct {
	Recipe Recipe
}

// AssemblerState is an assembler's opaque per-entity state: a staged
// input buffer against its recipe, a completed output slot, and a
// craft-in-progress flag.
type AssemblerState struct {
	Recipe    Recipe
	Staged    map[world.ItemKind]int
	Output    *world.ItemKind
	Crafting  bool
	Progress  int
	Completed uint64
}

// Clone satisfies world.Cloner: Staged and Output hold reference/
// pointer data that must not alias the live entity's.
func (s *AssemblerState) Clone() any {
	cp := *s
	cp.Staged = make(map[world.ItemKind]int, len(s.Staged))
	for k, v := range s.Staged {
		cp.Staged[k] = v
	}
	if s.Output != nil {
		v := *s.Output
		cp.Output = &v
	}
	return &cp
}

// ready reports whether Staged fully covers Recipe.Inputs.
func (s *AssemblerState) ready() bool {
	for kind, need := range s.Recipe.Inputs {
		if s.Staged[kind] < need {
			return false
		}
	}
	return true
}

func assemblerCreate(init world.EntityInit, w *world.World) (any, error) {
	recipe := DefaultRecipe()
	if cfg, ok := init.Extra.(AssemblerConfig); ok && cfg.Recipe.Output != "" {
		recipe = cfg.Recipe
	}
	return &AssemblerState{Recipe: recipe, Staged: make(map[world.ItemKind]int)}, nil
}

// assemblerUpdate runs every tick for the same reason smelterUpdate
// does: AssemblerCadence is a craft duration, not a per-attempt
// interval.
func assemblerUpdate(e *world.Entity, dtMs float64, ctx *world.TickContext) {
	st := e.State.(*AssemblerState)

	if !st.Crafting {
		if st.Output == nil && st.ready() {
			for kind, need := range st.Recipe.Inputs {
				st.Staged[kind] -= need
				if st.Staged[kind] == 0 {
					delete(st.Staged, kind)
				}
			}
			st.Crafting = true
			st.Progress = 0
		}
		return
	}

	ctx.AddDemand(AssemblerDemandPerTick)
	st.Progress++
	if st.Progress >= AssemblerCadence {
		out := st.Recipe.Output
		st.Output = &out
		st.Crafting = false
		st.Progress = 0
		st.Completed++
	}
}

// deliverToAssemblerInput stages item into the assembler at pos's
// input buffer, if the recipe can still use more of that kind and the
// assembler isn't holding a finished output it hasn't yet given up. It
// reports whether the stage occurred.
func deliverToAssemblerInput(ctx *world.TickContext, pos world.GridCoord, item world.ItemKind) bool {
	if ctx.ClaimKey(targetClaimKey(pos) ^ assemblerClaimSalt) {
		return false
	}
	liveEntities := ctx.LiveEntitiesAt(pos)
	for _, le := range liveEntities {
		if le.Kind != world.KindAssembler {
			continue
		}
		as := le.State.(*AssemblerState)
		if as.Output != nil {
			return false
		}
		need, wants := as.Recipe.Inputs[item]
		if !wants || as.Staged[item] >= need {
			return false
		}
		as.Staged[item]++
		return true
	}
	return false
}

const assemblerClaimSalt = int64(0x9e3779b9)
