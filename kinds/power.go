package kinds

import "github.com/conveyorsim/conveyor/world"

// PowerSourceDefaultSupply is the default per-tick supply a power
// source emits.
const PowerSourceDefaultSupply = 10.0

// PowerSourceConfig is the per-kind init payload an AddEntity caller
// passes via EntityInit.Extra to override a power source's output.
type PowerSourceConfig struct {
	SupplyPerTick float64
}

// PowerSourceState is a power source's opaque per-entity state.
type PowerSourceState struct {
	SupplyPerTick float64
}

// Clone satisfies world.Cloner. No reference fields, but the state is
// held by pointer, so without Clone the snapshot would share it with
// the live entity.
func (s *PowerSourceState) Clone() any {
	cp := *s
	return &cp
}

func powerSourceCreate(init world.EntityInit, w *world.World) (any, error) {
	supply := PowerSourceDefaultSupply
	if cfg, ok := init.Extra.(PowerSourceConfig); ok && cfg.SupplyPerTick > 0 {
		supply = cfg.SupplyPerTick
	}
	return &PowerSourceState{SupplyPerTick: supply}, nil
}

// powerSourceUpdate emits this source's per-tick supply into the
// world's aggregate telemetry. It never blocks or throttles ticking;
// demand accrual is each consuming kind's own responsibility, and none
// of the core kinds currently throttle on it.
func powerSourceUpdate(e *world.Entity, dtMs float64, ctx *world.TickContext) {
	st := e.State.(*PowerSourceState)
	ctx.AddSupply(st.SupplyPerTick)
}
