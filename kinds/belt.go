package kinds

import (
	"encoding/binary"

	"github.com/conveyorsim/conveyor/world"
	"github.com/segmentio/fasthash/fnv1a"
)

// BeltCadence is the number of ticks between belt attempts.
const BeltCadence = 15

// BeltState is a belt's opaque per-entity state: a cell holding at
// most one item.
type BeltState struct {
	Item     *world.ItemKind
	Attempts uint64
	Moved    uint64
	Blocked  uint64
}

// Clone satisfies world.Cloner: Item is a pointer, so a shallow struct
// copy would leave the snapshot's copy aliasing the live item, letting
// a later write to *Item (there are none today, but the field is
// exported) leak across the snapshot boundary. Copy the pointee too.
func (s *BeltState) Clone() any {
	cp := *s
	if s.Item != nil {
		v := *s.Item
		cp.Item = &v
	}
	return &cp
}

func beltCreate(init world.EntityInit, w *world.World) (any, error) {
	return &BeltState{}, nil
}

func beltUpdate(e *world.Entity, dtMs float64, ctx *world.TickContext) {
	st := e.State.(*BeltState)
	if e.LocalTicks()%BeltCadence != 0 {
		return
	}
	st.Attempts++

	if st.Item == nil {
		return
	}
	// The "do I have something to send" gate reads the snapshot's copy
	// of this belt, not the live one: an item deposited by an earlier
	// entity this same tick settles on the cell for one cadence
	// instead of hopping a second belt in the tick it arrived. That
	// settling is not a blocked attempt.
	if snap, ok := ctx.GetEntityByID(e.ID); !ok || snap.State.(*BeltState).Item == nil {
		return
	}

	target := world.Forward(e.Pos, e.Rot)
	if deliverToBelt(ctx, target, *st.Item) {
		st.Item = nil
		st.Moved++
		return
	}
	st.Blocked++
}

// targetClaimKey derives the per-tick contention-claim key for pos:
// fnv1a over the packed coordinate bytes. This runs on every
// belt/extractor/inserter attempt.
func targetClaimKey(pos world.GridCoord) int64 {
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(pos.X))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(pos.Y))
	return int64(fnv1a.HashBytes64(buf[:]))
}
