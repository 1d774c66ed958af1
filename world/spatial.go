package world

import (
	"github.com/brentp/intintmap"

	"github.com/conveyorsim/conveyor/internal/sliceutil"
)

// spatialIndex maintains the cell -> {entity id} map alongside an
// id -> cell reverse index, kept coherent with every Attach/Detach: a
// cell bucket contains an id iff the entity is tracked there, and
// empty buckets are pruned. Buckets are keyed by the packed coordinate
// itself: the pack is unique per cell, so a lookup can never return a
// foreign cell's entities.
type spatialIndex struct {
	buckets map[int64]map[uint64]struct{}
	// reverse maps entity id -> packed GridCoord. Ids are dense
	// monotonic integers internally, so an int64->int64 table serves
	// the hot Attach/Detach path.
	reverse *intintmap.Map
}

func newSpatialIndex() *spatialIndex {
	return &spatialIndex{
		buckets: make(map[int64]map[uint64]struct{}),
		reverse: intintmap.New(64, 0.6),
	}
}

// Attach inserts id into the bucket for pos, removing it from any
// previous bucket it occupied.
func (s *spatialIndex) Attach(id uint64, pos GridCoord) {
	if packed, ok := s.reverse.Get(int64(id)); ok {
		if packed == pos.pack() {
			return
		}
		s.removeFromBucket(id, packed)
	}
	k := pos.pack()
	bucket, ok := s.buckets[k]
	if !ok {
		bucket = make(map[uint64]struct{}, 4)
		s.buckets[k] = bucket
	}
	bucket[id] = struct{}{}
	s.reverse.Put(int64(id), pos.pack())
}

// Detach removes id from its current bucket. It is a no-op if id is
// not tracked.
func (s *spatialIndex) Detach(id uint64) {
	packed, ok := s.reverse.Get(int64(id))
	if !ok {
		return
	}
	s.removeFromBucket(id, packed)
	s.reverse.Del(int64(id))
}

func (s *spatialIndex) removeFromBucket(id uint64, k int64) {
	bucket, ok := s.buckets[k]
	if !ok {
		return
	}
	delete(bucket, id)
	if len(bucket) == 0 {
		delete(s.buckets, k)
	}
}

// At returns the ids occupying pos in ascending id order, or nil if the
// cell is empty. A deterministic order matters here even though the
// scheduler's own traversal order comes from insertion order, not this:
// callers outside a tick (tests, external collaborators) observe At
// directly and must see a stable result across calls.
func (s *spatialIndex) At(pos GridCoord) []uint64 {
	bucket, ok := s.buckets[pos.pack()]
	if !ok || len(bucket) == 0 {
		return nil
	}
	return sliceutil.SortedKeys(bucket)
}

// clone returns a deep, independent copy of the index, used by the
// snapshot builder.
func (s *spatialIndex) clone() *spatialIndex {
	out := &spatialIndex{
		buckets: make(map[int64]map[uint64]struct{}, len(s.buckets)),
		reverse: intintmap.New(64, 0.6),
	}
	for k, bucket := range s.buckets {
		cp := make(map[uint64]struct{}, len(bucket))
		for id := range bucket {
			cp[id] = struct{}{}
		}
		out.buckets[k] = cp
	}
	for kv := range s.reverse.Items() {
		out.reverse.Put(kv[0], kv[1])
	}
	return out
}

func unpack(packed int64) GridCoord {
	u := uint64(packed)
	return GridCoord{X: int(int32(u >> 32)), Y: int(int32(u))}
}
