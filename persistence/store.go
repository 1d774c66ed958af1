// Package persistence is a save-slot store for world.State snapshots.
// It never uses anything from world beyond the validated public
// contract (world.State/EncodeState/DecodeState): persistence sits
// behind the core's published interfaces rather than reaching into
// its internals.
package persistence

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/df-mc/goleveldb/leveldb"
	"github.com/klauspost/compress/zstd"

	"github.com/conveyorsim/conveyor/kinds"
	"github.com/conveyorsim/conveyor/world"
)

// gob needs every concrete type that might sit behind an Entity's
// opaque State (an any) registered up front; persistence is the one
// place that cost is paid, since world itself never interprets State.
func init() {
	gob.Register(&kinds.ExtractorState{})
	gob.Register(&kinds.BeltState{})
	gob.Register(&kinds.InserterState{})
	gob.Register(&kinds.SmelterState{})
	gob.Register(&kinds.ChestState{})
	gob.Register(&kinds.AssemblerState{})
	gob.Register(&kinds.PowerSourceState{})
}

// Store is a save-slot store backed by LevelDB. Each slot's payload is
// compressed via zstd and prefixed with an xxhash checksum of the
// uncompressed bytes, verified again on load so a corrupted slot is
// rejected rather than decoded into a half-broken world.
type Store struct {
	db      *leveldb.DB
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Open opens (creating if necessary) a Store at dir.
func Open(dir string) (*Store, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("persistence: open store: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("persistence: create encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		enc.Close()
		return nil, fmt.Errorf("persistence: create decoder: %w", err)
	}
	return &Store{db: db, encoder: enc, decoder: dec}, nil
}

// Close releases the store's underlying resources.
func (s *Store) Close() error {
	s.decoder.Close()
	_ = s.encoder.Close()
	return s.db.Close()
}

// Save encodes w's current state and writes it to slot: an 8-byte
// xxhash of the encoded payload, followed by the zstd-compressed
// payload.
func (s *Store) Save(slot string, w *world.World) error {
	st := world.EncodeState(w)
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(st); err != nil {
		return fmt.Errorf("persistence: encode slot %q: %w", slot, err)
	}
	raw := buf.Bytes()
	payload := make([]byte, 8, 8+len(raw))
	binary.LittleEndian.PutUint64(payload, xxhash.Sum64(raw))
	payload = s.encoder.EncodeAll(raw, payload)
	if err := s.db.Put([]byte(slot), payload, nil); err != nil {
		return fmt.Errorf("persistence: write slot %q: %w", slot, err)
	}
	return nil
}

// Load reads slot, verifies its checksum, decompresses and decodes it,
// and builds a fresh World from the validated payload via
// world.DecodeState.
func (s *Store) Load(slot string, registry *world.EntityRegistry, resourceMap world.ResourceMap) (*world.World, error) {
	stored, err := s.db.Get([]byte(slot), nil)
	if err != nil {
		return nil, fmt.Errorf("persistence: read slot %q: %w", slot, err)
	}
	if len(stored) < 8 {
		return nil, fmt.Errorf("persistence: slot %q: payload truncated", slot)
	}
	raw, err := s.decoder.DecodeAll(stored[8:], nil)
	if err != nil {
		return nil, fmt.Errorf("persistence: decompress slot %q: %w", slot, err)
	}
	if xxhash.Sum64(raw) != binary.LittleEndian.Uint64(stored[:8]) {
		return nil, fmt.Errorf("persistence: slot %q: checksum mismatch", slot)
	}
	var st world.State
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&st); err != nil {
		return nil, fmt.Errorf("persistence: decode slot %q: %w", slot, err)
	}
	w, err := world.DecodeState(&st, registry, resourceMap)
	if err != nil {
		return nil, fmt.Errorf("persistence: validate slot %q: %w", slot, err)
	}
	return w, nil
}

// Delete removes slot, if present.
func (s *Store) Delete(slot string) error {
	if err := s.db.Delete([]byte(slot), nil); err != nil {
		return fmt.Errorf("persistence: delete slot %q: %w", slot, err)
	}
	return nil
}

// ErrNotFound is re-exported so callers can match on it with errors.Is
// without importing goleveldb directly.
var ErrNotFound = leveldb.ErrNotFound
