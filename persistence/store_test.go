package persistence

import (
	"errors"
	"testing"

	"github.com/conveyorsim/conveyor/kinds"
	"github.com/conveyorsim/conveyor/world"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	registry := kinds.DefaultRegistry()
	w, err := world.CreateWorld(world.CreateOptions{Width: 8, Height: 3}, registry, world.Config{})
	if err != nil {
		t.Fatalf("CreateWorld: %v", err)
	}
	beltID, err := w.AddEntity(world.KindBelt, world.EntityInit{
		Pos: world.GridCoord{X: 2, Y: 1}, Rot: world.East, HasRot: true,
	})
	if err != nil {
		t.Fatalf("AddEntity: %v", err)
	}
	e, _ := w.GetEntity(beltID)
	ore := world.ItemIronOre
	e.State.(*kinds.BeltState).Item = &ore
	for i := 0; i < 30; i++ {
		if err := w.Step(world.TickMS); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	s := openTestStore(t)
	if err := s.Save("slot-1", w); err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored, err := s.Load("slot-1", kinds.DefaultRegistry(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if restored.TickCount() != 30 {
		t.Fatalf("restored tick count = %d, want 30", restored.TickCount())
	}
	re, ok := restored.GetEntity(beltID)
	if !ok {
		t.Fatalf("belt missing after restore")
	}
	if re.Rot != world.East {
		t.Fatalf("belt rot = %v, want east", re.Rot)
	}
	item := re.State.(*kinds.BeltState).Item
	if item == nil || *item != world.ItemIronOre {
		t.Fatalf("belt item = %v, want ore", item)
	}
}

func TestStoreLoadMissingSlot(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Load("absent", kinds.DefaultRegistry(), nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(absent) = %v, want ErrNotFound", err)
	}
}

func TestStoreRejectsCorruptedSlot(t *testing.T) {
	registry := kinds.DefaultRegistry()
	w, err := world.CreateWorld(world.CreateOptions{Width: 4, Height: 4}, registry, world.Config{})
	if err != nil {
		t.Fatalf("CreateWorld: %v", err)
	}
	s := openTestStore(t)
	if err := s.Save("slot", w); err != nil {
		t.Fatalf("Save: %v", err)
	}

	stored, err := s.db.Get([]byte("slot"), nil)
	if err != nil {
		t.Fatalf("read raw slot: %v", err)
	}
	// Flip a checksum bit so the stored payload no longer matches it.
	tampered := append([]byte(nil), stored...)
	tampered[0] ^= 0x01
	if err := s.db.Put([]byte("slot"), tampered, nil); err != nil {
		t.Fatalf("write tampered slot: %v", err)
	}

	if _, err := s.Load("slot", registry, nil); err == nil {
		t.Fatalf("corrupted slot loaded without error")
	}
}

func TestStoreDelete(t *testing.T) {
	registry := kinds.DefaultRegistry()
	w, err := world.CreateWorld(world.CreateOptions{Width: 4, Height: 4}, registry, world.Config{})
	if err != nil {
		t.Fatalf("CreateWorld: %v", err)
	}
	s := openTestStore(t)
	if err := s.Save("slot", w); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete("slot"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Load("slot", registry, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted slot still loads: %v", err)
	}
}
