package world

import "testing"

func TestItemKindValidity(t *testing.T) {
	for _, k := range []ItemKind{ItemIronOre, ItemIronPlate, ItemIronGear, ItemCoal, ItemWood} {
		if !k.Valid() {
			t.Fatalf("core item kind %q reported invalid", k)
		}
	}
	if ItemKind("uranium").Valid() {
		t.Fatalf("unknown item kind reported valid")
	}
}

func TestGetAllEntitiesOrdered(t *testing.T) {
	w := newTestWorld(t, 8, 8)
	var want []string
	for x := 0; x < 4; x++ {
		id, err := w.AddEntity("marker", EntityInit{Pos: GridCoord{x, 0}})
		if err != nil {
			t.Fatalf("AddEntity: %v", err)
		}
		want = append(want, id)
	}
	all := w.GetAllEntities()
	if len(all) != len(want) {
		t.Fatalf("entity count = %d, want %d", len(all), len(want))
	}
	for i, e := range all {
		if e.ID != want[i] {
			t.Fatalf("entity order = %v, want insertion order %v", all, want)
		}
	}
}

func TestGetPlacementSnapshot(t *testing.T) {
	w := newTestWorld(t, 9, 7)
	if _, err := w.AddEntity("marker", EntityInit{Pos: GridCoord{1, 1}}); err != nil {
		t.Fatalf("AddEntity: %v", err)
	}
	stepTicks(t, w, 2)
	snap := w.GetPlacementSnapshot()
	if snap.TickCount != 2 || snap.EntityCount != 1 || snap.Width != 9 || snap.Height != 7 || snap.Paused {
		t.Fatalf("placement snapshot = %+v", snap)
	}
}

func TestResourceMapQueries(t *testing.T) {
	m := NewGridResourceMap(4, 4)
	m.SetOre(GridCoord{1, 1}, 250)
	m.SetTree(GridCoord{2, 2})
	if !m.IsOre(GridCoord{1, 1}) || m.IsOre(GridCoord{0, 0}) {
		t.Fatalf("ore query wrong")
	}
	if !m.IsTree(GridCoord{2, 2}) || m.IsCoal(GridCoord{2, 2}) {
		t.Fatalf("tree/coal query wrong")
	}
	if m.ResourceAmountAt(GridCoord{1, 1}) != 250 {
		t.Fatalf("amount query wrong")
	}
	if m.IsWithinBounds(GridCoord{4, 0}) || !m.IsWithinBounds(GridCoord{3, 3}) {
		t.Fatalf("bounds query wrong")
	}
}
