package model

import "testing"

func TestDetectOffcuts_SingleRemnant(t *testing.T) {
	cb := CommittedBoard{
		Board: NewBoardType("", 200, 200, 1),
		Index: 1,
		Placements: []Placement{
			{X: 0, Y: 0, Width: 200, Height: 100},
			{X: 0, Y: 100, Width: 100, Height: 100},
		},
	}

	offcuts := DetectOffcuts(cb)
	if len(offcuts) != 1 {
		t.Fatalf("expected 1 offcut, got %d: %+v", len(offcuts), offcuts)
	}
	o := offcuts[0]
	if o.X != 100 || o.Y != 100 || o.Width != 100 || o.Height != 100 {
		t.Errorf("unexpected offcut: %+v", o)
	}
	if o.BoardIndex != 1 {
		t.Errorf("expected board index 1, got %d", o.BoardIndex)
	}
	if o.ID == "" {
		t.Error("expected non-empty offcut ID")
	}
	if o.Area() != 10000 {
		t.Errorf("expected area 10000, got %d", o.Area())
	}
}

func TestDetectOffcuts_FullyCoveredBoard(t *testing.T) {
	cb := CommittedBoard{
		Board: NewBoardType("", 100, 100, 1),
		Index: 1,
		Placements: []Placement{
			{X: 0, Y: 0, Width: 100, Height: 100},
		},
	}
	if offcuts := DetectOffcuts(cb); len(offcuts) != 0 {
		t.Errorf("expected no offcuts, got %+v", offcuts)
	}
}

func TestDetectOffcuts_SmallRemnantsAreWaste(t *testing.T) {
	// The 30 mm strip above the placement is below MinOffcutDimension.
	cb := CommittedBoard{
		Board: NewBoardType("", 100, 100, 1),
		Index: 1,
		Placements: []Placement{
			{X: 0, Y: 0, Width: 100, Height: 70},
		},
	}
	if offcuts := DetectOffcuts(cb); len(offcuts) != 0 {
		t.Errorf("expected no offcuts, got %+v", offcuts)
	}
}

func TestDetectOffcuts_EmptyBoardIsOneBigOffcut(t *testing.T) {
	cb := CommittedBoard{
		Board: NewBoardType("", 600, 300, 1),
		Index: 2,
	}
	offcuts := DetectOffcuts(cb)
	if len(offcuts) != 1 {
		t.Fatalf("expected 1 offcut, got %d", len(offcuts))
	}
	o := offcuts[0]
	if o.X != 0 || o.Y != 0 || o.Width != 600 || o.Height != 300 {
		t.Errorf("unexpected offcut: %+v", o)
	}
	if o.BoardIndex != 2 {
		t.Errorf("expected board index 2, got %d", o.BoardIndex)
	}
}

func TestDetectOffcuts_SortedByAreaDescending(t *testing.T) {
	// A corner placement leaves an L shape covered by two overlapping
	// maximal strips of different size.
	cb := CommittedBoard{
		Board: NewBoardType("", 300, 200, 1),
		Index: 1,
		Placements: []Placement{
			{X: 0, Y: 0, Width: 100, Height: 100},
		},
	}
	offcuts := DetectOffcuts(cb)
	if len(offcuts) != 2 {
		t.Fatalf("expected 2 offcuts, got %d: %+v", len(offcuts), offcuts)
	}
	if offcuts[0].Area() < offcuts[1].Area() {
		t.Errorf("offcuts not sorted by area: %+v", offcuts)
	}
	// Right strip 200x200, top strip 300x100.
	if offcuts[0].X != 100 || offcuts[0].Width != 200 || offcuts[0].Height != 200 {
		t.Errorf("unexpected largest offcut: %+v", offcuts[0])
	}
}

func TestSubtractZone(t *testing.T) {
	base := zone{0, 0, 100, 100}

	// Disjoint: base survives untouched.
	got := subtractZone(base, zone{200, 200, 10, 10})
	if len(got) != 1 || got[0] != base {
		t.Errorf("expected base unchanged, got %+v", got)
	}

	// Full cover: nothing remains.
	if got := subtractZone(base, base); len(got) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}

	// Centre hole: four overlapping strips.
	got = subtractZone(base, zone{25, 25, 50, 50})
	if len(got) != 4 {
		t.Errorf("expected 4 strips, got %d: %+v", len(got), got)
	}
}

func TestPruneContainedZones(t *testing.T) {
	zones := []zone{
		{0, 0, 100, 100},
		{10, 10, 20, 20},
		{0, 0, 100, 100},
	}
	kept := pruneContainedZones(zones)
	if len(kept) != 1 {
		t.Fatalf("expected 1 zone, got %d: %+v", len(kept), kept)
	}
	if kept[0] != (zone{0, 0, 100, 100}) {
		t.Errorf("unexpected zone kept: %+v", kept[0])
	}
}
