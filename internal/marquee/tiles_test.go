package marquee

import (
	"math"
	"testing"
)

// checkInvariant fails the test when any tile is outside [-spacing, total-spacing).
func checkInvariant(t *testing.T, offsets []float64, spacing float64) {
	t.Helper()
	total := float64(len(offsets)) * spacing
	for i, x := range offsets {
		if x < -spacing || x >= total-spacing {
			t.Fatalf("tile %d offset %v outside [%v, %v)", i, x, -spacing, total-spacing)
		}
	}
}

// reduce maps x into the invariant range the same way the ribbon period does.
func reduce(x, spacing, total float64) float64 {
	r := math.Mod(x+spacing, total)
	if r < 0 {
		r += total
	}
	return r - spacing
}

func TestTileCount(t *testing.T) {
	tests := []struct {
		spacing    float64
		pathLength float64
		expected   int
	}{
		{20, 100, 7},
		{30, 100, 6},
		{100, 100, 3},
		{150, 100, 3},
		{20, 0, 2},
		{0, 100, 0},
		{-1, 100, 0},
		{math.NaN(), 100, 0},
	}

	for _, test := range tests {
		result := TileCount(test.spacing, test.pathLength)
		if result != test.expected {
			t.Errorf("TileCount(%v, %v) = %d, expected %d", test.spacing, test.pathLength, result, test.expected)
		}
	}
}

func TestTilesCoverPath(t *testing.T) {
	for _, spacing := range []float64{1, 7.5, 20, 33, 99, 250} {
		for _, pathLength := range []float64{0, 1, 100, 1640} {
			var tiles Tiles
			tiles.Rebuild(spacing, pathLength)
			if tiles.TotalWidth() < pathLength+spacing {
				t.Errorf("spacing=%v path=%v: total width %v does not cover path plus one tile",
					spacing, pathLength, tiles.TotalWidth())
			}
			checkInvariant(t, tiles.Offsets(), spacing)
		}
	}
}

func TestTilesRebuildLayout(t *testing.T) {
	var tiles Tiles
	tiles.Rebuild(20, 100)

	expected := []float64{0, 20, 40, 60, 80, 100, -20}
	offsets := tiles.Offsets()
	if len(offsets) != len(expected) {
		t.Fatalf("Expected %d tiles, got %d", len(expected), len(offsets))
	}
	for i := range expected {
		if offsets[i] != expected[i] {
			t.Errorf("tile %d: expected offset %v, got %v", i, expected[i], offsets[i])
		}
	}

	tiles.ApplyDelta(7)
	tiles.Rebuild(20, 100)
	if tiles.Offset(1) != 20 {
		t.Errorf("Rebuild should discard previous positions, tile 1 at %v", tiles.Offset(1))
	}
}

func TestTilesRebuildFrozen(t *testing.T) {
	var tiles Tiles
	tiles.Rebuild(20, 100)
	tiles.Rebuild(0, 100)

	if tiles.Len() != 0 {
		t.Errorf("Expected no tiles for zero spacing, got %d", tiles.Len())
	}
	tiles.ApplyDelta(10)
	if tiles.Len() != 0 {
		t.Error("ApplyDelta on a frozen layout should not create tiles")
	}
}

func TestTilesApplyDeltaWrapsIndividually(t *testing.T) {
	var tiles Tiles
	tiles.Rebuild(20, 100) // 7 tiles, total 140

	tiles.ApplyDelta(-1)
	offsets := tiles.Offsets()
	// The tile at -20 wraps to the far end; all others shift by one.
	expected := []float64{-1, 19, 39, 59, 79, 99, 119}
	for i := range expected {
		if offsets[i] != expected[i] {
			t.Errorf("tile %d: expected %v, got %v", i, expected[i], offsets[i])
		}
	}

	tiles.ApplyDelta(2)
	if got := tiles.Offset(6); got != -19 {
		t.Errorf("tile reaching total-spacing should wrap to -spacing+1, got %v", got)
	}
	checkInvariant(t, tiles.Offsets(), 20)
}

func TestTilesDragExactness(t *testing.T) {
	deltas := []float64{3, -17, 45, 130, -260, 1, 0.5, -0.25, 999, -1234.75, 12}

	var tiles Tiles
	tiles.Rebuild(20, 100)
	initial := tiles.Offsets()
	total := tiles.TotalWidth()

	var sum float64
	for _, d := range deltas {
		tiles.ApplyDelta(d)
		sum += d
		checkInvariant(t, tiles.Offsets(), 20)
	}

	for i, x := range tiles.Offsets() {
		want := reduce(initial[i]+sum, 20, total)
		if math.Abs(x-want) > 1e-9 {
			t.Errorf("tile %d: expected %v after net shift %v, got %v", i, want, sum, x)
		}
	}
}

func TestTilesIgnoreNonFiniteDelta(t *testing.T) {
	var tiles Tiles
	tiles.Rebuild(20, 100)
	before := tiles.Offsets()

	tiles.ApplyDelta(math.NaN())
	tiles.ApplyDelta(math.Inf(1))

	for i, x := range tiles.Offsets() {
		if x != before[i] {
			t.Errorf("tile %d moved on non-finite delta: %v -> %v", i, before[i], x)
		}
	}
}
