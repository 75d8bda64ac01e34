package marquee

import "math"

// TileBuffer is the number of tiles added beyond path coverage so a tile is always inside
// or adjacent to the visible path, including mid-wrap during fast drags.
const TileBuffer = 2

// TileCount returns how many copies of the text cover pathLength continuously.
func TileCount(spacing, pathLength float64) int {
	if spacing <= 0 || math.IsNaN(spacing) || math.IsInf(spacing, 0) {
		return 0
	}
	return int(math.Ceil(nonNegative(pathLength)/spacing)) + TileBuffer
}

// Tiles holds the offsets of the rendered copies of the text.
type Tiles struct {
	spacing float64
	offsets []float64
}

// Rebuild discards the current layout and lays tiles out at i*spacing. Each offset is then
// wrapped into [-spacing, totalWidth-spacing), so the last tile lands at -spacing, which is the
// same ribbon position modulo totalWidth.
func (t *Tiles) Rebuild(spacing, pathLength float64) {
	n := TileCount(spacing, pathLength)
	t.spacing = spacing
	if n == 0 {
		t.spacing = 0
		t.offsets = nil
		return
	}
	t.offsets = make([]float64, n)
	for i := range t.offsets {
		t.offsets[i] = t.wrap(float64(i) * spacing)
	}
}

// ApplyDelta shifts every tile by dx and wraps each one independently.
func (t *Tiles) ApplyDelta(dx float64) {
	if len(t.offsets) == 0 || math.IsNaN(dx) || math.IsInf(dx, 0) {
		return
	}
	for i, x := range t.offsets {
		t.offsets[i] = t.wrap(x + dx)
	}
}

// wrap moves x back into [-spacing, totalWidth-spacing). One correction covers any delta
// smaller than a full ribbon period; larger jumps are reduced modulo totalWidth.
func (t *Tiles) wrap(x float64) float64 {
	total := t.TotalWidth()
	if total == 0 {
		return x
	}
	if x < -t.spacing {
		x += total
	} else if x >= total-t.spacing {
		x -= total
	}
	if x < -t.spacing || x >= total-t.spacing {
		x = math.Mod(x+t.spacing, total)
		if x < 0 {
			x += total
		}
		x -= t.spacing
	}
	return x
}

// Len returns the number of tiles.
func (t *Tiles) Len() int {
	return len(t.offsets)
}

// Spacing returns the advance between adjacent tiles.
func (t *Tiles) Spacing() float64 {
	return t.spacing
}

// TotalWidth returns tileCount*spacing, the period of the ribbon.
func (t *Tiles) TotalWidth() float64 {
	return float64(len(t.offsets)) * t.spacing
}

// Offsets returns a copy of the current tile offsets in render order.
func (t *Tiles) Offsets() []float64 {
	out := make([]float64, len(t.offsets))
	copy(out, t.offsets)
	return out
}

// Offset returns the offset of tile i.
func (t *Tiles) Offset(i int) float64 {
	return t.offsets[i]
}
