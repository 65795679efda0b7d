package masks

import (
	"math"

	"github.com/banshee-data/bulksolvent/internal/crystal"
)

// ShrinkNeighbors lists the grid offsets closer than Radius under the cell
// metric. The zero offset is not included.
type ShrinkNeighbors struct {
	Radius  float64
	Offsets [][3]int
	// Extent bounds |offset_i| on each axis; it is also how far the ASU box is
	// expanded so every neighbour of an ASU point is rasterised.
	Extent [3]int
}

// NewShrinkNeighbors builds the offset table for radius on an n grid.
func NewShrinkNeighbors(cell crystal.UnitCell, n [3]int, radius float64) ShrinkNeighbors {
	sn := ShrinkNeighbors{Radius: radius}
	if radius <= 0 {
		return sn
	}
	recip := cell.ReciprocalLengths()
	for i := 0; i < 3; i++ {
		sn.Extent[i] = int(math.Ceil(radius * recip[i] * float64(n[i])))
	}
	gm := cell.GridMetric(n)
	r2 := radius * radius
	e := sn.Extent
	for i := -e[0]; i <= e[0]; i++ {
		for j := -e[1]; j <= e[1]; j++ {
			for k := -e[2]; k <= e[2]; k++ {
				if i == 0 && j == 0 && k == 0 {
					continue
				}
				if gm.Distance2(float64(i), float64(j), float64(k)) < r2 {
					sn.Offsets = append(sn.Offsets, [3]int{i, j, k})
				}
			}
		}
	}
	return sn
}

// AnySolvent reports whether any neighbour of p in g is in the Solvent state.
func (sn ShrinkNeighbors) AnySolvent(g *Grid, p [3]int) bool {
	for _, off := range sn.Offsets {
		q := [3]int{p[0] + off[0], p[1] + off[1], p[2] + off[2]}
		if g.At(q).State == Solvent {
			return true
		}
	}
	return false
}
