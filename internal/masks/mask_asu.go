package masks

import (
	"fmt"

	"github.com/banshee-data/bulksolvent/internal/asu"
)

// MaskASU resets the grid and rasterises the asymmetric unit onto it. Cells the
// ASU owns become Solvent with Mult = order_z / site symmetry order; every other
// cell of the box expanded by the shrink extent becomes a mark.
//
// Points on ASU faces may be equivalent to each other; of those, the one with
// the smallest flattened index owns the orbit. MaskASU panics if the owned
// orbits do not tile the cell exactly.
func (m *AtomMask) MaskASU() {
	g := m.grid
	g.Reset()
	n := g.N
	order := len(m.gridOps)
	region := m.group.ASU

	lo, hi := region.GridBox(n)
	elo, ehi, enclosed := region.EnclosedBox(n)
	e := m.neighbors.Extent

	var fast, faces, marks int
	for i := lo[0] - e[0]; i <= hi[0]+e[0]; i++ {
		for j := lo[1] - e[1]; j <= hi[1]+e[1]; j++ {
			for k := lo[2] - e[2]; k <= hi[2]+e[2]; k++ {
				q := g.Wrap([3]int{i, j, k})
				idx := g.Index(q)
				if enclosed && inBox(q, elo, ehi) {
					g.Cells[idx] = Cell{State: Solvent, Mult: uint8(order)}
					fast++
					continue
				}
				if region.WhereIs(q, n) != asu.Outside {
					if mult, owned := m.ownership(q, idx); owned {
						g.Cells[idx] = Cell{State: Solvent, Mult: uint8(mult)}
						faces++
						continue
					}
				}
				if g.Cells[idx].State == Undetermined {
					g.Cells[idx] = Cell{State: Solvent}
					marks++
				}
			}
		}
	}

	var total int
	for _, c := range g.Cells {
		total += int(c.Mult)
	}
	if total != g.Size() {
		panic(fmt.Sprintf("masks: asu %s of %s tiles %d of %d grid points on %v",
			region.Kind, m.group.Symbol, total, g.Size(), n))
	}
	tracef("mask_asu: %v grid, %d enclosed visits, %d face visits, %d marks", n, fast, faces, marks)
}

// ownership reports whether the ASU point q (at flattened idx) represents its
// orbit, and the orbit size.
func (m *AtomMask) ownership(q [3]int, idx int) (int, bool) {
	g := m.grid
	region := m.group.ASU
	order := len(m.gridOps)

	ss := 0
	owner := idx
	for _, op := range m.gridOps {
		r := op.ApplyWrapped(q)
		if r == q {
			ss++
			continue
		}
		if ri := g.Index(r); ri < owner && region.WhereIs(r, g.N) != asu.Outside {
			owner = ri
		}
	}
	if ss == 0 || order%ss != 0 {
		panic(fmt.Sprintf("masks: site symmetry order %d of %v does not divide order_z %d", ss, q, order))
	}
	return order / ss, owner == idx
}

func inBox(p, lo, hi [3]int) bool {
	for i := 0; i < 3; i++ {
		if p[i] < lo[i] || p[i] > hi[i] {
			return false
		}
	}
	return true
}
