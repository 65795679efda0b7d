package masks

import "math"

// ComputeAccessibleSurface carves every atom of atoms out of the rasterised
// grid. Points closer than the atom radius become Excluded; Solvent points
// closer than radius+solvent_radius become Tentative. It returns the running
// solvent count (all grid points minus ASU points excluded here) and sets the
// accessible surface fraction from it.
func (m *AtomMask) ComputeAccessibleSurface(atoms []Site) int {
	g := m.grid
	n := g.N
	gm := m.cell.GridMetric(n)
	recip := m.cell.ReciprocalLengths()
	nSolvent := g.Size()

	for _, a := range atoms {
		cutoff := a.Radius + m.solventRadius
		if cutoff <= 0 {
			continue
		}
		cut2 := cutoff * cutoff
		r2 := a.Radius * a.Radius
		hasCore := a.Radius > 0

		c := [3]float64{a.Frac.X * float64(n[0]), a.Frac.Y * float64(n[1]), a.Frac.Z * float64(n[2])}
		var lo, hi [3]int
		for i := 0; i < 3; i++ {
			h := cutoff * recip[i] * float64(n[i])
			lo[i] = int(math.Ceil(c[i] - h))
			hi[i] = int(math.Floor(c[i] + h))
		}

		for i := lo[0]; i <= hi[0]; i++ {
			di := float64(i) - c[0]
			rowI := mod(i, n[0]) * n[1]
			for j := lo[1]; j <= hi[1]; j++ {
				dj := float64(j) - c[1]
				row := (rowI + mod(j, n[1])) * n[2]

				// d2 and its half-derivative along k, stepped one grid point at a time
				dk := float64(lo[2]) - c[2]
				d2 := gm.Distance2(di, dj, dk)
				lin := gm.XZ*di + gm.YZ*dj + gm.ZZ*dk
				kw := mod(lo[2], n[2])
				for k := lo[2]; k <= hi[2]; k++ {
					if d2 < cut2 {
						cell := &g.Cells[row+kw]
						switch {
						case hasCore && d2 < r2:
							if cell.State == Solvent || cell.State == Tentative {
								if cell.Owned() {
									nSolvent--
								}
								cell.State = Excluded
							}
						case cell.State == Solvent:
							cell.State = Tentative
						}
					}
					d2 += 2*lin + gm.ZZ
					lin += gm.ZZ
					if kw++; kw == n[2] {
						kw = 0
					}
				}
			}
		}
	}

	m.accessibleFraction = symmetryFraction(g.Size(), nSolvent, len(m.gridOps))
	tracef("accessible_surface: %d atoms, solvent count %d, fraction %.4f", len(atoms), nSolvent, m.accessibleFraction)
	return nSolvent
}

// symmetryFraction approximates the solvent fraction of the whole cell from
// ASU counts by assuming every excluded ASU point sits on a general position.
// Overcounting on special positions can push the excluded total past nTotal;
// the fraction is then 0.
func symmetryFraction(nTotal, nSolvent, orderZ int) float64 {
	nonSolvent := (nTotal - nSolvent) * orderZ
	if nonSolvent >= nTotal {
		return 0
	}
	return float64(nTotal-nonSolvent) / float64(nTotal)
}
