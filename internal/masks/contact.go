package masks

// ComputeContactSurface resolves Tentative points. With a zero shrink radius
// they all become Excluded and the contact fraction equals the accessible one.
// Otherwise a Tentative point is confirmed as Solvent when a point within the
// shrink radius was Solvent before the pass began, and Excluded when none was.
// The pass reads a snapshot, so the result does not depend on visiting order.
func (m *AtomMask) ComputeContactSurface() {
	g := m.grid
	if m.shrinkRadius == 0 {
		for i := range g.Cells {
			if g.Cells[i].State == Tentative {
				g.Cells[i].State = Excluded
			}
		}
		m.contactFraction = m.accessibleFraction
		tracef("contact_surface: zero shrink radius, fraction %.4f", m.contactFraction)
		return
	}

	snapshot := g.Clone()
	var confirmed, rejected int
	for idx, c := range snapshot.Cells {
		if c.State != Tentative {
			continue
		}
		if m.neighbors.AnySolvent(snapshot, snapshot.Point(idx)) {
			g.Cells[idx].State = Solvent
			confirmed++
		} else {
			g.Cells[idx].State = Excluded
			rejected++
		}
	}

	nSolvent := g.Size() - g.Count(func(c Cell) bool { return c.Owned() && c.State != Solvent })
	m.contactFraction = symmetryFraction(g.Size(), nSolvent, len(m.gridOps))
	tracef("contact_surface: %d confirmed, %d rejected, %d neighbours, fraction %.4f",
		confirmed, rejected, len(m.neighbors.Offsets), m.contactFraction)
}
