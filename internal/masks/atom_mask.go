package masks

import (
	"fmt"
	"math"

	"github.com/banshee-data/bulksolvent/internal/crystal"
)

// AtomMask computes a bulk-solvent mask for one cell, space group and grid.
// It is not safe for concurrent use.
type AtomMask struct {
	cell          crystal.UnitCell
	group         crystal.SpaceGroup
	solventRadius float64
	shrinkRadius  float64

	grid      *Grid
	gridOps   []GridSymOp
	neighbors ShrinkNeighbors
	asuAtoms  []Site
	nCopies   int

	accessibleFraction float64
	contactFraction    float64
}

// NewAtomMask prepares a mask on an explicit n grid.
func NewAtomMask(cell crystal.UnitCell, sg crystal.SpaceGroup, n [3]int, solventRadius, shrinkTruncationRadius float64) (*AtomMask, error) {
	if err := sg.Validate(); err != nil {
		return nil, err
	}
	if sg.OrderZ() > math.MaxUint8 {
		return nil, fmt.Errorf("space group %s: order_z %d exceeds %d", sg.Symbol, sg.OrderZ(), math.MaxUint8)
	}
	if !(solventRadius >= 0) || !(shrinkTruncationRadius >= 0) {
		return nil, fmt.Errorf("radii must be non-negative, got solvent %g shrink %g", solventRadius, shrinkTruncationRadius)
	}
	grid, err := NewGrid(n)
	if err != nil {
		return nil, err
	}
	ops, err := NewGridSymOps(sg, n)
	if err != nil {
		opsf("rejected grid %v for %s: %v", n, sg.Symbol, err)
		return nil, err
	}
	return &AtomMask{
		cell:          cell,
		group:         sg,
		solventRadius: solventRadius,
		shrinkRadius:  shrinkTruncationRadius,
		grid:          grid,
		gridOps:       ops,
		neighbors:     NewShrinkNeighbors(cell, n, shrinkTruncationRadius),
	}, nil
}

// NewAtomMaskFromResolution derives the grid from resolution and cfg.
func NewAtomMaskFromResolution(cell crystal.UnitCell, sg crystal.SpaceGroup, resolution float64, cfg *MaskConfig) (*AtomMask, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mask config: %w", err)
	}
	if !(resolution > 0) {
		return nil, fmt.Errorf("resolution must be positive, got %g", resolution)
	}
	n, err := DeriveGridSize(cell, sg, cfg.GridStep(resolution))
	if err != nil {
		return nil, err
	}
	return NewAtomMask(cell, sg, n, cfg.SolventRadius, cfg.ShrinkTruncationRadius)
}

// Compute runs the full pipeline for sites: symmetry expansion, ASU
// rasterisation, accessible surface, contact surface.
func (m *AtomMask) Compute(sites []Site) error {
	for i, s := range sites {
		if !(s.Radius >= 0) {
			return fmt.Errorf("site %d: radius must be non-negative, got %g", i, s.Radius)
		}
		if !finite(s.Frac.X) || !finite(s.Frac.Y) || !finite(s.Frac.Z) {
			return fmt.Errorf("site %d: non-finite coordinate %v", i, s.Frac)
		}
	}

	m.AtomsToASU(sites)
	m.MaskASU()
	m.ComputeAccessibleSurface(m.asuAtoms)
	m.ComputeContactSurface()

	m.nCopies = len(m.asuAtoms)
	m.asuAtoms = m.asuAtoms[:0]
	diagf("compute: %s %v grid %v, %d sites, %d copies, accessible %.4f, contact %.4f",
		m.group.Symbol, m.cell, m.grid.N, len(sites), m.nCopies, m.accessibleFraction, m.contactFraction)
	return nil
}

// Grid returns the mask grid. Callers must not modify it.
func (m *AtomMask) Grid() *Grid { return m.grid }

// GridOps returns the symmetry operations on the mask grid.
func (m *AtomMask) GridOps() []GridSymOp { return m.gridOps }

// Neighbors returns the shrink neighbour table.
func (m *AtomMask) Neighbors() ShrinkNeighbors { return m.neighbors }

// ASUAtoms returns the working atom list from the last AtomsToASU call. Compute
// clears it once carving is done.
func (m *AtomMask) ASUAtoms() []Site { return m.asuAtoms }

// AccessibleSurfaceFraction returns the fraction set by ComputeAccessibleSurface.
func (m *AtomMask) AccessibleSurfaceFraction() float64 { return m.accessibleFraction }

// ContactSurfaceFraction returns the fraction set by ComputeContactSurface.
func (m *AtomMask) ContactSurfaceFraction() float64 { return m.contactFraction }

// IsSolvent reports whether grid point p is ASU-owned solvent.
func (m *AtomMask) IsSolvent(p [3]int) bool { return m.grid.At(p).IsSolvent() }

// SolventData returns, for every grid point, the ASU multiplicity of solvent
// points and 0 everywhere else (protein, tentative, marks, outside the ASU).
func (m *AtomMask) SolventData() []int32 {
	out := make([]int32, m.grid.Size())
	for i, c := range m.grid.Cells {
		if c.IsSolvent() {
			out[i] = int32(c.Mult)
		}
	}
	return out
}

// FullCellMask expands the ASU solvent points over the space group into a 0/1
// mask of the whole unit cell.
func (m *AtomMask) FullCellMask() []float64 {
	g := m.grid
	out := make([]float64, g.Size())
	for idx, c := range g.Cells {
		if !c.IsSolvent() {
			continue
		}
		p := g.Point(idx)
		for _, op := range m.gridOps {
			out[g.Index(op.ApplyWrapped(p))] = 1
		}
	}
	return out
}

// MaskStats summarises the grid after a computation.
type MaskStats struct {
	GridSize           [3]int
	OrderZ             int
	ASUAtoms           int
	OwnedCells         int
	SolventCells       int
	MarkCells          int
	AccessibleFraction float64
	ContactFraction    float64
}

// Stats counts the current grid.
func (m *AtomMask) Stats() MaskStats {
	s := MaskStats{
		GridSize:           m.grid.N,
		OrderZ:             len(m.gridOps),
		ASUAtoms:           m.nCopies,
		AccessibleFraction: m.accessibleFraction,
		ContactFraction:    m.contactFraction,
	}
	for _, c := range m.grid.Cells {
		switch {
		case c.Owned():
			s.OwnedCells++
			if c.State == Solvent {
				s.SolventCells++
			}
		case c.IsMark():
			s.MarkCells++
		}
	}
	return s
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
