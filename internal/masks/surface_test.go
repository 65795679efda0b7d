package masks

import (
	"math"
	"testing"

	"github.com/banshee-data/bulksolvent/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

func fragmentSites(t *testing.T) []Site {
	t.Helper()
	frac, radii := testutil.Fragment()
	sites, err := SitesFromArrays(frac, radii)
	require.NoError(t, err)
	return sites
}

func countState(g *Grid, s CellState) int {
	return g.Count(func(c Cell) bool { return c.State == s })
}

// A single atom on a grid point of a 20 Å P1 cell sampled at 0.5 Å. Its core
// (1.6 Å) and cut (2.9 Å) spheres have no grid points on their boundaries.
func TestComputeAccessibleSurface_SingleAtom(t *testing.T) {
	cell := testutil.CubicCell(t, 20)
	m := newTestMask(t, cell, "P1", [3]int{40, 40, 40}, 1.3, 0)
	atom := Site{r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, 1.6}

	m.MaskASU()
	nSolvent := m.ComputeAccessibleSurface([]Site{atom})

	g := m.Grid()
	assert.Equal(t, 147, countState(g, Excluded))
	assert.Equal(t, 799-147, countState(g, Tentative))
	assert.Equal(t, 64000-147, nSolvent)
	assert.InDelta(t, 1-147.0/64000, m.AccessibleSurfaceFraction(), 1e-12)
}

func TestCompute_SingleAtomMaskVolume(t *testing.T) {
	cell := testutil.CubicCell(t, 20)
	m := newTestMask(t, cell, "P1", [3]int{40, 40, 40}, 1.3, 0)
	require.NoError(t, m.Compute([]Site{{r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, 1.6}}))

	assert.Equal(t, 1, m.Stats().ASUAtoms)
	assert.Equal(t, 0, countState(m.Grid(), Tentative))
	assert.Equal(t, m.AccessibleSurfaceFraction(), m.ContactSurfaceFraction())

	// the excluded region is the probe-inflated sphere
	full := m.FullCellMask()
	mean := floats.Sum(full) / float64(len(full))
	sphere := 4.0 / 3 * math.Pi * math.Pow(2.9, 3)
	assert.InDelta(t, 1-sphere/cell.Volume(), mean, 1e-3)
	assert.InDelta(t, 1-799.0/64000, mean, 1e-12)
}

func TestCompute_SingleAtomContact(t *testing.T) {
	cell := testutil.CubicCell(t, 20)
	m := newTestMask(t, cell, "P1", [3]int{40, 40, 40}, 1.3, 1.3)
	require.NoError(t, m.Compute([]Site{{r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}, 1.6}}))

	g := m.Grid()
	excluded := countState(g, Excluded)
	assert.Equal(t, 171, excluded)
	assert.Equal(t, 0, countState(g, Tentative))
	assert.InDelta(t, 1-171.0/64000, m.ContactSurfaceFraction(), 1e-12)
	assert.Less(t, m.ContactSurfaceFraction(), m.AccessibleSurfaceFraction())
}

func TestComputeContactSurface_ReadsSnapshot(t *testing.T) {
	cell := testutil.CubicCell(t, 10)
	// 1.2 Å on a 1 Å grid reaches the six face neighbours only
	m := newTestMask(t, cell, "P1", [3]int{10, 10, 10}, 1.0, 1.2)
	require.Len(t, m.Neighbors().Offsets, 6)

	g := m.Grid()
	for i := range g.Cells {
		g.Cells[i] = Cell{State: Excluded, Mult: 1}
	}
	g.Set([3]int{0, 0, 0}, Cell{State: Solvent, Mult: 1})
	for k := 1; k <= 4; k++ {
		g.Set([3]int{0, 0, k}, Cell{State: Tentative, Mult: 1})
	}

	m.ComputeContactSurface()

	assert.Equal(t, Solvent, g.At([3]int{0, 0, 1}).State)
	for k := 2; k <= 4; k++ {
		assert.Equal(t, Excluded, g.At([3]int{0, 0, k}).State, "cell z=%d must not chain off a confirmed neighbour", k)
	}
	assert.InDelta(t, 2.0/1000, m.ContactSurfaceFraction(), 1e-12)
}

func TestComputeContactSurface_Idempotent(t *testing.T) {
	cell := testutil.CubicCell(t, 30)
	m := newTestMask(t, cell, "P212121", [3]int{20, 20, 20}, 1.1, 0.9)
	require.NoError(t, m.Compute(fragmentSites(t)))

	before := m.Grid().Clone()
	fraction := m.ContactSurfaceFraction()
	m.ComputeContactSurface()

	assert.Equal(t, before.Cells, m.Grid().Cells)
	assert.Equal(t, fraction, m.ContactSurfaceFraction())
}

func TestCompute_ContactNeverExceedsAccessible(t *testing.T) {
	cell := testutil.CubicCell(t, 30)
	sites := fragmentSites(t)
	for _, shrink := range []float64{0, 0.5, 1.0, 1.5} {
		m := newTestMask(t, cell, "P212121", [3]int{20, 20, 20}, 1.1, shrink)
		require.NoError(t, m.Compute(sites))

		acc, con := m.AccessibleSurfaceFraction(), m.ContactSurfaceFraction()
		assert.LessOrEqual(t, con, acc, "shrink %g", shrink)
		assert.GreaterOrEqual(t, con, 0.0)
		assert.LessOrEqual(t, acc, 1.0)
		if shrink == 0 {
			assert.Equal(t, acc, con)
		}
		assert.Equal(t, 0, countState(m.Grid(), Tentative), "shrink %g", shrink)
	}
}

func TestCompute_FullCellMaskIsSymmetric(t *testing.T) {
	sites := fragmentSites(t)
	for symbol, grids := range compatibleGrids {
		t.Run(symbol, func(t *testing.T) {
			n := grids[0]
			cell := testutil.CubicCell(t, 15)
			m := newTestMask(t, cell, symbol, n, 1.0, 0.8)
			require.NoError(t, m.Compute(sites))

			g := m.Grid()
			full := m.FullCellMask()
			for idx, v := range full {
				p := g.Point(idx)
				for _, op := range m.GridOps() {
					require.Equal(t, v, full[g.Index(op.ApplyWrapped(p))], "point %v", p)
				}
			}
		})
	}
}

func TestCompute_RejectsBadSites(t *testing.T) {
	cell := testutil.CubicCell(t, 20)
	m := newTestMask(t, cell, "P1", [3]int{10, 10, 10}, 1.0, 0.5)

	assert.Error(t, m.Compute([]Site{{r3.Vec{X: 0.5}, -1}}))
	assert.Error(t, m.Compute([]Site{{r3.Vec{X: math.NaN()}, 1}}))
	assert.Error(t, m.Compute([]Site{{r3.Vec{Z: math.Inf(1)}, 1}}))
	assert.NoError(t, m.Compute(nil))
	assert.Equal(t, 1.0, m.AccessibleSurfaceFraction())
	assert.Equal(t, 1.0, m.ContactSurfaceFraction())
}

func TestSymmetryFraction(t *testing.T) {
	assert.Equal(t, 1.0, symmetryFraction(100, 100, 4))
	assert.InDelta(t, 0.6, symmetryFraction(100, 90, 4), 1e-12)
	assert.Equal(t, 0.0, symmetryFraction(100, 70, 4), "overcounted exclusions clamp to zero")
}

func TestSolventData_CountsExpandedMask(t *testing.T) {
	cell := testutil.CubicCell(t, 15)
	m := newTestMask(t, cell, "P21", [3]int{10, 10, 10}, 1.0, 0.8)
	require.NoError(t, m.Compute(fragmentSites(t)))

	g := m.Grid()
	data := m.SolventData()
	require.Len(t, data, g.Size())

	var total int
	for idx, v := range data {
		p := g.Point(idx)
		assert.Equal(t, v > 0, m.IsSolvent(p), "point %v", p)
		total += int(v)
	}
	// each owned solvent point stands for Mult points of the cell
	assert.Equal(t, floats.Sum(m.FullCellMask()), float64(total))

	s := m.Stats()
	assert.Equal(t, g.N, s.GridSize)
	assert.Equal(t, 2, s.OrderZ)
	assert.Positive(t, s.ASUAtoms)
	assert.Equal(t, g.Count(Cell.IsSolvent), s.SolventCells)
	assert.LessOrEqual(t, s.SolventCells, s.OwnedCells)
	assert.Equal(t, m.ContactSurfaceFraction(), s.ContactFraction)
}
