package masks

import (
	"errors"
	"fmt"
	"math"
)

// maxGridPoints bounds nx*ny*nz so flattened indices and SolventData fit in int32.
const maxGridPoints = math.MaxInt32

// MarkValue is what Value reports for a mark cell, matching the legacy integer
// encoding where marks sat above any multiplicity.
const MarkValue = 1000

// ErrBadGridSize is returned for non-positive or oversized grid dimensions.
var ErrBadGridSize = errors.New("bad grid size")

// CellState is the classification of one grid point.
type CellState uint8

const (
	// Undetermined is a point the rasteriser never reached.
	Undetermined CellState = iota
	// Solvent is a point outside every atom core that has not been ruled out.
	Solvent
	// Tentative is solvent inside a probe shell, pending the contact pass.
	Tentative
	// Excluded is a point inside an atom (or a tentative point the contact pass rejected).
	Excluded
)

func (s CellState) String() string {
	switch s {
	case Undetermined:
		return "undetermined"
	case Solvent:
		return "solvent"
	case Tentative:
		return "tentative"
	case Excluded:
		return "excluded"
	}
	return fmt.Sprintf("CellState(%d)", uint8(s))
}

// Cell is one grid point. Mult is order_z divided by the site symmetry order
// for points owned by the ASU and 0 otherwise; a Solvent or Tentative cell with
// Mult == 0 is a mark (outside the ASU, inside the shrink expansion).
type Cell struct {
	State CellState
	Mult  uint8
}

// Owned reports whether the ASU owns the cell.
func (c Cell) Owned() bool { return c.Mult > 0 }

// IsMark reports whether the cell is a mark.
func (c Cell) IsMark() bool {
	return c.Mult == 0 && (c.State == Solvent || c.State == Tentative)
}

// IsSolvent reports whether the cell is an ASU-owned solvent point.
func (c Cell) IsSolvent() bool { return c.State == Solvent && c.Mult > 0 }

// Value returns the legacy integer encoding: +mult for solvent, -mult for
// tentative, ±MarkValue for marks, 0 otherwise.
func (c Cell) Value() int {
	v := int(c.Mult)
	if v == 0 {
		v = MarkValue
	}
	switch c.State {
	case Solvent:
		return v
	case Tentative:
		return -v
	}
	return 0
}

// Grid is a periodic 3D array of cells stored row-major with z fastest.
type Grid struct {
	N     [3]int
	Cells []Cell
}

// NewGrid allocates a zero-filled grid.
func NewGrid(n [3]int) (*Grid, error) {
	if err := checkGridDims(n); err != nil {
		return nil, err
	}
	return &Grid{N: n, Cells: make([]Cell, n[0]*n[1]*n[2])}, nil
}

func checkGridDims(n [3]int) error {
	for i, v := range n {
		if v <= 0 {
			return fmt.Errorf("%w: dimension %d is %d", ErrBadGridSize, i, v)
		}
	}
	// guard the product before forming it
	if n[0] > maxGridPoints/n[1] || n[0]*n[1] > maxGridPoints/n[2] {
		return fmt.Errorf("%w: %dx%dx%d exceeds %d points", ErrBadGridSize, n[0], n[1], n[2], maxGridPoints)
	}
	return nil
}

// Size returns nx*ny*nz.
func (g *Grid) Size() int { return len(g.Cells) }

// Index flattens an in-range grid point.
func (g *Grid) Index(p [3]int) int {
	return (p[0]*g.N[1]+p[1])*g.N[2] + p[2]
}

// Point is the inverse of Index.
func (g *Grid) Point(idx int) [3]int {
	k := idx % g.N[2]
	idx /= g.N[2]
	return [3]int{idx / g.N[1], idx % g.N[1], k}
}

// Wrap reduces any integer point into the grid.
func (g *Grid) Wrap(p [3]int) [3]int {
	for i := 0; i < 3; i++ {
		p[i] = mod(p[i], g.N[i])
	}
	return p
}

// At returns the cell at p, wrapping periodically.
func (g *Grid) At(p [3]int) Cell {
	return g.Cells[g.Index(g.Wrap(p))]
}

// Set stores c at p, wrapping periodically.
func (g *Grid) Set(p [3]int, c Cell) {
	g.Cells[g.Index(g.Wrap(p))] = c
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{N: g.N, Cells: make([]Cell, len(g.Cells))}
	copy(out.Cells, g.Cells)
	return out
}

// Reset returns every cell to Undetermined.
func (g *Grid) Reset() {
	clear(g.Cells)
}

// Count returns the number of cells satisfying pred.
func (g *Grid) Count(pred func(Cell) bool) int {
	n := 0
	for _, c := range g.Cells {
		if pred(c) {
			n++
		}
	}
	return n
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
