package masks

import (
	"errors"
	"fmt"

	"github.com/banshee-data/bulksolvent/internal/crystal"
)

// ErrGridIncompatible is returned when a symmetry operation does not map grid
// points onto grid points.
var ErrGridIncompatible = errors.New("grid incompatible with symmetry")

// GridSymOp is a symmetry operation acting on integer grid coordinates,
// p' = M·p + T (mod n).
type GridSymOp struct {
	M [3][3]int
	T [3]int
	n [3]int
}

// NewGridSymOp re-expresses op on an n grid.
func NewGridSymOp(op crystal.SymOp, n [3]int) (GridSymOp, error) {
	g := GridSymOp{n: n}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			num := op.R[i][j] * n[i]
			if num%n[j] != 0 {
				return GridSymOp{}, fmt.Errorf("%w: %s couples axes %d and %d of %v", ErrGridIncompatible, op, i, j, n)
			}
			g.M[i][j] = num / n[j]
		}
		num := op.T[i] * n[i]
		if num%crystal.TDen != 0 {
			return GridSymOp{}, fmt.Errorf("%w: translation of %s is off-grid on axis %d of %v", ErrGridIncompatible, op, i, n)
		}
		g.T[i] = num / crystal.TDen
	}
	return g, nil
}

// NewGridSymOps converts every operation of sg.
func NewGridSymOps(sg crystal.SpaceGroup, n [3]int) ([]GridSymOp, error) {
	ops := make([]GridSymOp, 0, sg.OrderZ())
	for _, op := range sg.Ops {
		g, err := NewGridSymOp(op, n)
		if err != nil {
			return nil, err
		}
		ops = append(ops, g)
	}
	return ops, nil
}

// Apply maps p without reducing it into the grid.
func (g GridSymOp) Apply(p [3]int) [3]int {
	var out [3]int
	for i := 0; i < 3; i++ {
		out[i] = g.T[i] + g.M[i][0]*p[0] + g.M[i][1]*p[1] + g.M[i][2]*p[2]
	}
	return out
}

// ApplyWrapped maps p and reduces the result into the unit cell.
func (g GridSymOp) ApplyWrapped(p [3]int) [3]int {
	out := g.Apply(p)
	for i := 0; i < 3; i++ {
		out[i] = mod(out[i], g.n[i])
	}
	return out
}

// SiteSymmetryOrder counts the operations that fix the in-range point p.
func SiteSymmetryOrder(ops []GridSymOp, p [3]int) int {
	n := 0
	for _, op := range ops {
		if op.ApplyWrapped(p) == p {
			n++
		}
	}
	return n
}
