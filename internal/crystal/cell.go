package crystal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// UnitCell is an immutable unit cell. Lengths are in Ångström, angles in degrees.
type UnitCell struct {
	params [6]float64
	metric *mat.SymDense
	volume float64
	recip  [3]float64 // |a*|, |b*|, |c*|
}

// NewUnitCell builds a cell from its six parameters.
func NewUnitCell(a, b, c, alpha, beta, gamma float64) (UnitCell, error) {
	for i, v := range []float64{a, b, c} {
		if !(v > 0) || math.IsInf(v, 0) {
			return UnitCell{}, fmt.Errorf("cell length %d must be positive, got %g", i, v)
		}
	}
	for i, v := range []float64{alpha, beta, gamma} {
		if !(v > 0 && v < 180) {
			return UnitCell{}, fmt.Errorf("cell angle %d must be in (0, 180), got %g", i, v)
		}
	}

	ca := math.Cos(alpha * math.Pi / 180)
	cb := math.Cos(beta * math.Pi / 180)
	cg := math.Cos(gamma * math.Pi / 180)
	g := mat.NewSymDense(3, []float64{
		a * a, a * b * cg, a * c * cb,
		a * b * cg, b * b, b * c * ca,
		a * c * cb, b * c * ca, c * c,
	})

	det := mat.Det(g)
	if !(det > 0) {
		return UnitCell{}, fmt.Errorf("cell angles (%g, %g, %g) do not span a volume", alpha, beta, gamma)
	}

	var inv mat.Dense
	if err := inv.Inverse(g); err != nil {
		return UnitCell{}, fmt.Errorf("failed to invert metric: %w", err)
	}

	uc := UnitCell{
		params: [6]float64{a, b, c, alpha, beta, gamma},
		metric: g,
		volume: math.Sqrt(det),
	}
	for i := 0; i < 3; i++ {
		uc.recip[i] = math.Sqrt(inv.At(i, i))
	}
	return uc, nil
}

// MustNewUnitCell is NewUnitCell for fixed literals; it panics on error.
func MustNewUnitCell(a, b, c, alpha, beta, gamma float64) UnitCell {
	uc, err := NewUnitCell(a, b, c, alpha, beta, gamma)
	if err != nil {
		panic(err)
	}
	return uc
}

// Params returns (a, b, c, alpha, beta, gamma).
func (uc UnitCell) Params() [6]float64 { return uc.params }

// Metric returns the Gram matrix G with G_ij = a_i · a_j.
func (uc UnitCell) Metric() mat.Symmetric { return uc.metric }

// Volume returns the cell volume in Å³.
func (uc UnitCell) Volume() float64 { return uc.volume }

// ReciprocalLengths returns |a*|, |b*|, |c*| in 1/Å.
func (uc UnitCell) ReciprocalLengths() [3]float64 { return uc.recip }

// Distance2 returns the squared length of a fractional displacement.
func (uc UnitCell) Distance2(d r3.Vec) float64 {
	v := [3]float64{d.X, d.Y, d.Z}
	var s float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s += v[i] * uc.metric.At(i, j) * v[j]
		}
	}
	return s
}

// GridMetric holds the metric coefficients rescaled to grid steps, so that a
// displacement of (di, dj, dk) grid points has squared length
// XX·di² + YY·dj² + ZZ·dk² + 2(XY·di·dj + XZ·di·dk + YZ·dj·dk).
type GridMetric struct {
	XX, YY, ZZ float64
	XY, XZ, YZ float64
}

// GridMetric rescales the metric for a grid of n points per axis.
func (uc UnitCell) GridMetric(n [3]int) GridMetric {
	g := func(i, j int) float64 {
		return uc.metric.At(i, j) / (float64(n[i]) * float64(n[j]))
	}
	return GridMetric{
		XX: g(0, 0), YY: g(1, 1), ZZ: g(2, 2),
		XY: g(0, 1), XZ: g(0, 2), YZ: g(1, 2),
	}
}

// Distance2 returns the squared length of a displacement in grid steps.
func (gm GridMetric) Distance2(di, dj, dk float64) float64 {
	return gm.XX*di*di + gm.YY*dj*dj + gm.ZZ*dk*dk +
		2*(gm.XY*di*dj+gm.XZ*di*dk+gm.YZ*dj*dk)
}

func (uc UnitCell) String() string {
	p := uc.params
	return fmt.Sprintf("(%.4g, %.4g, %.4g, %.4g, %.4g, %.4g)", p[0], p[1], p[2], p[3], p[4], p[5])
}
