package masks

import (
	"fmt"
	"math"

	"github.com/banshee-data/bulksolvent/internal/crystal"
)

// Default clamps on the real-space grid step, in Å.
const (
	DefaultMinGridStep = 0.15
	DefaultMaxGridStep = 0.8
)

// StepFromResolution returns resolution/samplingFactor clamped to [minStep, maxStep].
func StepFromResolution(resolution, samplingFactor, minStep, maxStep float64) float64 {
	step := resolution / samplingFactor
	return math.Min(maxStep, math.Max(minStep, step))
}

// DeriveGridSize picks, for each axis, the smallest size at least a_i/step that
// the symmetry of sg can act on and whose prime factors are 2, 3 and 5. Axes
// mixed by any rotation share a size.
func DeriveGridSize(cell crystal.UnitCell, sg crystal.SpaceGroup, step float64) ([3]int, error) {
	if !(step > 0) {
		return [3]int{}, fmt.Errorf("grid step must be positive, got %g", step)
	}
	p := cell.Params()

	// union of axes coupled by off-diagonal rotation terms
	class := [3]int{0, 1, 2}
	var find func(int) int
	find = func(i int) int {
		if class[i] != i {
			class[i] = find(class[i])
		}
		return class[i]
	}
	factor := [3]int{1, 1, 1}
	for _, op := range sg.Ops {
		for i := 0; i < 3; i++ {
			t := op.Reduced().T[i]
			if t != 0 {
				factor[i] = lcm(factor[i], crystal.TDen/gcd(t, crystal.TDen))
			}
			for j := 0; j < 3; j++ {
				if i != j && op.R[i][j] != 0 {
					class[find(i)] = find(j)
				}
			}
		}
	}

	var target, classFactor [3]int
	for i := 0; i < 3; i++ {
		r := find(i)
		want := int(math.Ceil(p[i]/step - 1e-9))
		if want < 1 {
			want = 1
		}
		if want > target[r] {
			target[r] = want
		}
		if classFactor[r] == 0 {
			classFactor[r] = 1
		}
		classFactor[r] = lcm(classFactor[r], factor[i])
	}

	var n [3]int
	for i := 0; i < 3; i++ {
		r := find(i)
		n[i] = nextSmooth(target[r], classFactor[r])
	}
	if err := CheckGridSize(sg, n); err != nil {
		return [3]int{}, err
	}
	return n, nil
}

// CheckGridSize verifies that n is a valid grid for sg.
func CheckGridSize(sg crystal.SpaceGroup, n [3]int) error {
	if err := checkGridDims(n); err != nil {
		return err
	}
	_, err := NewGridSymOps(sg, n)
	return err
}

// nextSmooth returns the smallest multiple of factor >= target with no prime
// factor above 5.
func nextSmooth(target, factor int) int {
	m := ((target + factor - 1) / factor) * factor
	for !isSmooth(m) {
		m += factor
	}
	return m
}

func isSmooth(m int) bool {
	for _, p := range []int{2, 3, 5} {
		for m%p == 0 {
			m /= p
		}
	}
	return m == 1
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}
