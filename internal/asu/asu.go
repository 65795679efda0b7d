// Package asu describes asymmetric units as closed boxes in fractional space.
//
// The set of shapes is fixed and small, so a Region is a tagged value (Kind)
// whose inequalities are looked up from a table rather than an interface
// hierarchy. All membership tests on grid points are done in exact integer
// arithmetic.
package asu

import "fmt"

// Frac is a rational fractional coordinate Num/Den.
type Frac struct {
	Num, Den int
}

// Float returns the coordinate as a float64.
func (f Frac) Float() float64 { return float64(f.Num) / float64(f.Den) }

// Kind selects one of the built-in ASU shapes.
type Kind int

const (
	// KindCell is the whole cell, 0<=x,y,z<=1 (P1).
	KindCell Kind = iota
	// KindHalfX is 0<=x<=1/2 (P-1, P2).
	KindHalfX
	// KindHalfY is 0<=y<=1/2 (P21).
	KindHalfY
	// KindQuarterXY is 0<=x<=1/2, 0<=y<=1/2 (C2, P222, P21212, P212121, P4, P41).
	KindQuarterXY
)

var (
	zero = Frac{0, 1}
	half = Frac{1, 2}
	one  = Frac{1, 1}
)

var boxes = map[Kind][2][3]Frac{
	KindCell:      {{zero, zero, zero}, {one, one, one}},
	KindHalfX:     {{zero, zero, zero}, {half, one, one}},
	KindHalfY:     {{zero, zero, zero}, {one, half, one}},
	KindQuarterXY: {{zero, zero, zero}, {half, half, one}},
}

func (k Kind) String() string {
	switch k {
	case KindCell:
		return "cell"
	case KindHalfX:
		return "half-x"
	case KindHalfY:
		return "half-y"
	case KindQuarterXY:
		return "quarter-xy"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Location classifies a point against a Region.
type Location int

const (
	Outside Location = iota
	Inside           // strictly interior
	OnFace           // on the closed boundary
)

// Region is an asymmetric unit.
type Region struct {
	Kind Kind
}

// New returns the region for k, or an error if k is not a known shape.
func New(k Kind) (Region, error) {
	if _, ok := boxes[k]; !ok {
		return Region{}, fmt.Errorf("unknown asu kind %d", int(k))
	}
	return Region{Kind: k}, nil
}

// Box returns the closed bounds of the region.
func (r Region) Box() (lo, hi [3]Frac) {
	b := boxes[r.Kind]
	return b[0], b[1]
}

// BoxFloat returns the closed bounds as floats.
func (r Region) BoxFloat() (lo, hi [3]float64) {
	l, h := r.Box()
	for i := 0; i < 3; i++ {
		lo[i], hi[i] = l[i].Float(), h[i].Float()
	}
	return lo, hi
}

// Volume returns the fraction of the unit cell the region occupies.
func (r Region) Volume() float64 {
	lo, hi := r.BoxFloat()
	v := 1.0
	for i := 0; i < 3; i++ {
		v *= hi[i] - lo[i]
	}
	return v
}

// WhereIs locates grid point p (0<=p_i<n_i) on an n grid.
func (r Region) WhereIs(p, n [3]int) Location {
	lo, hi := r.Box()
	loc := Inside
	for i := 0; i < 3; i++ {
		// compare p/n against Num/Den as p*Den vs Num*n
		x := p[i] * lo[i].Den
		l := lo[i].Num * n[i]
		if x < l {
			return Outside
		}
		if x == l {
			loc = OnFace
		}
		x = p[i] * hi[i].Den
		h := hi[i].Num * n[i]
		if x > h {
			return Outside
		}
		if x == h {
			loc = OnFace
		}
	}
	return loc
}

// GridBox returns inclusive grid bounds of the closed region on an n grid.
func (r Region) GridBox(n [3]int) (lo, hi [3]int) {
	l, h := r.Box()
	for i := 0; i < 3; i++ {
		lo[i] = ceilDiv(l[i].Num*n[i], l[i].Den)
		hi[i] = floorDiv(h[i].Num*n[i], h[i].Den)
	}
	return lo, hi
}

// EnclosedBox returns inclusive grid bounds of the strict interior. ok is false
// when the interior holds no grid point.
func (r Region) EnclosedBox(n [3]int) (lo, hi [3]int, ok bool) {
	l, h := r.Box()
	ok = true
	for i := 0; i < 3; i++ {
		lo[i] = floorDiv(l[i].Num*n[i], l[i].Den) + 1
		hi[i] = ceilDiv(h[i].Num*n[i], h[i].Den) - 1
		if lo[i] > hi[i] {
			ok = false
		}
	}
	return lo, hi, ok
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
