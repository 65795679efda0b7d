package crystal

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNewUnitCell_Cubic(t *testing.T) {
	uc, err := NewUnitCell(20, 20, 20, 90, 90, 90)
	require.NoError(t, err)

	assert.InDelta(t, 8000.0, uc.Volume(), 1e-9)
	for _, r := range uc.ReciprocalLengths() {
		assert.InDelta(t, 0.05, r, 1e-12)
	}
	assert.InDelta(t, 100.0, uc.Distance2(r3.Vec{X: 0.5}), 1e-9)
}

func TestNewUnitCell_Triclinic(t *testing.T) {
	a, b, c := 10.0, 12.0, 15.0
	al, be, ga := 80.0, 95.0, 110.0
	uc, err := NewUnitCell(a, b, c, al, be, ga)
	require.NoError(t, err)

	rad := math.Pi / 180
	ca, cb, cg := math.Cos(al*rad), math.Cos(be*rad), math.Cos(ga*rad)
	want := a * b * c * math.Sqrt(1-ca*ca-cb*cb-cg*cg+2*ca*cb*cg)
	assert.InDelta(t, want, uc.Volume(), 1e-9)

	// |a*| = b c sin(alpha) / V
	assert.InDelta(t, b*c*math.Sin(al*rad)/want, uc.ReciprocalLengths()[0], 1e-12)

	gm := uc.GridMetric([3]int{10, 12, 15})
	d := r3.Vec{X: 0.3, Y: -0.25, Z: 0.2}
	assert.InDelta(t, uc.Distance2(d), gm.Distance2(3, -3, 3), 1e-9)
}

func TestNewUnitCell_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params [6]float64
	}{
		{"zero length", [6]float64{0, 10, 10, 90, 90, 90}},
		{"negative length", [6]float64{10, -1, 10, 90, 90, 90}},
		{"flat angle", [6]float64{10, 10, 10, 180, 90, 90}},
		{"no volume", [6]float64{10, 10, 10, 150, 150, 150}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.params
			_, err := NewUnitCell(p[0], p[1], p[2], p[3], p[4], p[5])
			assert.Error(t, err)
		})
	}
}

func TestParseSymOp(t *testing.T) {
	op, err := ParseSymOp("-x+1/2, y+1/2, -z")
	require.NoError(t, err)
	assert.Equal(t, [3][3]int{{-1, 0, 0}, {0, 1, 0}, {0, 0, -1}}, op.R)
	assert.Equal(t, [3]int{6, 6, 0}, op.T)
	assert.Equal(t, "-x+1/2,y+1/2,-z", op.String())

	got := op.Apply(r3.Vec{X: 0.1, Y: 0.2, Z: 0.3})
	assert.InDelta(t, 0.4, got.X, 1e-12)
	assert.InDelta(t, 0.7, got.Y, 1e-12)
	assert.InDelta(t, -0.3, got.Z, 1e-12)

	op, err = ParseSymOp("y,-x,z+3/4")
	require.NoError(t, err)
	assert.Equal(t, [3]int{0, 0, 9}, op.T)
	assert.Equal(t, "y,-x,z+3/4", op.String())
}

func TestParseSymOp_Errors(t *testing.T) {
	for _, s := range []string{"x,y", "x,,z", "x,y,w", "x+1/5,y,z", "x+1/0,y,z"} {
		_, err := ParseSymOp(s)
		assert.Error(t, err, s)
	}
}

func TestMultiply(t *testing.T) {
	a, _ := ParseSymOp("-y,x,z+1/4")
	got := a.Multiply(a).Reduced()
	want, _ := ParseSymOp("-x,-y,z+1/2")
	assert.Equal(t, want, got)
	assert.True(t, a.Multiply(a).Multiply(a).Multiply(a).IsIdentity())
}

func TestBuiltinGroupsValidate(t *testing.T) {
	orders := map[string]int{
		"P1": 1, "P-1": 2, "P2": 2, "P21": 2, "C2": 4,
		"P222": 4, "P21212": 4, "P212121": 4, "P4": 4, "P41": 4,
	}
	syms := BuiltinSymbols()
	require.Len(t, syms, len(orders))
	for _, s := range syms {
		t.Run(s, func(t *testing.T) {
			sg, err := LookupSpaceGroup(s)
			require.NoError(t, err)
			assert.Equal(t, orders[s], sg.OrderZ())
			assert.NoError(t, sg.Validate())
		})
	}
}

func TestLookupSpaceGroup_Unknown(t *testing.T) {
	_, err := LookupSpaceGroup("P6122")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSpaceGroup))
}

func TestValidate_BrokenGroup(t *testing.T) {
	sg := MustLookupSpaceGroup("P21")
	sg.Ops = sg.Ops[1:]
	assert.Error(t, sg.Validate(), "identity missing")

	sg = MustLookupSpaceGroup("P4")
	sg.Ops = sg.Ops[:3]
	assert.Error(t, sg.Validate(), "not closed")

	sg = MustLookupSpaceGroup("P222")
	sg.ASU.Kind = 1 // half-x is too large for order 4
	assert.Error(t, sg.Validate(), "asu volume")
}
