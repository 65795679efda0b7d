package masks

import (
	"testing"

	"github.com/banshee-data/bulksolvent/internal/crystal"
	"github.com/banshee-data/bulksolvent/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepFromResolution(t *testing.T) {
	assert.InDelta(t, 0.5, StepFromResolution(2.0, 4, DefaultMinGridStep, DefaultMaxGridStep), 1e-12)
	assert.Equal(t, DefaultMinGridStep, StepFromResolution(0.4, 4, DefaultMinGridStep, DefaultMaxGridStep))
	assert.Equal(t, DefaultMaxGridStep, StepFromResolution(10, 4, DefaultMinGridStep, DefaultMaxGridStep))
}

func TestDeriveGridSize(t *testing.T) {
	cases := []struct {
		name   string
		cell   [6]float64
		symbol string
		step   float64
		want   [3]int
	}{
		{"P21 screw needs even ny", [6]float64{20, 25, 30, 90, 95, 90}, "P21", 0.7, [3]int{30, 36, 45}},
		{"P41 needs nz divisible by 4", [6]float64{30, 30, 40, 90, 90, 90}, "P41", 0.8, [3]int{40, 40, 60}},
		{"P4 couples x and y", [6]float64{30, 31, 20, 90, 90, 90}, "P4", 0.8, [3]int{40, 40, 25}},
		{"P1 is only smooth", [6]float64{7, 11, 13, 80, 85, 95}, "P1", 1.0, [3]int{8, 12, 15}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.cell
			cell := crystal.MustNewUnitCell(p[0], p[1], p[2], p[3], p[4], p[5])
			sg := testutil.SpaceGroup(t, tc.symbol)

			n, err := DeriveGridSize(cell, sg, tc.step)
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
			assert.NoError(t, CheckGridSize(sg, n))
		})
	}
}

func TestDeriveGridSize_BadStep(t *testing.T) {
	cell := testutil.CubicCell(t, 10)
	_, err := DeriveGridSize(cell, testutil.SpaceGroup(t, "P1"), 0)
	assert.Error(t, err)
}

func TestNextSmooth(t *testing.T) {
	assert.Equal(t, 40, nextSmooth(38, 1))
	assert.Equal(t, 60, nextSmooth(50, 4))
	assert.Equal(t, 1, nextSmooth(1, 1))
	assert.True(t, isSmooth(2*3*5*16))
	assert.False(t, isSmooth(14))
}
