// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"testing"

	"github.com/banshee-data/bulksolvent/internal/crystal"
	"gonum.org/v1/gonum/spatial/r3"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// CubicCell returns an a×a×a cell with right angles.
func CubicCell(t *testing.T, a float64) crystal.UnitCell {
	t.Helper()
	uc, err := crystal.NewUnitCell(a, a, a, 90, 90, 90)
	AssertNoError(t, err)
	return uc
}

// SpaceGroup looks up a built-in group, failing the test if it is unknown.
func SpaceGroup(t *testing.T, symbol string) crystal.SpaceGroup {
	t.Helper()
	sg, err := crystal.LookupSpaceGroup(symbol)
	AssertNoError(t, err)
	return sg
}

// Fragment returns a small cluster of atom sites in fractional coordinates with
// their radii. The positions are general, so no site falls on a symmetry element
// of the built-in groups.
func Fragment() ([]r3.Vec, []float64) {
	frac := []r3.Vec{
		{X: 0.12, Y: 0.30, Z: 0.21},
		{X: 0.40, Y: 0.15, Z: 0.70},
		{X: 0.33, Y: 0.42, Z: 0.05},
		{X: 0.70, Y: 0.80, Z: 0.30},
	}
	radii := []float64{1.6, 1.3, 1.8, 1.5}
	return frac, radii
}
