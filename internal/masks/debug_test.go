package masks

import (
	"bytes"
	"strings"
	"testing"

	"github.com/banshee-data/bulksolvent/internal/testutil"
)

func TestSetLogWriters(t *testing.T) {
	var ops, diag, trace bytes.Buffer
	SetLogWriters(&ops, &diag, &trace)
	defer SetLogWriters(nil, nil, nil)

	cell := testutil.CubicCell(t, 20)
	sg := testutil.SpaceGroup(t, "P21")
	if _, err := NewAtomMask(cell, sg, [3]int{6, 5, 6}, 1.0, 0.5); err == nil {
		t.Fatal("expected incompatible grid to be rejected")
	}
	if !strings.Contains(ops.String(), "[masks] ") || !strings.Contains(ops.String(), "rejected grid") {
		t.Errorf("ops output = %q, want rejected grid warning", ops.String())
	}

	m, err := NewAtomMask(cell, sg, [3]int{6, 6, 6}, 1.0, 0.5)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, m.Compute(nil))

	if !strings.Contains(diag.String(), "compute: P21") {
		t.Errorf("diag output = %q, want compute summary", diag.String())
	}
	for _, stage := range []string{"atoms_to_asu", "mask_asu", "accessible_surface", "contact_surface"} {
		if !strings.Contains(trace.String(), stage) {
			t.Errorf("trace output missing %s: %q", stage, trace.String())
		}
	}
}

func TestLogWriters_Disabled(t *testing.T) {
	SetLogWriters(nil, nil, nil)

	// Test logging when disabled (should not panic)
	opsf("should not appear")
	diagf("should not appear")
	tracef("should not appear")

	if opsLogger != nil || diagLogger != nil || traceLogger != nil {
		t.Error("SetLogWriters(nil, nil, nil) failed to clear loggers")
	}
}
