package testutil

import (
	"math"
	"testing"
)

func TestPeakAndMaxStep(t *testing.T) {
	x := []float64{0, 0.5, -0.75, -0.5, 0.25}
	if p := Peak(x); p != 0.75 {
		t.Fatalf("Peak = %v, want 0.75", p)
	}
	if s := MaxStep(x); s != 1.25 {
		t.Fatalf("MaxStep = %v, want 1.25", s)
	}
	if Peak(nil) != 0 || MaxStep([]float64{3}) != 0 {
		t.Fatal("empty inputs should give 0")
	}
}

func TestRequireHelpersPass(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2, 3}, []float64{1, 2.05, 3}, 0.1)
	RequireSilent(t, []float64{0, 1e-13, -1e-13}, 1e-12)
	RequireFinite(t, []float64{0, -1, math.MaxFloat64})
}

func TestScaledAndDeinterleave(t *testing.T) {
	RequireSliceNearlyEqual(t, Scaled([]float64{1, -2, 4}, 0.5), []float64{0.5, -1, 2}, 0)

	l, r := Deinterleave([]float64{1, 2, 3, 4, 5})
	RequireSliceNearlyEqual(t, l, []float64{1, 3}, 0)
	RequireSliceNearlyEqual(t, r, []float64{2, 4}, 0)
}
