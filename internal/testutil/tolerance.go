package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t when got and want differ in length or
// when any sample is more than eps away. The failure names the worst
// sample.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	worst, at := 0.0, -1
	for n := range got {
		d := math.Abs(got[n] - want[n])
		if math.IsNaN(d) {
			d = math.Inf(1)
		}
		if d > worst {
			worst, at = d, n
		}
	}
	if worst > eps {
		t.Fatalf("sample %d: got %v, want %v (|diff| %g > %g)", at, got[at], want[at], worst, eps)
	}
}

// RequireSilent fails t when any sample of x exceeds eps in magnitude.
func RequireSilent(t *testing.T, x []float64, eps float64) {
	t.Helper()
	for n, v := range x {
		if !(math.Abs(v) <= eps) {
			t.Fatalf("sample %d = %v, want silence (eps %g)", n, v, eps)
		}
	}
}

// RequireFinite fails t on the first NaN or Inf.
func RequireFinite(t *testing.T, x []float64) {
	t.Helper()
	for n, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample %d: non-finite value %v", n, v)
		}
	}
}

// Peak returns the largest absolute sample value.
func Peak(x []float64) float64 {
	var m float64
	for _, v := range x {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

// MaxStep returns the largest absolute difference between neighbouring
// samples. Clicks and block-edge discontinuities show up here.
func MaxStep(x []float64) float64 {
	var m float64
	for n := 1; n < len(x); n++ {
		m = math.Max(m, math.Abs(x[n]-x[n-1]))
	}
	return m
}
