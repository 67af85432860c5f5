package binaural

import (
	"testing"

	"github.com/cwbudde/algo-binaural/dsp/binaural/hrir"
	"github.com/cwbudde/algo-binaural/internal/testutil"
)

func noiseData(seed int64) *hrir.Data {
	var d hrir.Data
	copy(d.Left[:], testutil.DeterministicNoise(seed, 1, hrir.Len))
	copy(d.Right[:], testutil.DeterministicNoise(seed+1, 1, hrir.Len))
	return &d
}

func TestBlend3VertexWeights(t *testing.T) {
	a, b, c := noiseData(1), noiseData(2), noiseData(3)

	tests := []struct {
		name       string
		wa, wb, wc float64
		want       *hrir.Data
	}{
		{"a", 1, 0, 0, a},
		{"b", 0, 1, 0, b},
		{"c", 0, 0, 1, c},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out hrir.Data
			Blend3(a, tt.wa, b, tt.wb, c, tt.wc, &out)
			testutil.RequireSliceNearlyEqual(t, out.Left[:], tt.want.Left[:], 0)
			testutil.RequireSliceNearlyEqual(t, out.Right[:], tt.want.Right[:], 0)
		})
	}
}

func TestBlend3WeightedSum(t *testing.T) {
	a, b, c := noiseData(4), noiseData(5), noiseData(6)

	var out hrir.Data
	Blend3(a, 0.2, b, 0.3, c, 0.5, &out)

	for i := range hrir.Len {
		wantL := 0.2*a.Left[i] + 0.3*b.Left[i] + 0.5*c.Left[i]
		wantR := 0.2*a.Right[i] + 0.3*b.Right[i] + 0.5*c.Right[i]
		if d := out.Left[i] - wantL; d > 1e-12 || d < -1e-12 {
			t.Fatalf("left[%d] = %v, want %v", i, out.Left[i], wantL)
		}
		if d := out.Right[i] - wantR; d > 1e-12 || d < -1e-12 {
			t.Fatalf("right[%d] = %v, want %v", i, out.Right[i], wantR)
		}
	}
}

func TestBlendMatchUsesWeights(t *testing.T) {
	a, b := noiseData(7), noiseData(8)
	m := hrir.Match{
		Samples: [3]*hrir.Data{a, b, b},
		Weights: [3]float64{0.5, 0.5, 0},
	}

	var out hrir.Data
	BlendMatch(&m, &out)

	for i := range hrir.Len {
		want := 0.5*a.Left[i] + 0.5*b.Left[i]
		if d := out.Left[i] - want; d > 1e-12 || d < -1e-12 {
			t.Fatalf("left[%d] = %v, want %v", i, out.Left[i], want)
		}
	}
}
