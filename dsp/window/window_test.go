package window

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-binaural/internal/testutil"
)

func TestFadeShapes(t *testing.T) {
	tests := []struct {
		name string
		fn   func(Shape, int) ([]float64, error)
		s    Shape
		want []float64
	}{
		{"linear in", FadeIn, Linear, []float64{0.25, 0.5, 0.75, 1}},
		{"linear out", FadeOut, Linear, []float64{0.75, 0.5, 0.25, 0}},
		{"hann in", FadeIn, Hann, []float64{0.5 - 0.5*math.Sqrt2/2, 0.5, 0.5 + 0.5*math.Sqrt2/2, 1}},
		{"hann out", FadeOut, Hann, []float64{0.5 + 0.5*math.Sqrt2/2, 0.5, 0.5 - 0.5*math.Sqrt2/2, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := tt.fn(tt.s, 4)
			if err != nil {
				t.Fatal(err)
			}
			testutil.RequireSliceNearlyEqual(t, w, tt.want, 1e-12)
		})
	}
}

func TestFadeInvalidSize(t *testing.T) {
	for _, n := range []int{0, -3} {
		if _, err := FadeIn(Hann, n); err == nil {
			t.Errorf("FadeIn(%d) should fail", n)
		}
		if _, err := FadeOut(Hann, n); err == nil {
			t.Errorf("FadeOut(%d) should fail", n)
		}
	}
}

func TestApplyTail(t *testing.T) {
	buf := testutil.Ones(6)
	fade, _ := FadeOut(Linear, 2)
	if err := ApplyTail(buf, fade); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, buf, []float64{1, 1, 1, 1, 0.5, 0}, 1e-12)

	if err := ApplyTail(buf[:1], fade); !errors.Is(err, errMismatchedLength) {
		t.Fatalf("ApplyTail(short) error = %v", err)
	}
	if err := ApplyInPlace(buf, fade); !errors.Is(err, errMismatchedLength) {
		t.Fatalf("ApplyInPlace(mismatch) error = %v", err)
	}
}
