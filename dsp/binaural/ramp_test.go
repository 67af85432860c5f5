package binaural

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-binaural/internal/testutil"
)

func TestRampBuffers(t *testing.T) {
	const n = 8
	from := testutil.Ones(n)
	to := make([]float64, n)
	out := make([]float64, n)

	if err := RampBuffers(from, to, out); err != nil {
		t.Fatal(err)
	}

	want := make([]float64, n)
	for i := range want {
		want[i] = 1 - float64(i)/n
	}
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-15)
}

func TestRampBuffersStartsAtFrom(t *testing.T) {
	from := testutil.DeterministicNoise(1, 1, UpdateSize)
	to := testutil.DeterministicNoise(2, 1, UpdateSize)
	out := make([]float64, UpdateSize)

	if err := RampBuffers(from, to, out); err != nil {
		t.Fatal(err)
	}
	if out[0] != from[0] {
		t.Fatalf("out[0] = %v, want %v", out[0], from[0])
	}

	last := UpdateSize - 1
	w := float64(last) / UpdateSize
	if want := from[last]*(1-w) + to[last]*w; out[last]-want > 1e-12 || want-out[last] > 1e-12 {
		t.Fatalf("out[last] = %v, want %v", out[last], want)
	}
}

func TestCrossfadeIdenticalInputs(t *testing.T) {
	c := NewCrossfade(UpdateSize)
	x := testutil.DeterministicSine(440, 44100, 0.8, UpdateSize)
	out := make([]float64, UpdateSize)

	if err := c.Apply(x, x, out); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out, x, 1e-12)
}

func TestCrossfadeInPlace(t *testing.T) {
	c := NewCrossfade(4)
	from := []float64{4, 4, 4, 4}
	to := []float64{0, 0, 0, 0}

	if err := c.Apply(from, to, from); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, from, []float64{4, 3, 2, 1}, 1e-15)
}

func TestCrossfadeLengthMismatch(t *testing.T) {
	c := NewCrossfade(4)
	err := c.Apply(make([]float64, 4), make([]float64, 3), make([]float64, 4))
	if !errors.Is(err, ErrBufferLength) {
		t.Fatalf("Apply() error = %v, want ErrBufferLength", err)
	}
	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}
}
