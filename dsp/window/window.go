// Package window generates taper windows for shaping impulse responses.
package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Shape selects the taper curve.
type Shape int

const (
	// Hann is a raised-cosine taper.
	Hann Shape = iota
	// Linear is a straight ramp.
	Linear
)

var errMismatchedLength = errors.New("window: samples and coefficients must have the same length")

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window: size must be > 0: %d", size)
	}
	return nil
}

func taper(s Shape, x float64) float64 {
	if s == Linear {
		return x
	}
	return 0.5 - 0.5*math.Cos(math.Pi*x)
}

// FadeIn returns size coefficients rising from near zero to 1. The first
// coefficient is non-zero and the last is exactly 1.
func FadeIn(s Shape, size int) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	w := make([]float64, size)
	for i := range w {
		w[i] = taper(s, float64(i+1)/float64(size))
	}
	return w, nil
}

// FadeOut returns size coefficients falling from near 1 to exactly 0.
func FadeOut(s Shape, size int) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	w := make([]float64, size)
	for i := range w {
		w[i] = taper(s, 1-float64(i+1)/float64(size))
	}
	return w, nil
}

// ApplyInPlace multiplies samples by coeffs.
func ApplyInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}
	vecmath.MulBlockInPlace(samples, coeffs)
	return nil
}

// ApplyTail multiplies the last len(coeffs) samples by coeffs. It fails
// when coeffs is longer than samples.
func ApplyTail(samples, coeffs []float64) error {
	if len(coeffs) > len(samples) {
		return fmt.Errorf("%w: tail %d > %d", errMismatchedLength, len(coeffs), len(samples))
	}
	return ApplyInPlace(samples[len(samples)-len(coeffs):], coeffs)
}
