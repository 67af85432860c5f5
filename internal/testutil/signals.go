// Package testutil holds deterministic test signals and tolerance checks
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand/v2"
	"slices"
)

// DeterministicSine returns length samples of a sine starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * math.Sin(w*float64(n))
	}
	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude) from a
// PCG source seeded with seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	src := rand.New(rand.NewPCG(uint64(seed), 0x5eed))
	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * (2*src.Float64() - 1)
	}
	return out
}

// Impulse is a unit sample at pos, or all zeros when pos is out of range.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC is a constant signal.
func DC(value float64, length int) []float64 {
	return slices.Repeat([]float64{value}, length)
}

// Ones returns n ones.
func Ones(n int) []float64 { return DC(1, n) }

// Scaled returns a copy of x multiplied by gain, the expected output of a
// single-tap response.
func Scaled(x []float64, gain float64) []float64 {
	out := make([]float64, len(x))
	for n, v := range x {
		out[n] = gain * v
	}
	return out
}

// Deinterleave splits a stereo frame buffer into its channels.
func Deinterleave(frames []float64) (left, right []float64) {
	left = make([]float64, len(frames)/2)
	right = make([]float64, len(frames)/2)
	for n := range left {
		left[n], right[n] = frames[2*n], frames[2*n+1]
	}
	return left, right
}
