// Package fourier provides the fixed-size complex transforms used by the
// binaural engine.
//
// A [Transform] operates in place on split real/imaginary buffers of one
// power-of-two size. Four strategies implement it:
//
//   - Radix2: scalar iterative radix-2 kernel with a precomputed bit-reversal
//     table. Also exposes permuted entry points for callers that already
//     stored their input at bit-reversed positions.
//   - Plan: backed by github.com/MeKo-Christian/algo-fft, which carries its
//     own SIMD kernels.
//   - Gonum: backed by gonum.org/v1/gonum/dsp/fourier. Not registered for
//     automatic selection; pick it explicitly with [ByName].
//   - Reference: O(N²) DFT used to verify the fast strategies.
//
// [New] selects the highest-priority registered strategy supported by the
// detected CPU features. Selection happens once per process; tests can force
// the scalar path through cpu.SetForcedFeatures with ForceGeneric set.
//
// Transforms keep scratch state and are not safe for concurrent use. Give
// each real-time consumer its own instance.
//
// # Scaling
//
// Forward is unscaled. Inverse is scaled by 1/N so that
// Inverse(Forward(x)) reproduces x.
package fourier
