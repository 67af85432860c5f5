package fourier

import (
	"fmt"
	"math"
)

// Radix2 is a scalar iterative radix-2 decimation-in-time FFT.
type Radix2 struct {
	n       int
	indices []int
	cos     []float64
	sin     []float64
}

var _ Transform = (*Radix2)(nil)

// NewRadix2 creates a scalar radix-2 transform of size n.
func NewRadix2(n int) (*Radix2, error) {
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	r := &Radix2{
		n:       n,
		indices: BitReverseIndices(n),
		cos:     make([]float64, n/2),
		sin:     make([]float64, n/2),
	}
	for k := range r.cos {
		phase := 2 * math.Pi * float64(k) / float64(n)
		r.cos[k] = math.Cos(phase)
		r.sin[k] = math.Sin(phase)
	}

	return r, nil
}

// Size returns the transform length.
func (r *Radix2) Size() int { return r.n }

// Name returns "radix2".
func (r *Radix2) Name() string { return "radix2" }

// Indices returns the bit-reversal table. Callers must not modify it.
func (r *Radix2) Indices() []int { return r.indices }

// Forward computes the spectrum of (re, im) in natural order.
func (r *Radix2) Forward(re, im []float64) error {
	if err := checkBuffers(r.n, re, im); err != nil {
		return err
	}
	permute(re, im, r.indices)
	r.butterflies(re, im, false)
	return nil
}

// Inverse computes the scaled inverse transform in natural order.
func (r *Radix2) Inverse(re, im []float64) error {
	if err := checkBuffers(r.n, re, im); err != nil {
		return err
	}
	permute(re, im, r.indices)
	r.butterflies(re, im, true)
	r.scale(re, im)
	return nil
}

// ForwardPermuted transforms input that is already in bit-reversed order.
// The output is in natural order.
func (r *Radix2) ForwardPermuted(re, im []float64) error {
	if err := checkBuffers(r.n, re, im); err != nil {
		return err
	}
	r.butterflies(re, im, false)
	return nil
}

// InversePermuted is the inverse counterpart of ForwardPermuted.
func (r *Radix2) InversePermuted(re, im []float64) error {
	if err := checkBuffers(r.n, re, im); err != nil {
		return err
	}
	r.butterflies(re, im, true)
	r.scale(re, im)
	return nil
}

func (r *Radix2) butterflies(re, im []float64, inverse bool) {
	n := r.n
	sign := -1.0
	if inverse {
		sign = 1.0
	}

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		step := n / size
		for start := 0; start < n; start += size {
			for k := range half {
				wr := r.cos[k*step]
				wi := sign * r.sin[k*step]

				j := start + k
				l := j + half

				tr := wr*re[l] - wi*im[l]
				ti := wr*im[l] + wi*re[l]

				re[l] = re[j] - tr
				im[l] = im[j] - ti
				re[j] += tr
				im[j] += ti
			}
		}
	}
}

func (r *Radix2) scale(re, im []float64) {
	s := 1 / float64(r.n)
	for i := range re {
		re[i] *= s
		im[i] *= s
	}
}
