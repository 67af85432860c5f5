package fourier

import (
	"fmt"
	"math"
)

// Reference is a direct O(N²) DFT. It is slow and only meant for checking
// the fast strategies.
type Reference struct {
	n     int
	cos   []float64
	sin   []float64
	outRe []float64
	outIm []float64
}

var _ Transform = (*Reference)(nil)

// NewReference creates a reference DFT of size n.
func NewReference(n int) (*Reference, error) {
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	r := &Reference{
		n:     n,
		cos:   make([]float64, n),
		sin:   make([]float64, n),
		outRe: make([]float64, n),
		outIm: make([]float64, n),
	}
	for k := range r.cos {
		phase := 2 * math.Pi * float64(k) / float64(n)
		r.cos[k] = math.Cos(phase)
		r.sin[k] = math.Sin(phase)
	}

	return r, nil
}

// Size returns the transform length.
func (r *Reference) Size() int { return r.n }

// Name returns "reference".
func (r *Reference) Name() string { return "reference" }

// Forward computes the DFT in place.
func (r *Reference) Forward(re, im []float64) error {
	if err := checkBuffers(r.n, re, im); err != nil {
		return err
	}
	r.dft(re, im, -1)
	return nil
}

// Inverse computes the scaled inverse DFT in place.
func (r *Reference) Inverse(re, im []float64) error {
	if err := checkBuffers(r.n, re, im); err != nil {
		return err
	}
	r.dft(re, im, 1)
	s := 1 / float64(r.n)
	for i := range re {
		re[i] *= s
		im[i] *= s
	}
	return nil
}

func (r *Reference) dft(re, im []float64, sign float64) {
	n := r.n
	for k := range n {
		var sumRe, sumIm float64
		for t := range n {
			idx := (k * t) % n
			wr := r.cos[idx]
			wi := sign * r.sin[idx]
			sumRe += re[t]*wr - im[t]*wi
			sumIm += re[t]*wi + im[t]*wr
		}
		r.outRe[k] = sumRe
		r.outIm[k] = sumIm
	}
	copy(re, r.outRe)
	copy(im, r.outIm)
}
