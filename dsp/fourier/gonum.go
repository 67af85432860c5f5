package fourier

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Gonum adapts gonum's complex FFT to the Transform interface.
type Gonum struct {
	n   int
	fft *fourier.CmplxFFT
	buf []complex128
}

var _ Transform = (*Gonum)(nil)

// NewGonum creates a gonum-backed transform of size n.
func NewGonum(n int) (*Gonum, error) {
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	return &Gonum{
		n:   n,
		fft: fourier.NewCmplxFFT(n),
		buf: make([]complex128, n),
	}, nil
}

// Size returns the transform length.
func (g *Gonum) Size() int { return g.n }

// Name returns "gonum".
func (g *Gonum) Name() string { return "gonum" }

// Forward computes the spectrum of (re, im) in place.
func (g *Gonum) Forward(re, im []float64) error {
	if err := checkBuffers(g.n, re, im); err != nil {
		return err
	}

	for i := range g.buf {
		g.buf[i] = complex(re[i], im[i])
	}
	g.fft.Coefficients(g.buf, g.buf)
	for i, c := range g.buf {
		re[i] = real(c)
		im[i] = imag(c)
	}

	return nil
}

// Inverse computes the inverse transform in place. gonum leaves the result
// unscaled, so the 1/N factor is applied here.
func (g *Gonum) Inverse(re, im []float64) error {
	if err := checkBuffers(g.n, re, im); err != nil {
		return err
	}

	for i := range g.buf {
		g.buf[i] = complex(re[i], im[i])
	}
	g.fft.Sequence(g.buf, g.buf)

	s := 1 / float64(g.n)
	for i, c := range g.buf {
		re[i] = real(c) * s
		im[i] = imag(c) * s
	}

	return nil
}
