package fourier

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Plan adapts an algo-fft complex128 plan to the split-buffer Transform
// interface.
type Plan struct {
	n    int
	plan *algofft.Plan[complex128]
	buf  []complex128
}

var _ Transform = (*Plan)(nil)

// NewPlan creates an algo-fft backed transform of size n.
func NewPlan(n int) (*Plan, error) {
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fourier: failed to create FFT plan: %w", err)
	}

	return &Plan{
		n:    n,
		plan: plan,
		buf:  make([]complex128, n),
	}, nil
}

// Size returns the transform length.
func (p *Plan) Size() int { return p.n }

// Name returns "algofft".
func (p *Plan) Name() string { return "algofft" }

// Forward computes the spectrum of (re, im) in place.
func (p *Plan) Forward(re, im []float64) error {
	if err := checkBuffers(p.n, re, im); err != nil {
		return err
	}

	p.pack(re, im)
	if err := p.plan.Forward(p.buf, p.buf); err != nil {
		return fmt.Errorf("fourier: forward FFT failed: %w", err)
	}
	p.unpack(re, im)

	return nil
}

// Inverse computes the inverse transform in place. algo-fft applies the
// 1/N scaling.
func (p *Plan) Inverse(re, im []float64) error {
	if err := checkBuffers(p.n, re, im); err != nil {
		return err
	}

	p.pack(re, im)
	if err := p.plan.Inverse(p.buf, p.buf); err != nil {
		return fmt.Errorf("fourier: inverse FFT failed: %w", err)
	}
	p.unpack(re, im)

	return nil
}

func (p *Plan) pack(re, im []float64) {
	for i := range p.buf {
		p.buf[i] = complex(re[i], im[i])
	}
}

func (p *Plan) unpack(re, im []float64) {
	for i, c := range p.buf {
		re[i] = real(c)
		im[i] = imag(c)
	}
}
