package binaural

import (
	"fmt"

	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Crossfade blends two blocks with a linear ramp of fixed length.
type Crossfade struct {
	up      []float64
	down    []float64
	scratch []float64
}

// NewCrossfade precomputes a ramp of n samples. Weight i of the incoming
// block is i/n.
func NewCrossfade(n int) *Crossfade {
	n = max(n, 0)
	c := &Crossfade{
		up:      make([]float64, n),
		down:    make([]float64, n),
		scratch: make([]float64, n),
	}
	for i := range n {
		t := float64(i) / float64(n)
		c.up[i] = t
		c.down[i] = 1 - t
	}
	return c
}

// Len returns the ramp length.
func (c *Crossfade) Len() int { return len(c.up) }

// Apply writes from*(1-i/n) + to*(i/n) to out. out may alias from or to.
func (c *Crossfade) Apply(from, to, out []float64) error {
	n := len(c.up)
	if len(from) != n || len(to) != n || len(out) != n {
		return fmt.Errorf("%w: ramp %d, got from=%d to=%d out=%d", ErrBufferLength, n, len(from), len(to), len(out))
	}

	vecmath.MulBlock(c.scratch, from, c.down)
	vecmath.MulBlock(out, to, c.up)
	floats.Add(out, c.scratch)

	return nil
}

// RampBuffers crossfades from into to over len(out) samples. It allocates
// the ramp; use Crossfade on hot paths.
func RampBuffers(from, to, out []float64) error {
	return NewCrossfade(len(out)).Apply(from, to, out)
}
