package dither

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const (
	minBitDepth = 2
	maxBitDepth = 32
)

// Option configures a Quantizer.
type Option func(*config) error

type config struct {
	typ  Type
	seed uint64
	rng  bool
}

// WithType selects the dither noise. The default is Triangular.
func WithType(t Type) Option {
	return func(cfg *config) error {
		if !t.Valid() {
			return fmt.Errorf("dither: invalid type %d", int(t))
		}
		cfg.typ = t
		return nil
	}
}

// WithSeed makes the noise sequence reproducible.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		cfg.rng = true
		return nil
	}
}

// Quantizer converts samples in [-1, 1] to signed integers of a fixed bit
// depth. Out-of-range input is clipped.
type Quantizer struct {
	typ   Type
	scale float64
	lo    int
	hi    int
	rng   *rand.Rand
}

// NewQuantizer creates a quantizer for bitDepth-bit output.
func NewQuantizer(bitDepth int, opts ...Option) (*Quantizer, error) {
	if bitDepth < minBitDepth || bitDepth > maxBitDepth {
		return nil, fmt.Errorf("dither: bit depth must be in [%d, %d]: %d", minBitDepth, maxBitDepth, bitDepth)
	}

	cfg := config{typ: Triangular}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	seed := cfg.seed
	if !cfg.rng {
		seed = rand.Uint64()
	}

	full := math.Exp2(float64(bitDepth - 1))
	return &Quantizer{
		typ:   cfg.typ,
		scale: full - 1,
		lo:    -int(full),
		hi:    int(full) - 1,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Type returns the dither type.
func (q *Quantizer) Type() Type { return q.typ }

// Quantize returns the integer code for x.
func (q *Quantizer) Quantize(x float64) int {
	if math.IsNaN(x) {
		x = 0
	}
	v := x * q.scale

	switch q.typ {
	case Rectangular:
		v += q.rng.Float64() - 0.5
	case Triangular:
		v += q.rng.Float64() - q.rng.Float64()
	}

	return max(q.lo, min(q.hi, int(math.Round(v))))
}

// QuantizeTo writes the integer codes of src to dst, which must be at
// least as long as src.
func (q *Quantizer) QuantizeTo(dst []int, src []float64) {
	for i, x := range src {
		dst[i] = q.Quantize(x)
	}
}
