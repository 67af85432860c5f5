package binaural

import (
	"fmt"

	"github.com/cwbudde/algo-binaural/dsp/binaural/hrir"
	"github.com/cwbudde/algo-binaural/dsp/fourier"
)

// HRTF is the spectrum of one ear's impulse response.
type HRTF struct {
	Real [HRTFLen]float64
	Imag [HRTFLen]float64
}

// Filter holds the spectra for both ears.
type Filter struct {
	Left  HRTF
	Right HRTF
}

// HRIRToHRTF transforms both ears of d into out using t. With the radix-2
// kernel the input is loaded at bit-reversed positions and the permutation
// pass is skipped.
func HRIRToHRTF(t fourier.Transform, d *hrir.Data, out *Filter) error {
	if t.Size() != HRTFLen {
		return fmt.Errorf("%w: %d != %d", ErrTransformSize, t.Size(), HRTFLen)
	}

	if err := impulseToSpectrum(t, d.Left[:], &out.Left); err != nil {
		return err
	}
	return impulseToSpectrum(t, d.Right[:], &out.Right)
}

func impulseToSpectrum(t fourier.Transform, ir []float64, out *HRTF) error {
	clear(out.Imag[:])

	if r2, ok := t.(*fourier.Radix2); ok {
		for i, j := range r2.Indices() {
			out.Real[j] = ir[i]
		}
		return r2.ForwardPermuted(out.Real[:], out.Imag[:])
	}

	copy(out.Real[:], ir)
	return t.Forward(out.Real[:], out.Imag[:])
}

// ConvolveSpectra multiplies the signal spectrum by h bin by bin.
func ConvolveSpectra(sigRe, sigIm []float64, h *HRTF, outRe, outIm []float64) {
	n := min(len(sigRe), len(sigIm), len(outRe), len(outIm), HRTFLen)
	for i := range n {
		a, b := sigRe[i], sigIm[i]
		c, d := h.Real[i], h.Imag[i]
		outRe[i] = a*c - b*d
		outIm[i] = a*d + b*c
	}
}

// ConvolveSpectraReversed is ConvolveSpectra with the product of bin i
// stored at indices[i]. It prepares input for an inverse transform that
// expects bit-reversed order.
func ConvolveSpectraReversed(sigRe, sigIm []float64, h *HRTF, outRe, outIm []float64, indices []int) {
	n := min(len(sigRe), len(sigIm), len(indices), HRTFLen)
	for i := range n {
		a, b := sigRe[i], sigIm[i]
		c, d := h.Real[i], h.Imag[i]
		j := indices[i]
		outRe[j] = a*c - b*d
		outIm[j] = a*d + b*c
	}
}

// Convolver convolves an analysis window with two filters at once. It owns
// its scratch buffers and is not safe for concurrent use.
type Convolver struct {
	t  fourier.Transform
	r2 *fourier.Radix2

	re, im []float64
	outIm  [4][]float64
}

// NewConvolver creates a convolver around t, which must have size
// AudioBufferSize.
func NewConvolver(t fourier.Transform) (*Convolver, error) {
	if t == nil {
		return nil, fmt.Errorf("binaural: transform must not be nil")
	}
	if t.Size() != AudioBufferSize {
		return nil, fmt.Errorf("%w: %d != %d", ErrTransformSize, t.Size(), AudioBufferSize)
	}

	c := &Convolver{
		t:  t,
		re: make([]float64, AudioBufferSize),
		im: make([]float64, AudioBufferSize),
	}
	if r2, ok := t.(*fourier.Radix2); ok {
		c.r2 = r2
	}
	for i := range c.outIm {
		c.outIm[i] = make([]float64, AudioBufferSize)
	}

	return c, nil
}

// Transform returns the underlying transform.
func (c *Convolver) Transform() fourier.Transform { return c.t }

// ConvolvePair transforms window once, multiplies it by both ears of the
// old and new filter, and writes the four time-domain results. All slices
// must have length AudioBufferSize.
func (c *Convolver) ConvolvePair(window []float64, old, next *Filter, oldL, oldR, newL, newR []float64) error {
	for _, s := range [][]float64{window, oldL, oldR, newL, newR} {
		if len(s) != AudioBufferSize {
			return fmt.Errorf("%w: got %d, want %d", ErrBufferLength, len(s), AudioBufferSize)
		}
	}

	clear(c.im)
	if c.r2 != nil {
		for i, j := range c.r2.Indices() {
			c.re[j] = window[i]
		}
		if err := c.r2.ForwardPermuted(c.re, c.im); err != nil {
			return err
		}
	} else {
		copy(c.re, window)
		if err := c.t.Forward(c.re, c.im); err != nil {
			return err
		}
	}

	jobs := [4]struct {
		h   *HRTF
		out []float64
	}{
		{&old.Left, oldL},
		{&old.Right, oldR},
		{&next.Left, newL},
		{&next.Right, newR},
	}

	for k, job := range jobs {
		if err := c.filter(job.h, job.out, c.outIm[k]); err != nil {
			return err
		}
	}

	return nil
}

func (c *Convolver) filter(h *HRTF, outRe, outIm []float64) error {
	if c.r2 != nil {
		ConvolveSpectraReversed(c.re, c.im, h, outRe, outIm, c.r2.Indices())
		return c.r2.InversePermuted(outRe, outIm)
	}

	ConvolveSpectra(c.re, c.im, h, outRe, outIm)
	return c.t.Inverse(outRe, outIm)
}
