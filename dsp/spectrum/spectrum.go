package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"
)

// ErrLengthMismatch is returned when paired slices differ in length.
var ErrLengthMismatch = errors.New("spectrum: length mismatch")

// DefaultFloor is the magnitude below which ToDB clamps (-120 dB).
const DefaultFloor = 1e-6

func checkParts(dst, re, im []float64) error {
	if len(dst) != len(re) || len(re) != len(im) {
		return fmt.Errorf("%w: dst=%d re=%d im=%d", ErrLengthMismatch, len(dst), len(re), len(im))
	}
	return nil
}

// Magnitude computes |X[k]| into dst.
func Magnitude(dst, re, im []float64) error {
	if err := checkParts(dst, re, im); err != nil {
		return err
	}
	vecmath.Magnitude(dst, re, im)
	return nil
}

// Power computes |X[k]|^2 into dst.
func Power(dst, re, im []float64) error {
	if err := checkParts(dst, re, im); err != nil {
		return err
	}
	vecmath.Power(dst, re, im)
	return nil
}

// ToDB converts linear magnitudes to dB in place. Values below floor are
// clamped to it; floor <= 0 selects DefaultFloor.
func ToDB(mag []float64, floor float64) {
	if floor <= 0 {
		floor = DefaultFloor
	}
	for i, m := range mag {
		mag[i] = 20 * log10(math.Max(m, floor))
	}
}

// Phase computes arg(X[k]) in radians into dst.
func Phase(dst, re, im []float64) error {
	if err := checkParts(dst, re, im); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = math.Atan2(im[i], re[i])
	}
	return nil
}

// UnwrapPhase removes 2*pi jumps from phase in place.
func UnwrapPhase(phase []float64) {
	offset := 0.0
	prev := 0.0
	for i, p := range phase {
		if i > 0 {
			switch d := p - prev; {
			case d > math.Pi:
				offset -= 2 * math.Pi
			case d < -math.Pi:
				offset += 2 * math.Pi
			}
		}
		prev = p
		phase[i] = p + offset
	}
}

// GroupDelay returns the group delay in samples of an unwrapped phase
// sampled at uniformly spaced bins of an fftSize transform. Interior bins
// use a centred difference.
func GroupDelay(unwrapped []float64, fftSize int) ([]float64, error) {
	if len(unwrapped) < 2 {
		return nil, fmt.Errorf("spectrum: group delay needs at least 2 bins, got %d", len(unwrapped))
	}
	if fftSize <= 0 {
		return nil, fmt.Errorf("spectrum: invalid FFT size %d", fftSize)
	}

	dw := 2 * math.Pi / float64(fftSize)
	out := make([]float64, len(unwrapped))
	last := len(unwrapped) - 1
	for i := range unwrapped {
		var dphi float64
		switch i {
		case 0:
			dphi = unwrapped[1] - unwrapped[0]
		case last:
			dphi = unwrapped[last] - unwrapped[last-1]
		default:
			dphi = (unwrapped[i+1] - unwrapped[i-1]) / 2
		}
		out[i] = -dphi / dw
	}
	return out, nil
}

// BinFrequencies returns the centre frequency in Hz of the first bins
// bins of an fftSize transform.
func BinFrequencies(bins, fftSize int, sampleRate float64) []float64 {
	out := make([]float64, bins)
	for k := range out {
		out[k] = float64(k) * sampleRate / float64(fftSize)
	}
	return out
}

// BandMean averages values whose frequency lies in [lo, hi). ok is false
// when no bin falls in the band.
func BandMean(freqHz, values []float64, lo, hi float64) (mean float64, ok bool) {
	var sum float64
	var n int
	for i, f := range freqHz {
		if f >= lo && f < hi && i < len(values) {
			sum += values[i]
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// SmoothFractionalOctave replaces every value by the mean over a 1/fraction
// octave band centred on its frequency. freqHz must be positive and
// strictly increasing.
func SmoothFractionalOctave(freqHz, values []float64, fraction int) ([]float64, error) {
	if len(freqHz) != len(values) {
		return nil, fmt.Errorf("%w: freq=%d values=%d", ErrLengthMismatch, len(freqHz), len(values))
	}
	if fraction <= 0 {
		return nil, fmt.Errorf("spectrum: octave fraction must be > 0, got %d", fraction)
	}
	for i, f := range freqHz {
		if f <= 0 || (i > 0 && f <= freqHz[i-1]) {
			return nil, fmt.Errorf("spectrum: frequencies must be positive and increasing at index %d", i)
		}
	}

	out := make([]float64, len(values))
	half := math.Pow(2, 1/(2*float64(fraction)))

	for i, f := range freqHz {
		lo := sort.Search(len(freqHz), func(k int) bool { return freqHz[k] >= f/half })
		hi := sort.Search(len(freqHz), func(k int) bool { return freqHz[k] > f*half })

		sum := 0.0
		for _, v := range values[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}

	return out, nil
}
