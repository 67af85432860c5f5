package binaural

import (
	"errors"

	"github.com/cwbudde/algo-binaural/dsp/binaural/hrir"
)

// Buffer sizes. They are fixed by the impulse response length.
const (
	HRTFLen         = hrir.Len
	AudioBufferSize = hrir.Len
	UpdateSize      = AudioBufferSize / 2
	RingSize        = 2 * AudioBufferSize
)

// LocationEpsilon keeps clamped directions off the poles and the seam.
const LocationEpsilon = 0.001

// Errors returned by construction and binding.
var (
	ErrNilSampleSet  = errors.New("binaural: sample set is nil")
	ErrNotFinalized  = errors.New("binaural: sample set is not finalized")
	ErrTransformSize = errors.New("binaural: transform size does not match buffer size")
	ErrBufferLength  = errors.New("binaural: buffer length mismatch")
)

// State is the lifecycle stage of a Binauralizer.
type State int32

const (
	// StateUninitialized is the state after New.
	StateUninitialized State = iota
	// StateBound means Init succeeded but no block was rendered yet.
	StateBound
	// StateStreaming means at least one block was rendered from input.
	StateStreaming
	// StateUnbound is the state after Shut.
	StateUnbound
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateBound:
		return "bound"
	case StateStreaming:
		return "streaming"
	case StateUnbound:
		return "unbound"
	default:
		return "unknown"
	}
}
