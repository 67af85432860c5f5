package hrir

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Len is the fixed length of every impulse response.
const Len = 512

// Errors returned while converting raw measurements.
var (
	ErrNotStereo           = errors.New("hrir: sound data must have exactly 2 channels")
	ErrUnsupportedEncoding = errors.New("hrir: unsupported sample encoding")
	ErrShortData           = errors.New("hrir: raw buffer shorter than declared sample count")
)

// Data is one left/right impulse response pair.
type Data struct {
	Left  [Len]float64
	Right [Len]float64
}

// Sample is a measured impulse response pair at a direction in degrees.
type Sample struct {
	Data
	Elevation float64
	Azimuth   float64
}

// SoundData is an interleaved raw measurement. SampleSize selects the
// encoding: 2 for little-endian int16, 4 for little-endian float32.
type SoundData struct {
	Channels    int
	SampleSize  int
	SampleCount int
	Raw         []byte
}

// ConvertSoundData de-interleaves sd into left and right. Frames beyond
// len(left) are dropped and missing frames are zero.
func ConvertSoundData(sd SoundData, left, right []float64) error {
	if sd.Channels != 2 {
		return fmt.Errorf("%w: got %d", ErrNotStereo, sd.Channels)
	}
	if sd.SampleSize != 2 && sd.SampleSize != 4 {
		return fmt.Errorf("%w: %d bytes per sample", ErrUnsupportedEncoding, sd.SampleSize)
	}
	if len(left) != len(right) {
		return fmt.Errorf("hrir: channel buffer length mismatch: %d vs %d", len(left), len(right))
	}

	frameBytes := sd.Channels * sd.SampleSize
	if sd.SampleCount < 0 || len(sd.Raw) < sd.SampleCount*frameBytes {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrShortData, sd.SampleCount*frameBytes, len(sd.Raw))
	}

	n := min(sd.SampleCount, len(left))
	for i := range n {
		frame := sd.Raw[i*frameBytes:]
		if sd.SampleSize == 2 {
			left[i] = float64(int16(binary.LittleEndian.Uint16(frame[0:]))) / (1 << 15)
			right[i] = float64(int16(binary.LittleEndian.Uint16(frame[2:]))) / (1 << 15)
		} else {
			left[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(frame[0:])))
			right[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(frame[4:])))
		}
	}

	clear(left[n:])
	clear(right[n:])

	return nil
}
