package hrirdb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-binaural/dsp/binaural/hrir"
)

// Errors returned while decoding measurement files.
var (
	ErrNotWAV            = errors.New("hrirdb: not a WAV file")
	ErrUnsupportedFormat = errors.New("hrirdb: unsupported WAV encoding")
)

const (
	wavFormatPCM   = 1
	wavFormatFloat = 3
)

// LoadSound reads a WAV file into raw sound data.
func LoadSound(path string) (hrir.SoundData, error) {
	f, err := os.Open(path)
	if err != nil {
		return hrir.SoundData{}, fmt.Errorf("hrirdb: %w", err)
	}
	defer f.Close()

	sd, err := DecodeSound(f)
	if err != nil {
		return hrir.SoundData{}, fmt.Errorf("%s: %w", path, err)
	}
	return sd, nil
}

// DecodeSound decodes WAV data. 16-bit PCM is kept as int16; other integer
// bit depths and IEEE float data are normalized to float32.
func DecodeSound(r io.ReadSeeker) (hrir.SoundData, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return hrir.SoundData{}, ErrNotWAV
	}

	channels := int(d.NumChans)
	if channels <= 0 {
		return hrir.SoundData{}, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}

	switch d.WavAudioFormat {
	case wavFormatPCM:
		return decodePCM(d, channels)
	case wavFormatFloat:
		return decodeFloat(d, channels)
	default:
		return hrir.SoundData{}, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, d.WavAudioFormat)
	}
}

func decodePCM(d *wav.Decoder, channels int) (hrir.SoundData, error) {
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return hrir.SoundData{}, fmt.Errorf("hrirdb: decode PCM: %w", err)
	}

	bitDepth := int(d.BitDepth)
	sd := hrir.SoundData{
		Channels:    channels,
		SampleCount: len(buf.Data) / channels,
	}
	values := buf.Data[:sd.SampleCount*channels]

	switch bitDepth {
	case 16:
		sd.SampleSize = 2
		sd.Raw = make([]byte, 2*len(values))
		for i, v := range values {
			binary.LittleEndian.PutUint16(sd.Raw[2*i:], uint16(int16(v)))
		}
	case 8, 24, 32:
		offset := 0
		if bitDepth == 8 {
			// 8-bit WAV is unsigned.
			offset = 128
		}
		scale := 1 / float64(int64(1)<<(bitDepth-1))

		sd.SampleSize = 4
		sd.Raw = make([]byte, 4*len(values))
		for i, v := range values {
			f := float32(float64(v-offset) * scale)
			binary.LittleEndian.PutUint32(sd.Raw[4*i:], math.Float32bits(f))
		}
	default:
		return hrir.SoundData{}, fmt.Errorf("%w: %d bits", ErrUnsupportedFormat, bitDepth)
	}

	return sd, nil
}

// decodeFloat reads the data chunk directly; the wav decoder only yields
// integer samples.
func decodeFloat(d *wav.Decoder, channels int) (hrir.SoundData, error) {
	bitDepth := int(d.BitDepth)
	if bitDepth != 32 && bitDepth != 64 {
		return hrir.SoundData{}, fmt.Errorf("%w: %d-bit float", ErrUnsupportedFormat, bitDepth)
	}

	if err := d.FwdToPCM(); err != nil {
		return hrir.SoundData{}, fmt.Errorf("hrirdb: find data chunk: %w", err)
	}
	if d.PCMChunk == nil {
		return hrir.SoundData{}, fmt.Errorf("hrirdb: find data chunk: %w", wav.ErrPCMChunkNotFound)
	}
	data, err := io.ReadAll(d.PCMChunk)
	if err != nil {
		return hrir.SoundData{}, fmt.Errorf("hrirdb: read float data: %w", err)
	}

	width := bitDepth / 8
	sd := hrir.SoundData{
		Channels:    channels,
		SampleCount: len(data) / (width * channels),
		SampleSize:  4,
	}
	n := sd.SampleCount * channels
	if width == 4 {
		sd.Raw = data[:4*n]
		return sd, nil
	}

	sd.Raw = make([]byte, 4*n)
	for i := range n {
		f := math.Float64frombits(binary.LittleEndian.Uint64(data[8*i:]))
		binary.LittleEndian.PutUint32(sd.Raw[4*i:], math.Float32bits(float32(f)))
	}
	return sd, nil
}
