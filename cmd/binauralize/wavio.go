package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-binaural/dsp/dither"
)

// readMono decodes a PCM WAV file and averages its channels.
func readMono(path string) (samples []float64, sampleRate int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, 0, fmt.Errorf("%s: not a valid WAV file", path)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	channels := int(d.NumChans)
	if channels <= 0 || d.BitDepth == 0 {
		return nil, 0, fmt.Errorf("%s: unsupported format (%d channels, %d bits)", path, channels, d.BitDepth)
	}

	offset := 0
	if d.BitDepth == 8 {
		offset = 128
	}
	scale := 1 / (float64(int64(1)<<(d.BitDepth-1)) * float64(channels))

	frames := len(buf.Data) / channels
	samples = make([]float64, frames)
	for i := range samples {
		sum := 0
		for c := range channels {
			sum += buf.Data[i*channels+c] - offset
		}
		samples[i] = float64(sum) * scale
	}

	return samples, int(d.SampleRate), nil
}

// writeStereo16 writes left and right as a 16-bit PCM WAV file through q.
// A nil q rounds without dither.
func writeStereo16(path string, sampleRate int, left, right []float64, q *dither.Quantizer) (err error) {
	if len(left) != len(right) {
		return errors.New("left and right channel lengths differ")
	}
	if q == nil {
		if q, err = dither.NewQuantizer(16, dither.WithType(dither.None)); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	data := make([]int, 2*len(left))
	for i := range left {
		data[2*i] = q.Quantize(left[i])
		data[2*i+1] = q.Quantize(right[i])
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return enc.Close()
}
