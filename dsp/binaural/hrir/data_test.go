package hrir

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func int16Stereo(frames [][2]int16) SoundData {
	raw := make([]byte, 0, len(frames)*4)
	for _, f := range frames {
		raw = binary.LittleEndian.AppendUint16(raw, uint16(f[0]))
		raw = binary.LittleEndian.AppendUint16(raw, uint16(f[1]))
	}
	return SoundData{Channels: 2, SampleSize: 2, SampleCount: len(frames), Raw: raw}
}

func float32Stereo(frames [][2]float32) SoundData {
	raw := make([]byte, 0, len(frames)*8)
	for _, f := range frames {
		raw = binary.LittleEndian.AppendUint32(raw, math.Float32bits(f[0]))
		raw = binary.LittleEndian.AppendUint32(raw, math.Float32bits(f[1]))
	}
	return SoundData{Channels: 2, SampleSize: 4, SampleCount: len(frames), Raw: raw}
}

func TestConvertSoundDataInt16(t *testing.T) {
	sd := int16Stereo([][2]int16{{16384, -16384}, {-32768, 32767}, {0, 8192}})

	left := make([]float64, 8)
	right := make([]float64, 8)
	for i := range left {
		left[i], right[i] = 9, 9
	}

	if err := ConvertSoundData(sd, left, right); err != nil {
		t.Fatalf("ConvertSoundData() error = %v", err)
	}

	wantL := []float64{0.5, -1, 0, 0, 0, 0, 0, 0}
	wantR := []float64{-0.5, 32767.0 / 32768, 0.25, 0, 0, 0, 0, 0}
	for i := range wantL {
		if left[i] != wantL[i] || right[i] != wantR[i] {
			t.Fatalf("frame %d: got (%v, %v), want (%v, %v)", i, left[i], right[i], wantL[i], wantR[i])
		}
	}
}

func TestConvertSoundDataFloat32Truncates(t *testing.T) {
	sd := float32Stereo([][2]float32{{0.25, -0.75}, {1, 0.5}, {0.125, 0.125}})

	left := make([]float64, 2)
	right := make([]float64, 2)
	if err := ConvertSoundData(sd, left, right); err != nil {
		t.Fatalf("ConvertSoundData() error = %v", err)
	}

	if left[0] != 0.25 || right[0] != -0.75 || left[1] != 1 || right[1] != 0.5 {
		t.Fatalf("got left=%v right=%v", left, right)
	}
}

func TestConvertSoundDataErrors(t *testing.T) {
	tests := []struct {
		name string
		sd   SoundData
		want error
	}{
		{"mono", SoundData{Channels: 1, SampleSize: 2, SampleCount: 1, Raw: make([]byte, 2)}, ErrNotStereo},
		{"surround", SoundData{Channels: 6, SampleSize: 2}, ErrNotStereo},
		{"24-bit", SoundData{Channels: 2, SampleSize: 3, SampleCount: 1, Raw: make([]byte, 6)}, ErrUnsupportedEncoding},
		{"short", SoundData{Channels: 2, SampleSize: 4, SampleCount: 4, Raw: make([]byte, 16)}, ErrShortData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ConvertSoundData(tt.sd, make([]float64, Len), make([]float64, Len))
			if !errors.Is(err, tt.want) {
				t.Fatalf("ConvertSoundData() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAddSampleSwapsChannels(t *testing.T) {
	s, err := NewSampleSet()
	if err != nil {
		t.Fatal(err)
	}

	sd := int16Stereo([][2]int16{{16384, -8192}})
	if err := s.AddSample(sd, 0, 0, false); err != nil {
		t.Fatal(err)
	}
	if err := s.AddSample(sd, 0, 10, true); err != nil {
		t.Fatal(err)
	}

	if got := s.Sample(0); got.Left[0] != 0.5 || got.Right[0] != -0.25 {
		t.Fatalf("unswapped sample = (%v, %v)", got.Left[0], got.Right[0])
	}
	if got := s.Sample(1); got.Left[0] != -0.25 || got.Right[0] != 0.5 {
		t.Fatalf("swapped sample = (%v, %v)", got.Left[0], got.Right[0])
	}
	if got := s.Sample(1).Azimuth; got != 10 {
		t.Fatalf("azimuth = %v, want 10", got)
	}
}

func TestAddSampleRejectsBadData(t *testing.T) {
	s, err := NewSampleSet()
	if err != nil {
		t.Fatal(err)
	}

	err = s.AddSample(SoundData{Channels: 1, SampleSize: 2}, 0, 0, false)
	if !errors.Is(err, ErrNotStereo) {
		t.Fatalf("AddSample() error = %v, want ErrNotStereo", err)
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
}
