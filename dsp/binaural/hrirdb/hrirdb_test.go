package hrirdb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-binaural/dsp/binaural/hrir"
	"github.com/cwbudde/algo-binaural/internal/testutil"
)

// writeWAV writes a stereo PCM file whose frames are given as integer
// sample values at the given bit depth.
func writeWAV(t *testing.T, path string, bitDepth int, frames [][2]int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	data := make([]int, 0, 2*len(frames))
	for _, fr := range frames {
		data = append(data, fr[0], fr[1])
	}

	enc := wav.NewEncoder(f, 44100, bitDepth, 2, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 44100},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder %s: %v", path, err)
	}
}

// impulseFrames returns 16-bit frames with a single tap per channel.
func impulseFrames(left, right float64) [][2]int {
	frames := make([][2]int, 64)
	frames[0] = [2]int{int(left * 32768), int(right * 32768)}
	return frames
}

func TestDecodeSound16Bit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	writeWAV(t, path, 16, [][2]int{{16384, -8192}, {-32768, 32767}, {1, 0}})

	sd, err := LoadSound(path)
	if err != nil {
		t.Fatalf("LoadSound() error = %v", err)
	}
	if sd.Channels != 2 || sd.SampleSize != 2 || sd.SampleCount != 3 {
		t.Fatalf("SoundData = %d ch, %d bytes, %d frames", sd.Channels, sd.SampleSize, sd.SampleCount)
	}

	left := make([]float64, 4)
	right := make([]float64, 4)
	if err := hrir.ConvertSoundData(sd, left, right); err != nil {
		t.Fatal(err)
	}

	wantL := []float64{0.5, -1, 1.0 / 32768, 0}
	wantR := []float64{-0.25, 32767.0 / 32768, 0, 0}
	for i := range wantL {
		if left[i] != wantL[i] || right[i] != wantR[i] {
			t.Fatalf("frame %d = (%v, %v), want (%v, %v)", i, left[i], right[i], wantL[i], wantR[i])
		}
	}
}

func TestDecodeSound24Bit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	writeWAV(t, path, 24, [][2]int{{1 << 22, -(1 << 21)}, {100, 0}})

	sd, err := LoadSound(path)
	if err != nil {
		t.Fatalf("LoadSound() error = %v", err)
	}
	if sd.SampleSize != 4 || sd.SampleCount != 2 {
		t.Fatalf("SoundData = %d bytes, %d frames, want float32 x2", sd.SampleSize, sd.SampleCount)
	}

	left := make([]float64, 2)
	right := make([]float64, 2)
	if err := hrir.ConvertSoundData(sd, left, right); err != nil {
		t.Fatal(err)
	}
	if left[0] != 0.5 || right[0] != -0.25 {
		t.Fatalf("frame 0 = (%v, %v), want (0.5, -0.25)", left[0], right[0])
	}
	if want := 100.0 / (1 << 23); math.Abs(left[1]-want) > 1e-9 {
		t.Fatalf("frame 1 left = %v, want %v", left[1], want)
	}
}

// encodeRawWAV builds a stereo WAV with the given format tag around raw
// little-endian sample data.
func encodeRawWAV(formatTag uint16, bitDepth int, data []byte) []byte {
	width := bitDepth / 8
	var b bytes.Buffer
	le := func(v any) { _ = binary.Write(&b, binary.LittleEndian, v) }

	b.WriteString("RIFF")
	le(uint32(4 + 8 + 16 + 8 + len(data)))
	b.WriteString("WAVEfmt ")
	le(uint32(16))
	le(formatTag)
	le(uint16(2))
	le(uint32(44100))
	le(uint32(44100 * 2 * width))
	le(uint16(2 * width))
	le(uint16(bitDepth))
	b.WriteString("data")
	le(uint32(len(data)))
	b.Write(data)
	return b.Bytes()
}

func TestDecodeSoundFloat(t *testing.T) {
	frames := []float64{0.5, -0.25, 0.125, 1}

	tests := []struct {
		name     string
		bitDepth int
		put      func([]byte, float64)
	}{
		{"float32", 32, func(b []byte, v float64) {
			binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
		}},
		{"float64", 64, func(b []byte, v float64) {
			binary.LittleEndian.PutUint64(b, math.Float64bits(v))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			width := tt.bitDepth / 8
			data := make([]byte, width*len(frames))
			for i, v := range frames {
				tt.put(data[width*i:], v)
			}

			sd, err := DecodeSound(bytes.NewReader(encodeRawWAV(wavFormatFloat, tt.bitDepth, data)))
			if err != nil {
				t.Fatalf("DecodeSound() error = %v", err)
			}
			if sd.Channels != 2 || sd.SampleSize != 4 || sd.SampleCount != 2 {
				t.Fatalf("SoundData = %d ch, %d bytes, %d frames", sd.Channels, sd.SampleSize, sd.SampleCount)
			}

			left := make([]float64, 2)
			right := make([]float64, 2)
			if err := hrir.ConvertSoundData(sd, left, right); err != nil {
				t.Fatal(err)
			}
			testutil.RequireSliceNearlyEqual(t, left, []float64{0.5, 0.125}, 0)
			testutil.RequireSliceNearlyEqual(t, right, []float64{-0.25, 1}, 0)
		})
	}
}

func TestDecodeSoundRejectsOtherEncodings(t *testing.T) {
	tests := []struct {
		name      string
		formatTag uint16
		bitDepth  int
	}{
		{"a-law", 6, 8},
		{"16-bit float", wavFormatFloat, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := encodeRawWAV(tt.formatTag, tt.bitDepth, make([]byte, 16))
			if _, err := DecodeSound(bytes.NewReader(raw)); !errors.Is(err, ErrUnsupportedFormat) {
				t.Fatalf("DecodeSound() error = %v, want ErrUnsupportedFormat", err)
			}
		})
	}
}

func TestDecodeSoundRejectsGarbage(t *testing.T) {
	_, err := DecodeSound(bytes.NewReader([]byte("definitely not a riff file, just text")))
	if !errors.Is(err, ErrNotWAV) {
		t.Fatalf("DecodeSound() error = %v, want ErrNotWAV", err)
	}

	if _, err := LoadSound(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Fatal("LoadSound(missing) should fail")
	}
}

func TestListFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.wav", "a.wav", "sub/c.wav", "sub/deeper/d.wav"} {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	rel := func(files []string) []string {
		out := make([]string, len(files))
		for i, f := range files {
			r, err := filepath.Rel(root, f)
			if err != nil {
				t.Fatal(err)
			}
			out[i] = filepath.ToSlash(r)
		}
		return out
	}

	flat, err := ListFiles(root, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := fmt.Sprint(rel(flat)); got != "[a.wav b.wav]" {
		t.Fatalf("ListFiles(flat) = %s", got)
	}

	all, err := ListFiles(root, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := fmt.Sprint(rel(all)); got != "[a.wav b.wav sub/c.wav sub/deeper/d.wav]" {
		t.Fatalf("ListFiles(recurse) = %s", got)
	}

	if _, err := ListFiles(filepath.Join(root, "nope"), false); err == nil {
		t.Fatal("ListFiles(missing) should fail")
	}
}

func TestParseMITName(t *testing.T) {
	tests := []struct {
		path string
		want []Placement
		ok   bool
	}{
		{"H0e070a.wav", []Placement{{0, -70, false}, {0, 70, true}}, true},
		{"db/elev-10/H-10e005a.wav", []Placement{{-10, -5, false}, {-10, 5, true}}, true},
		{"H40e000a.wav", []Placement{{40, 0, false}}, true},
		{"H0e180a.wav", []Placement{{0, -180, false}}, true},
		{"L0e070a.wav", nil, false},
		{"H0e070.wav", nil, false},
		{"H0x070a.wav", nil, false},
		{"Hxe070a.wav", nil, false},
		{"readme.txt", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := ParseMITName(tt.path)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Fatalf("placements = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseIRCAMName(t *testing.T) {
	tests := []struct {
		path string
		want []Placement
		ok   bool
	}{
		{"IRC_1002_C_R0195_T090_P000.wav", []Placement{{0, 90, false}}, true},
		{"IRC_1002_C_R0195_T345_P315.wav", []Placement{{-45, 345, false}}, true},
		{"IRC_1002_C_R0195_T000_P090.wav", []Placement{{90, 0, false}}, true},
		{"IRC_1002_C_R0195_T090.wav", nil, false},
		{"XYZ_1002_C_R0195_T090_P000.wav", nil, false},
		{"IRC_1002_C_X0195_T090_P000.wav", nil, false},
		{"IRC_1002_C_R0195_Tabc_P000.wav", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := ParseIRCAMName(tt.path)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Fatalf("placements = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayoutByName(t *testing.T) {
	for _, name := range Layouts() {
		if _, err := LayoutByName(name); err != nil {
			t.Fatalf("LayoutByName(%q) error = %v", name, err)
		}
	}
	if _, err := LayoutByName("MIT"); err != nil {
		t.Fatalf("LayoutByName is case sensitive: %v", err)
	}
	if _, err := LayoutByName("cipic"); err == nil {
		t.Fatal("LayoutByName(cipic) should fail")
	}
}

func TestBuildCountsAndMirrors(t *testing.T) {
	root := t.TempDir()
	writeWAV(t, filepath.Join(root, "H0e000a.wav"), 16, impulseFrames(0.5, 0.25))
	writeWAV(t, filepath.Join(root, "H0e090a.wav"), 16, impulseFrames(0.5, 0.25))
	writeWAV(t, filepath.Join(root, "H0e180a.wav"), 16, impulseFrames(0.5, 0.25))
	if err := os.WriteFile(filepath.Join(root, "H0e045a.wav"), []byte("broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "readme.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ListFiles(root, false)
	if err != nil {
		t.Fatal(err)
	}
	set, err := hrir.NewSampleSet()
	if err != nil {
		t.Fatal(err)
	}

	report, err := Build(set, files, ParseMITName)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if report != (Report{Added: 4, Skipped: 1, Ignored: 1}) {
		t.Fatalf("Report = %+v", report)
	}

	for i := range set.Len() {
		s := set.Sample(i)
		wantL, wantR := 0.5, 0.25
		if s.Azimuth > 0 {
			wantL, wantR = wantR, wantL
		}
		if s.Left[0] != wantL || s.Right[0] != wantR {
			t.Fatalf("sample at %v: (%v, %v), want (%v, %v)", s.Azimuth, s.Left[0], s.Right[0], wantL, wantR)
		}
	}
}

func TestBuildSwapChannels(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "H0e000a.wav")
	writeWAV(t, path, 16, impulseFrames(0.5, 0.25))

	set, _ := hrir.NewSampleSet()
	if _, err := Build(set, []string{path}, ParseMITName, WithSwapChannels(true)); err != nil {
		t.Fatal(err)
	}
	if s := set.Sample(0); s.Left[0] != 0.25 || s.Right[0] != 0.5 {
		t.Fatalf("swapped sample = (%v, %v)", s.Left[0], s.Right[0])
	}
}

func TestBuildTailFade(t *testing.T) {
	frames := make([][2]int, hrir.Len+100)
	for i := range frames {
		frames[i] = [2]int{16384, -16384}
	}
	path := filepath.Join(t.TempDir(), "H0e000a.wav")
	writeWAV(t, path, 16, frames)

	set, _ := hrir.NewSampleSet()
	if _, err := Build(set, []string{path}, ParseMITName, WithTailFade(64)); err != nil {
		t.Fatal(err)
	}

	s := set.Sample(0)
	if s.Left[0] != 0.5 || s.Right[hrir.Len-65] != -0.5 {
		t.Fatalf("head changed: %v %v", s.Left[0], s.Right[hrir.Len-65])
	}
	if s.Left[hrir.Len-1] != 0 || s.Right[hrir.Len-1] != 0 {
		t.Fatalf("tail not faded: %v %v", s.Left[hrir.Len-1], s.Right[hrir.Len-1])
	}
	for i := hrir.Len - 64; i < hrir.Len-1; i++ {
		if s.Left[i] <= s.Left[i+1] {
			t.Fatalf("fade not decreasing at %d", i)
		}
	}

	if _, err := Build(set, nil, ParseMITName, WithTailFade(hrir.Len+1)); err == nil {
		t.Fatal("WithTailFade(> Len) should fail")
	}
}

func TestBuildErrors(t *testing.T) {
	set, _ := hrir.NewSampleSet()
	if _, err := Build(nil, nil, ParseMITName); err == nil {
		t.Fatal("Build(nil set) should fail")
	}
	if _, err := Build(set, nil, nil); err == nil {
		t.Fatal("Build(nil parser) should fail")
	}
	if _, err := Build(set, nil, ParseMITName, WithLogger(nil)); err == nil {
		t.Fatal("Build(WithLogger(nil)) should fail")
	}

	_ = set.AddData(hrir.Data{}, 0, 0)
	_ = set.AddData(hrir.Data{}, 0, 90)
	_ = set.AddData(hrir.Data{}, 45, 45)
	if err := set.Finalize(); err != nil {
		t.Fatal(err)
	}
	if _, err := Build(set, nil, ParseMITName); !errors.Is(err, hrir.ErrFinalized) {
		t.Fatalf("Build(finalized) error = %v, want ErrFinalized", err)
	}
}

func TestLoadDir(t *testing.T) {
	root := t.TempDir()
	for _, e := range []int{-40, 0, 40} {
		for _, a := range []int{0, 60, 120, 180} {
			name := fmt.Sprintf("elev%d/H%de%03da.wav", e, e, a)
			writeWAV(t, filepath.Join(root, name), 16, impulseFrames(0.5, 0.25))
		}
	}

	set, report, err := LoadDir(root, ParseMITName)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if report.Added != 18 || set.Len() != 18 || !set.Finalized() {
		t.Fatalf("report %+v, %d samples, finalized %v", report, set.Len(), set.Finalized())
	}

	var out hrir.Data
	blend := func(e, a float64) {
		t.Helper()
		m, ok := set.Lookup3(e, a)
		if !ok {
			t.Fatalf("Lookup3(%v, %v) not found", e, a)
		}
		out = hrir.Data{}
		for k := range 3 {
			out.Left[0] += m.Weights[k] * m.Samples[k].Left[0]
		}
	}

	blend(0, -60)
	if math.Abs(out.Left[0]-0.5) > 1e-9 {
		t.Fatalf("left at -60 = %v, want 0.5", out.Left[0])
	}
	blend(0, 60)
	if math.Abs(out.Left[0]-0.25) > 1e-9 {
		t.Fatalf("mirrored left at +60 = %v, want 0.25", out.Left[0])
	}
}

func TestLoadDirEmpty(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "readme.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := LoadDir(root, ParseMITName); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("LoadDir() error = %v, want ErrNoSamples", err)
	}
}
