package hrir

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// File format constants.
const (
	MagicNumber           = "HRIR"
	CurrentVersion uint16 = 1
)

// maxRecords bounds counts read from a stream before allocating.
const maxRecords = 1 << 22

// Persistence errors.
var (
	ErrInvalidMagic       = errors.New("hrir: invalid magic number")
	ErrUnsupportedVersion = errors.New("hrir: unsupported format version")
	ErrCorruptedData      = errors.New("hrir: corrupted data")
	ErrGridMismatch       = errors.New("hrir: grid resolution mismatch")
)

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

type vertexRecord struct {
	Elevation   float64
	Azimuth     float64
	SampleIndex uint32
}

type triangleRecord struct {
	Degenerate uint8
	Vertices   [3]vertexRecord
}

type sampleRecord struct {
	Elevation float64
	Azimuth   float64
	Left      [Len]float64
	Right     [Len]float64
}

// WriteTo writes the triangles followed by the per-cell triangle lists.
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}

	if err := binary.Write(cw, binary.LittleEndian, uint32(len(g.Triangles))); err != nil {
		return cw.n, err
	}
	for _, t := range g.Triangles {
		rec := triangleRecord{}
		if t.Degenerate {
			rec.Degenerate = 1
		}
		for i, v := range t.Vertices {
			rec.Vertices[i] = vertexRecord{
				Elevation:   v.Elevation,
				Azimuth:     v.Azimuth,
				SampleIndex: uint32(v.SampleIndex),
			}
		}
		if err := binary.Write(cw, binary.LittleEndian, &rec); err != nil {
			return cw.n, err
		}
	}

	dims := [2]uint32{GridElevationCells, GridAzimuthCells}
	if err := binary.Write(cw, binary.LittleEndian, dims); err != nil {
		return cw.n, err
	}

	for x := range g.Cells {
		for y := range g.Cells[x] {
			idx := g.Cells[x][y].Triangles
			if err := binary.Write(cw, binary.LittleEndian, uint32(len(idx))); err != nil {
				return cw.n, err
			}
			buf := make([]uint32, len(idx))
			for i, ti := range idx {
				buf[i] = uint32(ti)
			}
			if err := binary.Write(cw, binary.LittleEndian, buf); err != nil {
				return cw.n, err
			}
		}
	}

	return cw.n, nil
}

// ReadFrom replaces g with a grid previously written by WriteTo.
func (g *Grid) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}

	var count uint32
	if err := binary.Read(cr, binary.LittleEndian, &count); err != nil {
		return cr.n, fmt.Errorf("%w: %w", ErrCorruptedData, err)
	}
	if count > maxRecords {
		return cr.n, fmt.Errorf("%w: triangle count %d", ErrCorruptedData, count)
	}

	tris := make([]Triangle, count)
	for i := range tris {
		var rec triangleRecord
		if err := binary.Read(cr, binary.LittleEndian, &rec); err != nil {
			return cr.n, fmt.Errorf("%w: %w", ErrCorruptedData, err)
		}
		tris[i].Degenerate = rec.Degenerate != 0
		for j, v := range rec.Vertices {
			tris[i].Vertices[j] = Vertex{
				Location:    Location{Elevation: v.Elevation, Azimuth: v.Azimuth},
				SampleIndex: int(v.SampleIndex),
			}
		}
	}

	var dims [2]uint32
	if err := binary.Read(cr, binary.LittleEndian, &dims); err != nil {
		return cr.n, fmt.Errorf("%w: %w", ErrCorruptedData, err)
	}
	if dims[0] != GridElevationCells || dims[1] != GridAzimuthCells {
		return cr.n, fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrGridMismatch, dims[0], dims[1], GridElevationCells, GridAzimuthCells)
	}

	var cells [GridElevationCells][GridAzimuthCells]Cell
	for x := range cells {
		for y := range cells[x] {
			var n uint32
			if err := binary.Read(cr, binary.LittleEndian, &n); err != nil {
				return cr.n, fmt.Errorf("%w: %w", ErrCorruptedData, err)
			}
			if n > count {
				return cr.n, fmt.Errorf("%w: cell (%d,%d) lists %d of %d triangles", ErrCorruptedData, x, y, n, count)
			}
			buf := make([]uint32, n)
			if err := binary.Read(cr, binary.LittleEndian, buf); err != nil {
				return cr.n, fmt.Errorf("%w: %w", ErrCorruptedData, err)
			}
			if n == 0 {
				continue
			}
			idx := make([]int, n)
			for i, ti := range buf {
				if ti >= count {
					return cr.n, fmt.Errorf("%w: triangle index %d out of range", ErrCorruptedData, ti)
				}
				idx[i] = int(ti)
			}
			cells[x][y].Triangles = idx
		}
	}

	g.Triangles = tris
	g.Cells = cells

	return cr.n, nil
}

// Save writes the samples and, when finalized, the grid.
func (s *SampleSet) Save(w io.Writer) error {
	if _, err := io.WriteString(w, MagicNumber); err != nil {
		return err
	}

	header := struct {
		Version   uint16
		Finalized uint8
		Samples   uint32
	}{Version: CurrentVersion, Samples: uint32(len(s.samples))}
	if s.finalized {
		header.Finalized = 1
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}

	for i := range s.samples {
		smp := &s.samples[i]
		rec := sampleRecord{
			Elevation: smp.Elevation,
			Azimuth:   smp.Azimuth,
			Left:      smp.Left,
			Right:     smp.Right,
		}
		if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
			return err
		}
	}

	if !s.finalized {
		return nil
	}

	_, err := s.grid.WriteTo(w)
	return err
}

// Load reads a sample set written by Save. A finalized set is restored
// without repeating the triangulation.
func Load(r io.Reader, opts ...Option) (*SampleSet, error) {
	s, err := NewSampleSet(opts...)
	if err != nil {
		return nil, err
	}

	magic := make([]byte, len(MagicNumber))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptedData, err)
	}
	if string(magic) != MagicNumber {
		return nil, ErrInvalidMagic
	}

	var header struct {
		Version   uint16
		Finalized uint8
		Samples   uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptedData, err)
	}
	if header.Version != CurrentVersion {
		return nil, fmt.Errorf("%w: got version %d, expected %d", ErrUnsupportedVersion, header.Version, CurrentVersion)
	}
	if header.Samples > maxRecords {
		return nil, fmt.Errorf("%w: sample count %d", ErrCorruptedData, header.Samples)
	}

	s.samples = make([]Sample, header.Samples)
	for i := range s.samples {
		var rec sampleRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptedData, err)
		}
		s.samples[i] = Sample{
			Data:      Data{Left: rec.Left, Right: rec.Right},
			Elevation: rec.Elevation,
			Azimuth:   rec.Azimuth,
		}
	}

	if header.Finalized == 0 {
		return s, nil
	}

	if _, err := s.grid.ReadFrom(r); err != nil {
		return nil, err
	}
	for ti, t := range s.grid.Triangles {
		for _, v := range t.Vertices {
			if v.SampleIndex >= len(s.samples) {
				return nil, fmt.Errorf("%w: triangle %d references sample %d of %d",
					ErrCorruptedData, ti, v.SampleIndex, len(s.samples))
			}
		}
	}
	s.finalized = true

	return s, nil
}
