package hrir

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"

	"github.com/cwbudde/algo-binaural/internal/delaunay"
)

// Errors returned by SampleSet.
var (
	ErrFinalized     = errors.New("hrir: sample set already finalized")
	ErrTooFewSamples = errors.New("hrir: at least two distinct sample locations are required")
	ErrNoTriangles   = errors.New("hrir: triangulation produced no triangles")
)

// Option configures a SampleSet.
type Option func(*SampleSet) error

// WithLogger sets the logger used during Finalize.
func WithLogger(logger *slog.Logger) Option {
	return func(s *SampleSet) error {
		if logger == nil {
			return fmt.Errorf("hrir: logger must not be nil")
		}
		s.logger = logger
		return nil
	}
}

// SampleSet owns a collection of samples and, once finalized, their
// triangulated grid.
type SampleSet struct {
	samples   []Sample
	grid      Grid
	finalized bool
	logger    *slog.Logger
}

// Match is the result of Lookup3. Samples point into the set and must not
// be modified.
type Match struct {
	Samples [3]*Data
	Indices [3]int
	Weights [3]float64
}

// NewSampleSet creates an empty sample set.
func NewSampleSet(opts ...Option) (*SampleSet, error) {
	s := &SampleSet{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *SampleSet) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.logger
}

// Len returns the number of samples.
func (s *SampleSet) Len() int { return len(s.samples) }

// Sample returns sample i. The result must not be modified.
func (s *SampleSet) Sample(i int) *Sample { return &s.samples[i] }

// Finalized reports whether Finalize has completed.
func (s *SampleSet) Finalized() bool { return s.finalized }

// Grid returns the triangulated grid. It is empty before Finalize.
func (s *SampleSet) Grid() *Grid { return &s.grid }

// AddSample converts a raw stereo measurement and appends it. With swapLR
// the first channel is stored as the right ear.
func (s *SampleSet) AddSample(sd SoundData, elevation, azimuth float64, swapLR bool) error {
	if s.finalized {
		return ErrFinalized
	}

	var d Data
	left, right := d.Left[:], d.Right[:]
	if swapLR {
		left, right = right, left
	}
	if err := ConvertSoundData(sd, left, right); err != nil {
		return err
	}

	s.samples = append(s.samples, Sample{Data: d, Elevation: elevation, Azimuth: azimuth})
	return nil
}

// AddData appends an already converted impulse response pair.
func (s *SampleSet) AddData(d Data, elevation, azimuth float64) error {
	if s.finalized {
		return ErrFinalized
	}

	s.samples = append(s.samples, Sample{Data: d, Elevation: elevation, Azimuth: azimuth})
	return nil
}

// Finalize triangulates the sample locations and builds the grid. The set
// is read-only afterwards.
func (s *SampleSet) Finalize() error {
	if s.finalized {
		return ErrFinalized
	}

	verts := s.uniqueVertices()
	if len(verts) < 2 {
		return fmt.Errorf("%w: have %d", ErrTooFewSamples, len(verts))
	}

	points := make([]delaunay.Point, len(verts))
	for i, v := range verts {
		points[i] = delaunay.Point{X: v.Azimuth, Y: v.Elevation}
	}

	var tris []Triangle
	if delaunay.Collinear(points) {
		tris = segmentTriangles(verts)
		s.log().Debug("hrir: collinear sample locations, using segment interpolation",
			"samples", len(verts), "segments", len(tris))
	} else {
		tris = triangulate(verts)
	}
	if len(tris) == 0 {
		return ErrNoTriangles
	}

	s.grid = Grid{Triangles: tris}
	for i := range tris {
		s.grid.insert(i)
	}
	s.finalized = true

	s.log().Debug("hrir: sample set finalized",
		"samples", len(s.samples), "triangles", len(tris))

	return nil
}

// Lookup3 returns the three samples enclosing a direction and their
// barycentric weights. It reports false outside the triangulated area or
// before Finalize.
func (s *SampleSet) Lookup3(elevation, azimuth float64) (Match, bool) {
	if !s.finalized {
		return Match{}, false
	}

	t, u, v, ok := s.grid.LookupTriangle(elevation, azimuth)
	if !ok {
		return Match{}, false
	}

	weights := [3]float64{1 - u - v, v, u}

	var m Match
	for i, vert := range t.Vertices {
		m.Indices[i] = vert.SampleIndex
		m.Samples[i] = &s.samples[vert.SampleIndex].Data
		m.Weights[i] = weights[i]
	}

	return m, true
}

// uniqueVertices returns one vertex per distinct location with the azimuth
// wrapped into [-180, 180). Later duplicates are dropped.
func (s *SampleSet) uniqueVertices() []Vertex {
	seen := make(map[Location]int, len(s.samples))
	verts := make([]Vertex, 0, len(s.samples))

	for i, smp := range s.samples {
		loc := Location{Elevation: smp.Elevation, Azimuth: CanonicalAzimuth(smp.Azimuth)}
		if first, dup := seen[loc]; dup {
			s.log().Warn("hrir: duplicate sample location ignored",
				"elevation", smp.Elevation, "azimuth", smp.Azimuth, "index", i, "kept", first)
			continue
		}
		seen[loc] = i
		verts = append(verts, Vertex{Location: loc, SampleIndex: i})
	}

	return verts
}

func withGhosts(verts []Vertex, all bool) []Vertex {
	out := append([]Vertex(nil), verts...)
	for _, v := range verts {
		if all || v.Azimuth >= 90 {
			g := v
			g.Azimuth -= 360
			out = append(out, g)
		}
		if all || v.Azimuth <= -90 {
			g := v
			g.Azimuth += 360
			out = append(out, g)
		}
	}
	return out
}

func triangulate(verts []Vertex) []Triangle {
	all := withGhosts(verts, false)

	points := make([]delaunay.Point, len(all))
	for i, v := range all {
		points[i] = delaunay.Point{X: v.Azimuth, Y: v.Elevation}
	}

	var tris []Triangle
	for _, dt := range delaunay.Triangulate(points) {
		t := Triangle{Vertices: [3]Vertex{all[dt[0]], all[dt[1]], all[dt[2]]}}
		if !distinctSamples(t) || !overlapsCanonical(t) {
			continue
		}
		tris = append(tris, t)
	}

	return tris
}

// segmentTriangles links neighbouring collinear samples. A constant
// elevation ring is closed across the azimuth seam.
func segmentTriangles(verts []Vertex) []Triangle {
	ring := true
	for _, v := range verts[1:] {
		if v.Elevation != verts[0].Elevation {
			ring = false
			break
		}
	}

	line := verts
	if ring {
		line = withGhosts(verts, true)
	} else {
		line = append([]Vertex(nil), verts...)
	}

	sort.SliceStable(line, func(i, j int) bool {
		if line[i].Azimuth != line[j].Azimuth {
			return line[i].Azimuth < line[j].Azimuth
		}
		return line[i].Elevation < line[j].Elevation
	})

	var tris []Triangle
	for i := 1; i < len(line); i++ {
		a, b := line[i-1], line[i]
		t := Triangle{Vertices: [3]Vertex{a, b, b}, Degenerate: true}
		if a.SampleIndex == b.SampleIndex || !overlapsCanonical(t) {
			continue
		}
		tris = append(tris, t)
	}

	return tris
}

func distinctSamples(t Triangle) bool {
	a, b, c := t.Vertices[0].SampleIndex, t.Vertices[1].SampleIndex, t.Vertices[2].SampleIndex
	return a != b && b != c && a != c
}

func overlapsCanonical(t Triangle) bool {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range t.Vertices {
		lo = math.Min(lo, v.Azimuth)
		hi = math.Max(hi, v.Azimuth)
	}
	return hi >= -180 && lo <= 180
}
