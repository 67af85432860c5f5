package hrir

import "math"

// Grid resolution. Elevation cells span 180 degrees, azimuth cells 360.
const (
	GridElevationCells = 20
	GridAzimuthCells   = 40
)

// BaryEpsilon is the tolerance of the point-in-triangle test.
const BaryEpsilon = 0.001

// Location is a direction in degrees.
type Location struct {
	Elevation float64
	Azimuth   float64
}

// Vertex is a triangle corner. Its location may be shifted by +/-360 degrees
// in azimuth relative to the sample it references.
type Vertex struct {
	Location
	SampleIndex int
}

// Triangle is one interpolation patch. A degenerate triangle is a segment
// from Vertices[0] to Vertices[1]; Vertices[2] repeats Vertices[1].
type Triangle struct {
	Vertices   [3]Vertex
	Degenerate bool
}

// Cell lists the triangles whose bounding box overlaps the cell.
type Cell struct {
	Triangles []int
}

// Grid is the triangulated spatial index of a SampleSet.
type Grid struct {
	Triangles []Triangle
	Cells     [GridElevationCells][GridAzimuthCells]Cell
}

var azimuthOffsets = [...]float64{0, -360, 360}

func elevationCell(elevation float64) int {
	return int(math.Floor(elevation / 180 * GridElevationCells))
}

func azimuthCell(azimuth float64) int {
	return int(math.Floor(azimuth / 360 * GridAzimuthCells))
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// LookupCell returns the cell containing a direction. Both axes wrap.
func (g *Grid) LookupCell(elevation, azimuth float64) *Cell {
	x := wrapIndex(elevationCell(elevation), GridElevationCells)
	y := wrapIndex(azimuthCell(azimuth), GridAzimuthCells)
	return &g.Cells[x][y]
}

// LookupTriangle finds the first triangle of the direction's cell that
// contains it. The barycentric coordinates u and v weight Vertices[2] and
// Vertices[1]; Vertices[0] gets 1-u-v.
func (g *Grid) LookupTriangle(elevation, azimuth float64) (*Triangle, float64, float64, bool) {
	azimuth = CanonicalAzimuth(azimuth)
	cell := g.LookupCell(elevation, azimuth)

	for _, ti := range cell.Triangles {
		t := &g.Triangles[ti]
		for _, off := range azimuthOffsets {
			p := Location{Elevation: elevation, Azimuth: azimuth + off}

			var (
				u, v float64
				ok   bool
			)
			if t.Degenerate {
				u, v, ok = segmentCoords(t, p)
			} else {
				u, v, ok = barycentric(t, p)
			}
			if ok {
				return t, u, v, true
			}
		}
	}

	return nil, 0, 0, false
}

func (g *Grid) insert(index int) {
	t := &g.Triangles[index]

	minE, maxE := math.Inf(1), math.Inf(-1)
	minA, maxA := math.Inf(1), math.Inf(-1)
	for _, v := range t.Vertices {
		minE = math.Min(minE, v.Elevation)
		maxE = math.Max(maxE, v.Elevation)
		minA = math.Min(minA, v.Azimuth)
		maxA = math.Max(maxA, v.Azimuth)
	}

	x1, x2 := elevationCell(minE), elevationCell(maxE)
	y1, y2 := azimuthCell(minA), azimuthCell(maxA)
	x2 = min(x2, x1+GridElevationCells-1)
	y2 = min(y2, y1+GridAzimuthCells-1)

	for x := x1; x <= x2; x++ {
		for y := y1; y <= y2; y++ {
			c := &g.Cells[wrapIndex(x, GridElevationCells)][wrapIndex(y, GridAzimuthCells)]
			c.Triangles = append(c.Triangles, index)
		}
	}
}

func barycentric(t *Triangle, p Location) (u, v float64, ok bool) {
	a, b, c := t.Vertices[0].Location, t.Vertices[1].Location, t.Vertices[2].Location

	v0 := sub(c, a)
	v1 := sub(b, a)
	v2 := sub(p, a)

	d00 := dot(v0, v0)
	d01 := dot(v0, v1)
	d02 := dot(v0, v2)
	d11 := dot(v1, v1)
	d12 := dot(v1, v2)

	den := d00*d11 - d01*d01
	if den == 0 {
		return 0, 0, false
	}

	u = (d11*d02 - d01*d12) / den
	v = (d00*d12 - d01*d02) / den

	if u >= -BaryEpsilon && v >= -BaryEpsilon && u+v < 1+BaryEpsilon {
		return u, v, true
	}

	return 0, 0, false
}

// segmentCoords projects p onto the segment of a degenerate triangle. The
// result is expressed like barycentric: u is always zero and v is the
// fraction along the segment.
func segmentCoords(t *Triangle, p Location) (u, v float64, ok bool) {
	a, b := t.Vertices[0].Location, t.Vertices[1].Location

	d := sub(b, a)
	w := sub(p, a)

	dd := dot(d, d)
	if dd == 0 {
		return 0, 0, false
	}

	s := dot(w, d) / dd
	if s < -BaryEpsilon || s > 1+BaryEpsilon {
		return 0, 0, false
	}

	cross := d.Elevation*w.Azimuth - d.Azimuth*w.Elevation
	if math.Abs(cross)/dd > BaryEpsilon {
		return 0, 0, false
	}

	return 0, math.Max(0, math.Min(1, s)), true
}

func sub(a, b Location) Location {
	return Location{Elevation: a.Elevation - b.Elevation, Azimuth: a.Azimuth - b.Azimuth}
}

func dot(a, b Location) float64 {
	return a.Elevation*b.Elevation + a.Azimuth*b.Azimuth
}

// CanonicalAzimuth wraps an azimuth into [-180, 180).
func CanonicalAzimuth(azimuth float64) float64 {
	a := math.Mod(azimuth+180, 360)
	if a < 0 {
		a += 360
	}
	return a - 180
}
