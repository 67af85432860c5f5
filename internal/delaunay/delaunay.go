// Package delaunay triangulates sample locations on the elevation/azimuth
// plane. The triangulation itself comes from github.com/fogleman/delaunay;
// this package fixes the winding, drops duplicates and slivers, and
// reports collinear inputs that have no triangulation.
package delaunay

import (
	"math"

	fdelaunay "github.com/fogleman/delaunay"
)

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Triangle holds three indices into the input point slice in
// counter-clockwise order.
type Triangle [3]int

// Triangulate returns the Delaunay triangulation of points. It returns nil
// when fewer than three distinct points are given or when all points are
// collinear. Exact duplicates after the first occurrence are never
// referenced.
func Triangulate(points []Point) []Triangle {
	unique := make([]fdelaunay.Point, 0, len(points))
	index := make([]int, 0, len(points))
	seen := make(map[Point]struct{}, len(points))
	for i, p := range points {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, fdelaunay.Point{X: p.X, Y: p.Y})
		index = append(index, i)
	}

	if len(unique) < 3 || Collinear(points) {
		return nil
	}

	tri, err := fdelaunay.Triangulate(unique)
	if err != nil {
		return nil
	}

	eps := collinearEps(span(points))
	out := make([]Triangle, 0, len(tri.Triangles)/3)
	for k := 0; k+2 < len(tri.Triangles); k += 3 {
		t := Triangle{index[tri.Triangles[k]], index[tri.Triangles[k+1]], index[tri.Triangles[k+2]]}

		o := Orient(points[t[0]], points[t[1]], points[t[2]])
		if math.Abs(o) <= eps {
			continue
		}
		if o < 0 {
			t[1], t[2] = t[2], t[1]
		}
		out = append(out, t)
	}

	return out
}

// Orient returns twice the signed area of abc. It is positive when the
// points are in counter-clockwise order.
func Orient(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// Collinear reports whether all points lie on one line.
func Collinear(points []Point) bool {
	if len(points) < 3 {
		return true
	}

	a := points[0]
	var b Point
	found := false
	for _, p := range points[1:] {
		if p != a {
			b = p
			found = true
			break
		}
	}
	if !found {
		return true
	}

	eps := collinearEps(span(points))
	for _, p := range points {
		if math.Abs(Orient(a, b, p)) > eps {
			return false
		}
	}

	return true
}

func span(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	a := points[0]
	var s float64
	for _, p := range points[1:] {
		s = math.Max(s, math.Max(math.Abs(p.X-a.X), math.Abs(p.Y-a.Y)))
	}
	return s
}

func collinearEps(span float64) float64 {
	return 1e-12 * span * span
}
