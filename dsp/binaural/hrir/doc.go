// Package hrir stores measured head-related impulse responses and answers
// direction queries against them.
//
// A SampleSet is filled with AddSample or AddData, then frozen with
// Finalize, which triangulates the (elevation, azimuth) sample locations and
// buckets the triangles into a wrap-around grid:
//
//   - elevation wraps with a period of 180 degrees over GridElevationCells
//   - azimuth wraps with a period of 360 degrees over GridAzimuthCells
//   - samples near the azimuth seam are duplicated at +/-360 degrees so that
//     triangles can straddle it
//   - collinear sets (for example a single horizontal ring) fall back to
//     segment interpolation between neighbouring samples
//
// Lookup3 returns the three samples enclosing a direction together with
// barycentric weights that sum to one. A finalized SampleSet is never
// mutated again and may be shared across goroutines without locking.
//
// Save and Load persist the samples and the triangulated grid so the
// triangulation cost is paid once.
package hrir
