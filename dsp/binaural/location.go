package binaural

import (
	"math"

	"github.com/cwbudde/algo-binaural/dsp/binaural/hrir"
)

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// ElevationAzimuthToCartesian maps a direction in degrees to a unit vector.
// y points up, x forward and z to the side.
func ElevationAzimuthToCartesian(elevation, azimuth float64) (x, y, z float64) {
	e := elevation * degToRad
	a := azimuth * degToRad

	y = math.Sin(e)
	x = math.Cos(a) * math.Cos(e)
	z = math.Sin(a) * math.Abs(math.Cos(e))
	return x, y, z
}

// CartesianToElevationAzimuth is the inverse of ElevationAzimuthToCartesian.
// The vector does not need to be normalised. Straight up or down yields
// azimuth 0.
func CartesianToElevationAzimuth(x, y, z float64) (elevation, azimuth float64) {
	azimuth = math.Atan2(z, x) * radToDeg

	h := math.Hypot(z, x)
	switch {
	case h != 0:
		elevation = math.Atan(y/h) * radToDeg
	case y < 0:
		elevation = -90
	default:
		elevation = 90
	}

	return elevation, azimuth
}

// ClampLocation wraps the azimuth into [-180, 180) and keeps both angles
// LocationEpsilon away from the poles and the seam.
func ClampLocation(elevation, azimuth float64) (float64, float64) {
	const lim = 90 - LocationEpsilon

	if math.IsNaN(elevation) {
		elevation = 0
	}
	if math.IsNaN(azimuth) || math.IsInf(azimuth, 0) {
		azimuth = 0
	}

	elevation = math.Max(-lim, math.Min(lim, elevation))
	azimuth = hrir.CanonicalAzimuth(azimuth)
	azimuth = math.Max(-180+LocationEpsilon, math.Min(180-LocationEpsilon, azimuth))

	return elevation, azimuth
}
