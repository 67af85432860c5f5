//go:build fastmath

package spectrum

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// log10 goes through the fast natural logarithm.
func log10(x float64) float64 {
	return approx.FastLog(x) / math.Ln10
}
