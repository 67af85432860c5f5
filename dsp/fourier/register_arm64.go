//go:build arm64

package fourier

import "github.com/cwbudde/algo-vecmath/cpu"

func init() {
	Global.Register(Entry{
		Name:      "algofft",
		SIMDLevel: cpu.SIMDNEON,
		Priority:  10,
		New: func(n int) (Transform, error) {
			return NewPlan(n)
		},
	})
}
