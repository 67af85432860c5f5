package binaural

import (
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-binaural/dsp/binaural/hrir"
)

// Blend3 writes wa*a + wb*b + wc*c to out, per ear. The weights are used as
// given. out may alias a but not b or c.
func Blend3(a *hrir.Data, wa float64, b *hrir.Data, wb float64, c *hrir.Data, wc float64, out *hrir.Data) {
	floats.ScaleTo(out.Left[:], wa, a.Left[:])
	floats.AddScaled(out.Left[:], wb, b.Left[:])
	floats.AddScaled(out.Left[:], wc, c.Left[:])

	floats.ScaleTo(out.Right[:], wa, a.Right[:])
	floats.AddScaled(out.Right[:], wb, b.Right[:])
	floats.AddScaled(out.Right[:], wc, c.Right[:])
}

// BlendMatch blends the samples of a lookup result by their weights.
func BlendMatch(m *hrir.Match, out *hrir.Data) {
	Blend3(m.Samples[0], m.Weights[0], m.Samples[1], m.Weights[1], m.Samples[2], m.Weights[2], out)
}
