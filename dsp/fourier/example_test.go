package fourier_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-binaural/dsp/fourier"
)

func ExampleNewRadix2() {
	tr, err := fourier.NewRadix2(8)
	if err != nil {
		panic(err)
	}

	re := []float64{1, 1, 1, 1, 0, 0, 0, 0}
	im := make([]float64, 8)
	_ = tr.Forward(re, im)

	fmt.Printf("DC=%.1f\n", re[0])
	fmt.Printf("|X1|=%.3f\n", math.Hypot(re[1], im[1]))

	_ = tr.Inverse(re, im)
	fmt.Printf("x0=%.1f x4=%.1f\n", re[0], math.Abs(re[4]))
	// Output:
	// DC=4.0
	// |X1|=2.613
	// x0=1.0 x4=0.0
}
