package wavetable_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-bpmlfo/dsp/wavetable"
)

func ExampleGenerate() {
	tbl, err := wavetable.Generate(4)
	if err != nil {
		panic(err)
	}

	for _, v := range tbl.Samples() {
		if math.Abs(v) < 1e-12 {
			v = 0
		}
		fmt.Printf("%.0f ", v)
	}
	fmt.Println()

	// Output:
	// 0 1 0 -1
}
