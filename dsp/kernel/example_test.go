package kernel_test

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-fx/dsp/buffer"
	"github.com/cwbudde/algo-fx/dsp/kernel"
)

func ExampleLowShelfParametricEqualizer() {
	eq := kernel.NewLowShelfParametricEqualizer()
	if err := eq.Init(2, 44100); err != nil {
		fmt.Println(err)
		return
	}

	eq.Start()

	eq.SetParameter(kernel.CornerFrequencyAddress, 50000)
	fmt.Println("corner:", eq.Parameter(kernel.CornerFrequencyAddress))

	eq.StartRamp(kernel.GainAddress, 5, 100)

	block := buffer.NewList(2, 100)
	eq.Process(block, block, 100, 0)
	fmt.Println("gain:", eq.Parameter(kernel.GainAddress), eq.State())

	// Output:
	// corner: 20000
	// gain: 5 started
}

func ExampleConvolution() {
	c := kernel.NewConvolution()
	_ = c.SetPartitionLength(4)
	_ = c.SetUpTable([]float32{0.5})
	_ = c.Init(1, 48000)
	c.Start()

	in := buffer.FromSlices([]float32{1, 0, 0, 0, 0, 0, 0, 0})
	out := buffer.NewList(1, 8)
	c.Process(in, out, 8, 0)

	samples := make([]string, 0, 8)
	for _, v := range out.Channel(0) {
		samples = append(samples, fmt.Sprintf("%.2f", math.Round(float64(v)*100)/100+0))
	}

	fmt.Println(strings.Join(samples, " "))

	// Output:
	// 0.00 0.00 0.00 0.00 0.50 0.00 0.00 0.00
}
