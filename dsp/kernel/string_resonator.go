package kernel

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/buffer"
	"github.com/cwbudde/algo-fx/dsp/effects/resonator"
)

// Parameter addresses of the string resonator.
const (
	FundamentalFrequencyAddress Address = 0
	FeedbackAddress             Address = 1
)

var stringResonatorParameters = []Parameter{
	{Address: FundamentalFrequencyAddress, Identifier: "fundamentalFrequency", Name: "Fundamental Frequency", Unit: "Hz", Min: 12, Max: 10000, Default: 100},
	{Address: FeedbackAddress, Identifier: "feedback", Name: "Feedback", Min: 0, Max: 1, Default: 0.95},
}

// StringResonator rings the input at a tunable fundamental.
type StringResonator struct {
	Base

	res *resonator.StringResonator
}

// NewStringResonator returns an uninitialized string resonator.
func NewStringResonator() *StringResonator {
	k := &StringResonator{}
	k.declare(stringResonatorParameters)

	return k
}

// Init allocates one string loop per channel.
func (k *StringResonator) Init(channelCount int, sampleRate float64) error {
	if err := k.initialize(channelCount, sampleRate); err != nil {
		return err
	}

	res, err := resonator.New(channelCount, sampleRate)
	if err != nil {
		return fmt.Errorf("kernel: string resonator: %w", err)
	}

	k.res = res
	k.apply(k.snapshot())
	k.markInitialized()

	return nil
}

// Reset clears the string loops.
func (k *StringResonator) Reset() {
	if k.res != nil {
		k.res.Reset()
	}
}

// Destroy releases the string loops.
func (k *StringResonator) Destroy() {
	k.destroy()
	k.res = nil
}

// Process renders one block.
func (k *StringResonator) Process(in, out buffer.List, frameCount, bufferOffset int) {
	k.render(k, in, out, frameCount, bufferOffset)
}

func (k *StringResonator) apply(v []float32) {
	k.res.Fundamental = float64(v[FundamentalFrequencyAddress])
	k.res.Feedback = float64(v[FeedbackAddress])
}

func (k *StringResonator) compute(ch int, in float32) float32 {
	return k.res.Compute(ch, in)
}
