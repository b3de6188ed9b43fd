package kernel

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/buffer"
	"github.com/cwbudde/algo-fx/dsp/filter/lowpass"
)

// Parameter addresses of the low pass filter.
const (
	LowPassCutoffFrequencyAddress Address = 0
	LowPassResonanceAddress       Address = 1
	LowPassDryWetMixAddress       Address = 2
)

var lowPassFilterParameters = []Parameter{
	{Address: LowPassCutoffFrequencyAddress, Identifier: "cutoffFrequency", Name: "Cutoff Frequency", Unit: "Hz", Min: 10, Max: 22050, Default: 6900},
	{Address: LowPassResonanceAddress, Identifier: "resonance", Name: "Resonance", Unit: "dB", Min: -20, Max: 40, Default: 0},
	{Address: LowPassDryWetMixAddress, Identifier: "dryWetMix", Name: "Dry/Wet Mix", Min: 0, Max: 1, Default: 1},
}

// LowPassFilter is a resonant lowpass with a dry/wet mix. Resonance is the
// gain at the cutoff in dB.
type LowPassFilter struct {
	Base

	lp *lowpass.Filter
}

// NewLowPassFilter returns an uninitialized low pass filter.
func NewLowPassFilter() *LowPassFilter {
	k := &LowPassFilter{}
	k.declare(lowPassFilterParameters)

	return k
}

// Init allocates the per-channel filter memory.
func (k *LowPassFilter) Init(channelCount int, sampleRate float64) error {
	if err := k.initialize(channelCount, sampleRate); err != nil {
		return err
	}

	lp, err := lowpass.New(channelCount, sampleRate)
	if err != nil {
		return fmt.Errorf("kernel: low pass filter: %w", err)
	}

	k.lp = lp
	k.apply(k.snapshot())
	k.markInitialized()

	return nil
}

// Reset clears the filter memory.
func (k *LowPassFilter) Reset() {
	if k.lp != nil {
		k.lp.Reset()
	}
}

// Destroy releases the filter.
func (k *LowPassFilter) Destroy() {
	k.destroy()
	k.lp = nil
}

// Process renders one block.
func (k *LowPassFilter) Process(in, out buffer.List, frameCount, bufferOffset int) {
	k.render(k, in, out, frameCount, bufferOffset)
}

func (k *LowPassFilter) apply(v []float32) {
	k.lp.Cutoff = float64(v[LowPassCutoffFrequencyAddress])
	k.lp.Resonance = float64(v[LowPassResonanceAddress])
	k.lp.Mix = float64(v[LowPassDryWetMixAddress])
}

func (k *LowPassFilter) compute(ch int, in float32) float32 {
	return k.lp.Compute(ch, in)
}
