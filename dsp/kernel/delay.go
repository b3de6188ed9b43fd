package kernel

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/buffer"
	"github.com/cwbudde/algo-fx/dsp/effects"
)

// Parameter addresses of the delay.
const (
	DelayTimeAddress          Address = 0
	DelayFeedbackAddress      Address = 1
	DelayLowPassCutoffAddress Address = 2
	DelayDryWetMixAddress     Address = 3
)

var delayParameters = []Parameter{
	{Address: DelayTimeAddress, Identifier: "time", Name: "Delay Time", Unit: "s", Min: 0, Max: effects.MaxDelayTime, Default: 1},
	{Address: DelayFeedbackAddress, Identifier: "feedback", Name: "Feedback", Min: 0, Max: 1, Default: 0.5},
	{Address: DelayLowPassCutoffAddress, Identifier: "lowPassCutoff", Name: "Low Pass Cutoff", Unit: "Hz", Min: 10, Max: 22050, Default: 15000},
	{Address: DelayDryWetMixAddress, Identifier: "dryWetMix", Name: "Dry/Wet Mix", Min: 0, Max: 1, Default: 0.5},
}

// Delay repeats the input after a tunable time, darkening each repeat.
// Feedback is held below 0.99 by the primitive.
type Delay struct {
	Base

	d *effects.Delay
}

// NewDelay returns an uninitialized delay.
func NewDelay() *Delay {
	k := &Delay{}
	k.declare(delayParameters)

	return k
}

// Init allocates one delay line per channel, sized for the longest time.
func (k *Delay) Init(channelCount int, sampleRate float64) error {
	if err := k.initialize(channelCount, sampleRate); err != nil {
		return err
	}

	d, err := effects.NewDelay(channelCount, sampleRate)
	if err != nil {
		return fmt.Errorf("kernel: delay: %w", err)
	}

	k.d = d
	k.apply(k.snapshot())
	k.markInitialized()

	return nil
}

// Reset clears the delay lines.
func (k *Delay) Reset() {
	if k.d != nil {
		k.d.Reset()
	}
}

// Destroy releases the delay lines.
func (k *Delay) Destroy() {
	k.destroy()
	k.d = nil
}

// Process renders one block.
func (k *Delay) Process(in, out buffer.List, frameCount, bufferOffset int) {
	k.render(k, in, out, frameCount, bufferOffset)
}

func (k *Delay) apply(v []float32) {
	k.d.Time = float64(v[DelayTimeAddress])
	k.d.Feedback = float64(v[DelayFeedbackAddress])
	k.d.Cutoff = float64(v[DelayLowPassCutoffAddress])
	k.d.Mix = float64(v[DelayDryWetMixAddress])
}

func (k *Delay) compute(ch int, in float32) float32 {
	return k.d.Compute(ch, in)
}
