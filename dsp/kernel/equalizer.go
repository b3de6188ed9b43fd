package kernel

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/buffer"
	"github.com/cwbudde/algo-fx/dsp/filter/pareq"
)

// Parameter addresses of the parametric equalizers.
const (
	CornerFrequencyAddress Address = 0
	CenterFrequencyAddress Address = 0
	GainAddress            Address = 1
	QAddress               Address = 2
)

func equalizerParameters(freqID, freqName string) []Parameter {
	return []Parameter{
		{Address: 0, Identifier: freqID, Name: freqName, Unit: "Hz", Min: 12, Max: 20000, Default: 1000},
		{Address: GainAddress, Identifier: "gain", Name: "Gain", Unit: "linear", Min: 0, Max: 10, Default: 1},
		{Address: QAddress, Identifier: "q", Name: "Q", Min: 0, Max: 2, Default: 0.707},
	}
}

// equalizer drives one pareq.PAREQ section from three ramped parameters.
type equalizer struct {
	Base

	mode pareq.Mode
	eq   *pareq.PAREQ
}

func (k *equalizer) Init(channelCount int, sampleRate float64) error {
	if err := k.initialize(channelCount, sampleRate); err != nil {
		return err
	}

	eq, err := pareq.New(channelCount, sampleRate, k.mode)
	if err != nil {
		return fmt.Errorf("kernel: %s equalizer: %w", k.mode, err)
	}

	k.eq = eq
	k.apply(k.snapshot())
	k.markInitialized()

	return nil
}

func (k *equalizer) Reset() {
	if k.eq != nil {
		k.eq.Reset()
	}
}

func (k *equalizer) Destroy() {
	k.destroy()
	k.eq = nil
}

func (k *equalizer) Process(in, out buffer.List, frameCount, bufferOffset int) {
	k.render(k, in, out, frameCount, bufferOffset)
}

func (k *equalizer) apply(v []float32) {
	k.eq.Fc = float64(v[0])
	k.eq.V = float64(v[GainAddress])
	k.eq.Q = float64(v[QAddress])
}

func (k *equalizer) compute(ch int, in float32) float32 {
	return k.eq.Compute(ch, in)
}

// LowShelfParametricEqualizer boosts or cuts below a corner frequency.
// Gain is linear: 1 is flat, 2 is about +6 dB, 0 is clamped to -80 dB.
type LowShelfParametricEqualizer struct{ equalizer }

// NewLowShelfParametricEqualizer returns an uninitialized low shelf kernel.
func NewLowShelfParametricEqualizer() *LowShelfParametricEqualizer {
	k := &LowShelfParametricEqualizer{equalizer{mode: pareq.ModeLowShelf}}
	k.declare(equalizerParameters("cornerFrequency", "Corner Frequency"))

	return k
}

// HighShelfParametricEqualizer boosts or cuts above a center frequency.
type HighShelfParametricEqualizer struct{ equalizer }

// NewHighShelfParametricEqualizer returns an uninitialized high shelf kernel.
func NewHighShelfParametricEqualizer() *HighShelfParametricEqualizer {
	k := &HighShelfParametricEqualizer{equalizer{mode: pareq.ModeHighShelf}}
	k.declare(equalizerParameters("centerFrequency", "Center Frequency"))

	return k
}

// PeakingParametricEqualizer boosts or cuts a band around a center frequency.
type PeakingParametricEqualizer struct{ equalizer }

// NewPeakingParametricEqualizer returns an uninitialized peaking kernel.
func NewPeakingParametricEqualizer() *PeakingParametricEqualizer {
	k := &PeakingParametricEqualizer{equalizer{mode: pareq.ModePeak}}
	k.declare(equalizerParameters("centerFrequency", "Center Frequency"))

	return k
}
