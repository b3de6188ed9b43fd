package lowpass

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/filter/biquad"
	"github.com/cwbudde/algo-fx/dsp/filter/design"
)

const (
	minCutoff     = 1.0
	maxNyquistRel = 0.49 // fraction of the sample rate
	minQ          = 0.01
	maxQ          = 1000
)

var (
	ErrInvalidSampleRate = errors.New("lowpass: sample rate must be positive and finite")
	ErrInvalidChannels   = errors.New("lowpass: channel count must be >= 1")
)

type settings struct {
	cutoff, resonance float64
}

// Filter is a multichannel resonant lowpass.
//
// Cutoff is in Hz and Resonance is the gain at the cutoff in dB (0 dB is a
// Q of 1). Mix blends the dry input (0) with the filtered signal (1).
type Filter struct {
	Cutoff    float64
	Resonance float64
	Mix       float64

	sampleRate float64
	bank       *biquad.Bank
	designed   settings
}

// New returns a fully wet filter at 6900 Hz with 0 dB resonance.
func New(channels int, sampleRate float64) (*Filter, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	f := &Filter{
		Cutoff:     6900,
		Mix:        1,
		sampleRate: sampleRate,
		bank:       biquad.NewBank(channels, biquad.Passthrough),
	}
	f.redesign()

	return f, nil
}

// Channels returns the number of independent channels.
func (f *Filter) Channels() int { return f.bank.Channels() }

// Coefficients returns the coefficients currently in use, redesigning first
// if a field changed.
func (f *Filter) Coefficients() biquad.Coefficients {
	f.update()
	return f.bank.Coefficients
}

// Compute filters one sample of channel ch and mixes it with the input.
func (f *Filter) Compute(ch int, in float32) float32 {
	f.update()

	x := float64(in)
	y := core.FlushDenormals(f.bank.ProcessSample(ch, x))
	mix := core.Clamp(f.Mix, 0, 1)

	return float32(x*(1-mix) + y*mix)
}

// Reset clears the filter memory of every channel. Fields are kept.
func (f *Filter) Reset() {
	f.bank.Reset()
}

func (f *Filter) update() {
	if f.designed != (settings{cutoff: f.Cutoff, resonance: f.Resonance}) {
		f.redesign()
	}
}

func (f *Filter) redesign() {
	f.designed = settings{cutoff: f.Cutoff, resonance: f.Resonance}

	fc := core.Clamp(f.Cutoff, minCutoff, maxNyquistRel*f.sampleRate)
	q := core.Clamp(dbToRatio(f.Resonance), minQ, maxQ)

	c := design.Lowpass(fc, q, f.sampleRate)
	if c.IsZero() {
		c = biquad.Passthrough
	}

	f.bank.Coefficients = c
}
