package effects

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/delay"
	"github.com/cwbudde/algo-fx/dsp/filter/biquad"
	"github.com/cwbudde/algo-fx/dsp/filter/design"
	"github.com/cwbudde/algo-fx/dsp/interp"
)

// MaxDelayTime is the longest delay in seconds a Delay can hold.
const MaxDelayTime = 2.0

const (
	defaultDelayTime     = 1.0
	defaultDelayFeedback = 0.5
	defaultDelayCutoff   = 15000.0
	defaultDelayMix      = 0.5

	maxDelayFeedback = 0.99
	minDelayCutoff   = 10.0
	maxNyquistRel    = 0.49 // fraction of the sample rate
)

var (
	ErrInvalidSampleRate = errors.New("effects: sample rate must be positive and finite")
	ErrInvalidChannels   = errors.New("effects: channel count must be >= 1")
)

// Delay is a feedback delay with one line per channel.
//
// Time is in seconds and is read with linear interpolation, so it can glide
// between samples. The delayed signal passes a Butterworth lowpass at Cutoff
// (Hz) before it is fed back with gain Feedback and mixed with the dry input
// by Mix. A Cutoff at or above 0.49 times the sample rate disables the
// lowpass. All fields may change between samples.
type Delay struct {
	Time     float64
	Feedback float64
	Cutoff   float64
	Mix      float64

	sampleRate float64
	maxDelay   float64
	lines      []*delay.Line
	damp       *biquad.Bank
	designed   float64
}

// NewDelay returns a 1 s delay with feedback 0.5, a 15 kHz lowpass and an
// even dry/wet mix.
func NewDelay(channels int, sampleRate float64) (*Delay, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	size := int(math.Ceil(MaxDelayTime*sampleRate)) + delay.MinSize

	d := &Delay{
		Time:       defaultDelayTime,
		Feedback:   defaultDelayFeedback,
		Cutoff:     defaultDelayCutoff,
		Mix:        defaultDelayMix,
		sampleRate: sampleRate,
		maxDelay:   float64(size - 2),
		lines:      make([]*delay.Line, channels),
		damp:       biquad.NewBank(channels, biquad.Passthrough),
	}

	for ch := range d.lines {
		line, err := delay.New(size, delay.WithMode(interp.Linear))
		if err != nil {
			return nil, fmt.Errorf("effects: delay line: %w", err)
		}

		d.lines[ch] = line
	}

	d.redesign()

	return d, nil
}

// Channels returns the number of independent delay lines.
func (d *Delay) Channels() int { return len(d.lines) }

// SampleRate returns the sample rate in Hz.
func (d *Delay) SampleRate() float64 { return d.sampleRate }

// Compute processes one sample of channel ch. Out-of-range channels return 0.
func (d *Delay) Compute(ch int, in float32) float32 {
	if ch < 0 || ch >= len(d.lines) {
		return 0
	}

	if d.Cutoff != d.designed {
		d.redesign()
	}

	line := d.lines[ch]
	x := float64(in)

	delayed := line.ReadFractional(core.Clamp(d.Time*d.sampleRate, 1, d.maxDelay))
	wet := core.FlushDenormals(d.damp.ProcessSample(ch, delayed))

	fb := core.Clamp(d.Feedback, 0, maxDelayFeedback)
	line.Write(core.FlushDenormals(x + fb*wet))

	mix := core.Clamp(d.Mix, 0, 1)

	return float32(x*(1-mix) + wet*mix)
}

// Reset clears every delay line and the loop filters. Fields are kept.
func (d *Delay) Reset() {
	for _, line := range d.lines {
		line.Reset()
	}

	d.damp.Reset()
}

func (d *Delay) redesign() {
	d.designed = d.Cutoff

	fc := core.Clamp(d.Cutoff, minDelayCutoff, math.Inf(1))
	if fc >= maxNyquistRel*d.sampleRate {
		d.damp.Coefficients = biquad.Passthrough
		return
	}

	c := design.Lowpass(fc, design.DefaultQ, d.sampleRate)
	if c.IsZero() {
		c = biquad.Passthrough
	}

	d.damp.Coefficients = c
}
