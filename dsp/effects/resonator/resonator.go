// Package resonator provides a string resonator primitive: a tuned
// feedback delay loop with a two-point averaging low-pass, the classic
// plucked-string network driven by an arbitrary input.
package resonator

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/delay"
)

// MinFundamental is the lowest fundamental frequency the loop can hold.
const MinFundamental = 12.0

var (
	ErrInvalidSampleRate = errors.New("resonator: sample rate must be positive and finite")
	ErrInvalidChannels   = errors.New("resonator: channel count must be >= 1")
)

// StringResonator rings at Fundamental (Hz) with loop gain Feedback.
// Both fields may change between samples. Feedback is held in [0, 0.9999]
// internally so the loop never becomes unstable.
type StringResonator struct {
	Fundamental float64
	Feedback    float64

	sampleRate float64
	maxDelay   float64
	lines      []*delay.Line
}

// New returns a resonator at 100 Hz with feedback 0.95.
func New(channels int, sampleRate float64) (*StringResonator, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	size := int(sampleRate/MinFundamental) + delay.MinSize

	r := &StringResonator{
		Fundamental: 100,
		Feedback:    0.95,
		sampleRate:  sampleRate,
		maxDelay:    float64(size - 3),
		lines:       make([]*delay.Line, channels),
	}

	for ch := range r.lines {
		line, err := delay.New(size)
		if err != nil {
			return nil, fmt.Errorf("resonator: string loop: %w", err)
		}

		r.lines[ch] = line
	}

	return r, nil
}

// Channels returns the number of independent strings.
func (r *StringResonator) Channels() int { return len(r.lines) }

// Compute processes one sample of channel ch. Out-of-range channels return 0.
func (r *StringResonator) Compute(ch int, in float32) float32 {
	if ch < 0 || ch >= len(r.lines) {
		return 0
	}

	// The averaging filter adds half a sample to the loop.
	d := core.Clamp(r.sampleRate/r.Fundamental-0.5, 1, r.maxDelay)
	fb := core.Clamp(r.Feedback, 0, 0.9999)

	line := r.lines[ch]
	lp := 0.5 * (line.ReadFractional(d) + line.ReadFractional(d+1))
	y := core.FlushDenormals(float64(in) + fb*lp)
	line.Write(y)

	return float32(y)
}

// Reset silences every string. Fields are kept.
func (r *StringResonator) Reset() {
	for _, line := range r.lines {
		line.Reset()
	}
}
