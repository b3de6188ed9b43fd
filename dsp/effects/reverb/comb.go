package reverb

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/delay"
)

// DefaultLoopTime is the comb loop length in seconds used when none is set.
const DefaultLoopTime = 0.1

// ln(0.001): the feedback decays the loop by 60 dB over RevTime.
const ln60dB = -6.907755278982137

var (
	ErrInvalidSampleRate = errors.New("reverb: sample rate must be positive and finite")
	ErrInvalidChannels   = errors.New("reverb: channel count must be >= 1")
	ErrInvalidLoopTime   = errors.New("reverb: loop time must be positive and finite")
)

// Comb is a feedback comb filter with one delay loop per channel.
//
// RevTime is the 60 dB decay time in seconds; it may change between samples.
// A RevTime <= 0 disables feedback and the comb becomes a plain delay.
type Comb struct {
	RevTime float64

	loopTime   float64
	sampleRate float64
	lines      []*delay.Line

	coef       float64
	coefForRev float64
}

// NewComb returns a comb with the given loop time in seconds and RevTime 1.
func NewComb(channels int, sampleRate, loopTime float64) (*Comb, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	if loopTime <= 0 || !core.IsFinite(loopTime) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLoopTime, loopTime)
	}

	size := max(int(loopTime*sampleRate+0.5), delay.MinSize)

	c := &Comb{
		RevTime:    1,
		loopTime:   float64(size) / sampleRate,
		sampleRate: sampleRate,
		lines:      make([]*delay.Line, channels),
	}

	for ch := range c.lines {
		line, err := delay.New(size)
		if err != nil {
			return nil, fmt.Errorf("reverb: comb loop: %w", err)
		}

		c.lines[ch] = line
	}

	c.updateCoef()

	return c, nil
}

// LoopTime returns the realized loop time in seconds.
func (c *Comb) LoopTime() float64 { return c.loopTime }

// LoopSamples returns the loop length in samples.
func (c *Comb) LoopSamples() int { return c.lines[0].Len() }

// Channels returns the number of independent loops.
func (c *Comb) Channels() int { return len(c.lines) }

// Feedback returns the loop gain for the current RevTime.
func (c *Comb) Feedback() float64 {
	if c.RevTime != c.coefForRev {
		c.updateCoef()
	}

	return c.coef
}

// Compute processes one sample of channel ch. Out-of-range channels return 0.
func (c *Comb) Compute(ch int, in float32) float32 {
	if ch < 0 || ch >= len(c.lines) {
		return 0
	}

	coef := c.Feedback()
	line := c.lines[ch]

	out := line.Read(line.Len())
	line.Write(core.FlushDenormals(out*coef + float64(in)))

	return float32(out)
}

// Reset clears every loop. RevTime is kept.
func (c *Comb) Reset() {
	for _, line := range c.lines {
		line.Reset()
	}
}

func (c *Comb) updateCoef() {
	c.coefForRev = c.RevTime
	if c.RevTime <= 0 || c.RevTime != c.RevTime {
		c.coef = 0
		return
	}

	c.coef = mathExp(ln60dB * c.loopTime / c.RevTime)
}
