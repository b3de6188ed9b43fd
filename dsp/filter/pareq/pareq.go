package pareq

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/filter/biquad"
	"github.com/cwbudde/algo-fx/dsp/filter/design"
)

// Mode selects the equalizer response shape.
type Mode int

const (
	// ModePeak boosts or cuts a band around Fc.
	ModePeak Mode = iota
	// ModeLowShelf boosts or cuts everything below Fc.
	ModeLowShelf
	// ModeHighShelf boosts or cuts everything above Fc.
	ModeHighShelf
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModePeak:
		return "peak"
	case ModeLowShelf:
		return "lowshelf"
	case ModeHighShelf:
		return "highshelf"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

const (
	minFrequency  = 1.0
	maxNyquistRel = 0.49 // fraction of the sample rate
	minGain       = 1e-4 // -80 dB
	minQ          = 0.01
)

var (
	ErrInvalidSampleRate = errors.New("pareq: sample rate must be positive and finite")
	ErrInvalidChannels   = errors.New("pareq: channel count must be >= 1")
	ErrInvalidMode       = errors.New("pareq: unknown mode")
)

type settings struct {
	fc, v, q float64
	mode     Mode
}

// PAREQ is a multichannel parametric equalizer.
//
// Fc is the center or corner frequency in Hz, V the linear gain (1 = flat)
// and Q the quality factor. Out-of-range field values are held to a
// realizable filter internally so the output stays finite.
type PAREQ struct {
	Fc   float64
	V    float64
	Q    float64
	Mode Mode

	sampleRate float64
	bank       *biquad.Bank
	designed   settings
}

// New returns a flat equalizer (Fc=1000, V=1, Q=1/sqrt(2)) for channels
// channels at sampleRate.
func New(channels int, sampleRate float64, mode Mode) (*PAREQ, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	if mode < ModePeak || mode > ModeHighShelf {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}

	p := &PAREQ{
		Fc:         1000,
		V:          1,
		Q:          design.DefaultQ,
		Mode:       mode,
		sampleRate: sampleRate,
		bank:       biquad.NewBank(channels, biquad.Passthrough),
	}
	p.redesign()

	return p, nil
}

// SampleRate returns the sample rate in Hz.
func (p *PAREQ) SampleRate() float64 { return p.sampleRate }

// Channels returns the number of independent channels.
func (p *PAREQ) Channels() int { return p.bank.Channels() }

// Coefficients returns the coefficients currently in use, redesigning first
// if a field changed.
func (p *PAREQ) Coefficients() biquad.Coefficients {
	p.update()
	return p.bank.Coefficients
}

// Compute filters one sample of channel ch.
func (p *PAREQ) Compute(ch int, in float32) float32 {
	p.update()
	return float32(p.bank.ProcessSample(ch, float64(in)))
}

// Reset clears the filter memory of every channel. Fields are kept.
func (p *PAREQ) Reset() {
	p.bank.Reset()
}

func (p *PAREQ) update() {
	if p.designed != (settings{fc: p.Fc, v: p.V, q: p.Q, mode: p.Mode}) {
		p.redesign()
	}
}

func (p *PAREQ) redesign() {
	p.designed = settings{fc: p.Fc, v: p.V, q: p.Q, mode: p.Mode}

	fc := core.Clamp(p.Fc, minFrequency, maxNyquistRel*p.sampleRate)
	gainDB := 20 * mathLog10(core.Clamp(p.V, minGain, math.Inf(1)))
	q := core.Clamp(p.Q, minQ, math.Inf(1))

	var c biquad.Coefficients

	switch p.Mode {
	case ModeLowShelf:
		c = design.LowShelf(fc, gainDB, q, p.sampleRate)
	case ModeHighShelf:
		c = design.HighShelf(fc, gainDB, q, p.sampleRate)
	default:
		c = design.Peak(fc, gainDB, q, p.sampleRate)
	}

	if c.IsZero() {
		c = biquad.Passthrough
	}

	p.bank.Coefficients = c
}
