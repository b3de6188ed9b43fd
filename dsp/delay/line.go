package delay

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/interp"
)

// MinSize is the smallest line that supports 4-point fractional reads.
const MinSize = 4

// ErrInvalidSize is returned by New for lines shorter than MinSize.
var ErrInvalidSize = errors.New("delay: size must be >= 4")

// Option configures a Line.
type Option func(*Line)

// WithMode selects the interpolation used by ReadFractional.
func WithMode(mode interp.Mode) Option {
	return func(d *Line) {
		d.mode = mode
	}
}

// Line is a circular delay line.
//
// Delays are counted from the most recent write: Read(1) returns the last
// written sample and Read(Len()) the oldest one.
type Line struct {
	buffer   []float64
	writePos int
	mode     interp.Mode
}

// New returns a delay line of fixed size using Hermite interpolation unless
// configured otherwise.
func New(size int, opts ...Option) (*Line, error) {
	if size < MinSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	d := &Line{buffer: make([]float64, size), mode: interp.Hermite}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	return d, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples. Delays are wrapped into the line.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	readPos := (d.writePos - delay%size + size) % size
	return d.buffer[readPos]
}

// ReadFractional reads a fractional delay in samples, clamped to
// [1, Len()-2].
func (d *Line) ReadFractional(delay float64) float64 {
	delay = core.Clamp(delay, 1, float64(len(d.buffer)-2))

	p := int(delay)
	t := delay - float64(p)

	x0 := d.Read(p)
	x1 := d.Read(p + 1)

	if d.mode == interp.Linear {
		return interp.Linear2(t, x0, x1)
	}

	xm1 := x0
	if p > 1 {
		xm1 = d.Read(p - 1)
	}

	return interp.Hermite4(t, xm1, x0, x1, d.Read(p+2))
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
}
