package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Uniform holds an impulse response split into equal partitions and
// transformed to the frequency domain. It is read-only after construction
// and may back any number of streams.
type Uniform struct {
	partLen int
	fftSize int
	irLen   int
	re, im  [][]float64
	imNeg   [][]float64
}

// NewUniform partitions ir into blocks of partLen samples. partLen must be
// a power of two.
func NewUniform(ir []float64, partLen int) (*Uniform, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyKernel
	}

	if !isPowerOf2(partLen) {
		return nil, fmt.Errorf("%w: partition length %d is not a power of two", ErrInvalidBlockSize, partLen)
	}

	fftSize := 2 * partLen
	parts := (len(ir) + partLen - 1) / partLen

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	u := &Uniform{
		partLen: partLen,
		fftSize: fftSize,
		irLen:   len(ir),
		re:      make([][]float64, parts),
		im:      make([][]float64, parts),
		imNeg:   make([][]float64, parts),
	}

	padded := make([]complex128, fftSize)
	spec := make([]complex128, fftSize)

	for p := range parts {
		clear(padded)

		block := ir[p*partLen : min((p+1)*partLen, len(ir))]
		for i, v := range block {
			padded[i] = complex(v, 0)
		}

		if err := plan.Forward(spec, padded); err != nil {
			return nil, fmt.Errorf("conv: failed to compute partition %d FFT: %w", p, err)
		}

		u.re[p], u.im[p], u.imNeg[p] = make([]float64, fftSize), make([]float64, fftSize), make([]float64, fftSize)
		for k, c := range spec {
			u.re[p][k] = real(c)
			u.im[p][k] = imag(c)
			u.imNeg[p][k] = -imag(c)
		}
	}

	return u, nil
}

// PartitionLength returns the partition length in samples.
func (u *Uniform) PartitionLength() int { return u.partLen }

// Partitions returns the number of impulse response partitions.
func (u *Uniform) Partitions() int { return len(u.re) }

// Len returns the impulse response length in samples.
func (u *Uniform) Len() int { return u.irLen }

// Latency returns the stream latency in samples.
func (u *Uniform) Latency() int { return u.partLen }

// UniformStream convolves a single channel with a [Uniform] impulse response
// one sample at a time.
type UniformStream struct {
	ir   *Uniform
	plan *algofft.Plan[complex128]

	// Frequency-domain delay line of past input block spectra.
	fdlRe, fdlIm [][]float64
	head         int

	accRe, accIm []float64
	time, spec   []complex128
	frame        []float64

	in, out, overlap []float64
	pos              int
}

// NewStream returns a silent stream for u.
func (u *Uniform) NewStream() (*UniformStream, error) {
	plan, err := algofft.NewPlan64(u.fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	parts := len(u.re)
	s := &UniformStream{
		ir:      u,
		plan:    plan,
		fdlRe:   make([][]float64, parts),
		fdlIm:   make([][]float64, parts),
		accRe:   make([]float64, u.fftSize),
		accIm:   make([]float64, u.fftSize),
		time:    make([]complex128, u.fftSize),
		spec:    make([]complex128, u.fftSize),
		frame:   make([]float64, u.fftSize),
		in:      make([]float64, u.partLen),
		out:     make([]float64, u.partLen),
		overlap: make([]float64, u.partLen),
	}

	for p := range parts {
		s.fdlRe[p] = make([]float64, u.fftSize)
		s.fdlIm[p] = make([]float64, u.fftSize)
	}

	return s, nil
}

// Compute pushes one input sample and returns one output sample delayed by
// the partition length.
func (s *UniformStream) Compute(x float64) float64 {
	y := s.out[s.pos]
	s.in[s.pos] = x
	s.pos++

	if s.pos == len(s.in) {
		s.pos = 0
		s.processBlock()
	}

	return y
}

// Reset clears the input history and pending output.
func (s *UniformStream) Reset() {
	for p := range s.fdlRe {
		clear(s.fdlRe[p])
		clear(s.fdlIm[p])
	}

	clear(s.in)
	clear(s.out)
	clear(s.overlap)
	s.head = 0
	s.pos = 0
}

func (s *UniformStream) processBlock() {
	n := len(s.in)
	parts := len(s.fdlRe)

	for i, v := range s.in {
		s.time[i] = complex(v, 0)
	}
	clear(s.time[n:])

	// Plan sizes are fixed at construction, so the transforms cannot fail
	// on a length mismatch. A failure leaves the block silent.
	if err := s.plan.Forward(s.spec, s.time); err != nil {
		clear(s.out)
		return
	}

	s.head = (s.head - 1 + parts) % parts
	re, im := s.fdlRe[s.head], s.fdlIm[s.head]
	for k, c := range s.spec {
		re[k] = real(c)
		im[k] = imag(c)
	}

	clear(s.accRe)
	clear(s.accIm)

	// acc += X[k-p] * H[p] in split-complex form.
	for p := range parts {
		slot := (s.head + p) % parts
		xr, xi := s.fdlRe[slot], s.fdlIm[slot]

		vecmath.MulAddBlock(s.accRe, xr, s.ir.re[p], s.accRe)
		vecmath.MulAddBlock(s.accRe, xi, s.ir.imNeg[p], s.accRe)
		vecmath.MulAddBlock(s.accIm, xr, s.ir.im[p], s.accIm)
		vecmath.MulAddBlock(s.accIm, xi, s.ir.re[p], s.accIm)
	}

	for k := range s.spec {
		s.spec[k] = complex(s.accRe[k], s.accIm[k])
	}

	if err := s.plan.Inverse(s.time, s.spec); err != nil {
		clear(s.out)
		return
	}

	for i, c := range s.time {
		s.frame[i] = real(c)
	}

	vecmath.AddBlock(s.out, s.frame[:n], s.overlap)
	copy(s.overlap, s.frame[n:])
}
