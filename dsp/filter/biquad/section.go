package biquad

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Passthrough is the identity section.
var Passthrough = Coefficients{B0: 1}

// IsZero reports whether all coefficients are zero, which the designers use
// to signal an unrealizable request.
func (c Coefficients) IsZero() bool {
	return c == Coefficients{}
}

// Section is a single biquad filter with coefficients and internal state.
// Swapping Coefficients between samples keeps the state, so parameter
// changes do not reset the filter memory.
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// Bank is a set of independent sections sharing one coefficient set, one per
// audio channel.
type Bank struct {
	Coefficients

	sections []Section
}

// NewBank returns a Bank with channels zeroed sections.
func NewBank(channels int, c Coefficients) *Bank {
	if channels < 1 {
		channels = 1
	}

	return &Bank{Coefficients: c, sections: make([]Section, channels)}
}

// Channels returns the number of sections in the bank.
func (b *Bank) Channels() int { return len(b.sections) }

// ProcessSample filters x through the section of channel ch with the bank's
// current coefficients. Out-of-range channels pass the sample through.
func (b *Bank) ProcessSample(ch int, x float64) float64 {
	if ch < 0 || ch >= len(b.sections) {
		return x
	}

	s := &b.sections[ch]
	s.Coefficients = b.Coefficients

	return s.ProcessSample(x)
}

// Reset clears the state of every channel.
func (b *Bank) Reset() {
	for i := range b.sections {
		b.sections[i].Reset()
	}
}
