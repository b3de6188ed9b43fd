package buffer

// Buffer wraps one channel of single-precision samples.
type Buffer struct {
	samples []float32
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]float32, length)}
}

// FromSlice wraps an existing slice without copying.
// Mutations to the slice are visible through the Buffer and vice versa.
func FromSlice(s []float32) *Buffer {
	return &Buffer{samples: s}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float32 {
	if b == nil {
		return nil
	}
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.samples)
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	clear(b.samples)
}
