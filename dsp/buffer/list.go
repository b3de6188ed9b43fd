package buffer

// List is a set of per-channel buffers, indexed by channel.
type List []*Buffer

// NewList allocates channels buffers of frames samples each.
func NewList(channels, frames int) List {
	if channels < 0 {
		channels = 0
	}
	l := make(List, channels)
	for c := range l {
		l[c] = New(frames)
	}
	return l
}

// FromSlices wraps per-channel slices without copying.
func FromSlices(channels ...[]float32) List {
	l := make(List, len(channels))
	for c, s := range channels {
		l[c] = FromSlice(s)
	}
	return l
}

// Channels returns the number of channels.
func (l List) Channels() int {
	return len(l)
}

// Channel returns the samples of channel c, or nil when c is out of range.
func (l List) Channel(c int) []float32 {
	if c < 0 || c >= len(l) {
		return nil
	}
	return l[c].Samples()
}

// Frames returns the length of the shortest channel.
func (l List) Frames() int {
	if len(l) == 0 {
		return 0
	}
	n := l[0].Len()
	for _, b := range l[1:] {
		n = min(n, b.Len())
	}
	return n
}

// CopyTo copies every channel that exists in both lists into dst verbatim.
// It returns the number of channels copied. It does not allocate.
func (l List) CopyTo(dst List) int {
	n := min(len(l), len(dst))
	for c := range n {
		copy(dst[c].Samples(), l[c].Samples())
	}
	return n
}

// Zero clears every channel.
func (l List) Zero() {
	for _, b := range l {
		b.Zero()
	}
}

// Interleave writes frames [0, frames) of every channel into dst as
// interleaved samples (frame-major). It returns the number of frames written.
func (l List) Interleave(dst []float32, frames int) int {
	channels := len(l)
	if channels == 0 {
		return 0
	}
	frames = min(frames, l.Frames(), len(dst)/channels)
	for c, b := range l {
		s := b.Samples()
		for f := range frames {
			dst[f*channels+c] = s[f]
		}
	}
	return frames
}

// Deinterleave reads interleaved samples from src into frames [0, frames)
// of every channel. It returns the number of frames read.
func (l List) Deinterleave(src []float32, frames int) int {
	channels := len(l)
	if channels == 0 {
		return 0
	}
	frames = min(frames, l.Frames(), len(src)/channels)
	for c, b := range l {
		s := b.Samples()
		for f := range frames {
			s[f] = src[f*channels+c]
		}
	}
	return frames
}
