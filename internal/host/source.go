package host

import "github.com/cwbudde/algo-fx/dsp/buffer"

// Source produces the input of one render block. Fill writes frames
// [0, frames) of every channel in in. It runs on the render goroutine and
// must not block or allocate.
type Source interface {
	Fill(in buffer.List, frames int)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(in buffer.List, frames int)

// Fill calls f.
func (f SourceFunc) Fill(in buffer.List, frames int) { f(in, frames) }

// Silence returns a source of zeros.
func Silence() Source {
	return SourceFunc(func(in buffer.List, frames int) {
		for c := range in {
			clear(in.Channel(c)[:frames])
		}
	})
}

// Loop returns a source that repeats samples on every channel. An empty
// slice behaves like Silence.
func Loop(samples []float32) Source {
	if len(samples) == 0 {
		return Silence()
	}

	return &loop{samples: samples}
}

type loop struct {
	samples []float32
	pos     int
}

func (l *loop) Fill(in buffer.List, frames int) {
	start := l.pos
	for c := range in {
		dst := in.Channel(c)[:frames]
		pos := start
		for i := range dst {
			dst[i] = l.samples[pos]
			pos++
			if pos == len(l.samples) {
				pos = 0
			}
		}
		l.pos = pos
	}
}
