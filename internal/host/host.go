// Package host drives an effect kernel the way an audio host does: a render
// callback pulls blocks through the kernel while a control goroutine changes
// parameters on a frame schedule.
package host

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cwbudde/algo-fx/dsp/buffer"
	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/kernel"
)

const defaultStatsWindow = 1024

// ErrNilKernel is returned by New when no kernel is given.
var ErrNilKernel = errors.New("host: nil kernel")

// Option configures a Host.
type Option func(*options)

type options struct {
	processor   []core.ProcessorOption
	subBlock    int
	statsWindow int
	poll        time.Duration
}

// WithProcessor sets sample rate, block size and channel count.
func WithProcessor(opts ...core.ProcessorOption) Option {
	return func(o *options) {
		o.processor = append(o.processor, opts...)
	}
}

// WithSubBlock splits every render block into Process calls of at most n
// frames at increasing buffer offsets.
func WithSubBlock(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.subBlock = n
		}
	}
}

// WithStatsWindow sets how many recent block timings Stats summarises.
func WithStatsWindow(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.statsWindow = n
		}
	}
}

// WithPollInterval sets how often RunAutomation checks the render position.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.poll = d
		}
	}
}

// Host owns the buffers around one kernel. Render and Read run on the render
// goroutine; RunAutomation and Stats may run concurrently on others.
type Host struct {
	k   kernel.Kernel
	src Source
	cfg core.ProcessorConfig

	subBlock int
	poll     time.Duration

	in, out buffer.List
	scratch []float32

	frames atomic.Int64

	timingMu sync.Mutex
	timings  []time.Duration
	next     int
	count    int
}

// New initialises k for the configured channel count and sample rate and
// preallocates every render buffer. A nil src renders silence.
func New(k kernel.Kernel, src Source, opts ...Option) (*Host, error) {
	if k == nil {
		return nil, ErrNilKernel
	}

	o := options{statsWindow: defaultStatsWindow, poll: time.Millisecond}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	cfg := core.ApplyProcessorOptions(o.processor...)

	if err := k.Init(cfg.ChannelCount, cfg.SampleRate); err != nil {
		return nil, fmt.Errorf("host: init kernel: %w", err)
	}

	if src == nil {
		src = Silence()
	}

	subBlock := cfg.BlockSize
	if o.subBlock > 0 {
		subBlock = min(o.subBlock, cfg.BlockSize)
	}

	return &Host{
		k:        k,
		src:      src,
		cfg:      cfg,
		subBlock: subBlock,
		poll:     o.poll,
		in:       buffer.NewList(cfg.ChannelCount, cfg.BlockSize),
		out:      buffer.NewList(cfg.ChannelCount, cfg.BlockSize),
		scratch:  make([]float32, cfg.BlockSize*cfg.ChannelCount),
		timings:  make([]time.Duration, o.statsWindow),
	}, nil
}

// Kernel returns the driven kernel.
func (h *Host) Kernel() kernel.Kernel { return h.k }

// Config returns the processing configuration.
func (h *Host) Config() core.ProcessorConfig { return h.cfg }

// Position returns the number of frames rendered so far.
func (h *Host) Position() int64 { return h.frames.Load() }

// Render fills dst with interleaved output frames. Trailing samples that do
// not form a whole frame are zeroed.
func (h *Host) Render(dst []float32) {
	channels := h.cfg.ChannelCount
	frames := len(dst) / channels
	clear(dst[frames*channels:])

	for done := 0; done < frames; {
		n := min(h.cfg.BlockSize, frames-done)
		h.renderBlock(n)
		h.out.Interleave(dst[done*channels:], n)
		done += n
	}
}

func (h *Host) renderBlock(n int) {
	start := time.Now()

	h.src.Fill(h.in, n)
	for offset := 0; offset < n; offset += h.subBlock {
		h.k.Process(h.in, h.out, min(h.subBlock, n-offset), offset)
	}

	h.frames.Add(int64(n))
	h.record(time.Since(start))
}

// record never blocks: a timing that collides with Stats is dropped.
func (h *Host) record(d time.Duration) {
	if !h.timingMu.TryLock() {
		return
	}

	h.timings[h.next] = d
	h.next = (h.next + 1) % len(h.timings)
	h.count = min(h.count+1, len(h.timings))
	h.timingMu.Unlock()
}

// Read renders float32 little-endian interleaved frames into p. It
// implements io.Reader for audio sinks and never returns an error.
func (h *Host) Read(p []byte) (int, error) {
	const sampleBytes = 4

	channels := h.cfg.ChannelCount
	frameBytes := sampleBytes * channels
	frames := len(p) / frameBytes

	for done := 0; done < frames; {
		n := min(h.cfg.BlockSize, frames-done)
		block := h.scratch[:n*channels]
		h.Render(block)

		base := done * frameBytes
		for i, v := range block {
			binary.LittleEndian.PutUint32(p[base+i*sampleBytes:], math.Float32bits(v))
		}

		done += n
	}

	return frames * frameBytes, nil
}
