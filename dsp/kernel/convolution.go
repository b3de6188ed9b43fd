package kernel

import (
	"fmt"
	"math/bits"
	"sync/atomic"

	"github.com/cwbudde/algo-fx/dsp/buffer"
	"github.com/cwbudde/algo-fx/dsp/conv"
	"github.com/cwbudde/algo-fx/dsp/core"
)

// DefaultPartitionLength is the convolution partition length used when none
// is set.
const DefaultPartitionLength = 2048

// convolutionEngine is the prepared impulse response plus one stream per
// channel.
type convolutionEngine struct {
	ir      *conv.Uniform
	streams []*conv.UniformStream
}

// Convolution convolves every channel with an impulse response table using
// uniformly partitioned FFT convolution. It has no parameters.
//
// A table must be loaded with SetUpTable before Start has any effect. The
// output lags the input by the partition length.
type Convolution struct {
	Base

	partitionLength int
	table           []float64

	engine atomic.Pointer[convolutionEngine]
	// active is the engine seen by the render goroutine for the current frame.
	active *convolutionEngine
}

// NewConvolution returns an uninitialized convolution kernel.
func NewConvolution() *Convolution {
	k := &Convolution{partitionLength: DefaultPartitionLength}
	k.declare(nil)

	return k
}

// SetPartitionLength sets the partition length, a power of two. A loaded
// table is repartitioned.
func (k *Convolution) SetPartitionLength(n int) error {
	if err := k.setupAllowed(); err != nil {
		return err
	}

	if n < 1 || bits.OnesCount(uint(n)) != 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPartitionLength, n)
	}

	k.partitionLength = n

	if k.table == nil || k.State() == StateUninitialized {
		return nil
	}

	return k.build()
}

// PartitionLength returns the partition length in samples.
func (k *Convolution) PartitionLength() int { return k.partitionLength }

// Latency returns the output delay in frames.
func (k *Convolution) Latency() int { return k.partitionLength }

// SetUpTable loads the impulse response. The table is copied. Before Init
// the table is kept and prepared by Init.
func (k *Convolution) SetUpTable(table []float32) error {
	if err := k.setupAllowed(); err != nil {
		return err
	}

	if len(table) == 0 {
		return ErrEmptyTable
	}

	ir := make([]float64, len(table))
	core.ToFloat64(ir, table)
	k.table = ir

	if k.State() == StateUninitialized {
		return nil
	}

	return k.build()
}

// TableLength returns the number of samples of the loaded table.
func (k *Convolution) TableLength() int { return len(k.table) }

// Init prepares the loaded table, if any, for channelCount channels.
func (k *Convolution) Init(channelCount int, sampleRate float64) error {
	if err := k.initialize(channelCount, sampleRate); err != nil {
		return err
	}

	if k.table != nil {
		if err := k.build(); err != nil {
			return err
		}
	}

	k.markInitialized()

	return nil
}

// Start enables processing once a table is loaded.
func (k *Convolution) Start() {
	if k.engine.Load() == nil {
		return
	}

	k.Base.Start()
}

// Reset clears the convolution history of every channel.
func (k *Convolution) Reset() {
	e := k.engine.Load()
	if e == nil {
		return
	}

	for _, s := range e.streams {
		s.Reset()
	}
}

// Destroy releases the prepared table.
func (k *Convolution) Destroy() {
	k.destroy()
	k.engine.Store(nil)
	k.active = nil
	k.table = nil
}

// Process renders one block.
func (k *Convolution) Process(in, out buffer.List, frameCount, bufferOffset int) {
	k.render(k, in, out, frameCount, bufferOffset)
}

func (k *Convolution) build() error {
	ir, err := conv.NewUniform(k.table, k.partitionLength)
	if err != nil {
		return fmt.Errorf("kernel: convolution: %w", err)
	}

	e := &convolutionEngine{ir: ir, streams: make([]*conv.UniformStream, k.ChannelCount())}
	for ch := range e.streams {
		s, err := ir.NewStream()
		if err != nil {
			return fmt.Errorf("kernel: convolution: %w", err)
		}

		e.streams[ch] = s
	}

	k.engine.Store(e)

	return nil
}

func (k *Convolution) apply([]float32) {
	k.active = k.engine.Load()
}

func (k *Convolution) compute(ch int, in float32) float32 {
	return float32(k.active.streams[ch].Compute(float64(in)))
}
