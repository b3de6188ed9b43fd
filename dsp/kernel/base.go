package kernel

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/cwbudde/algo-fx/dsp/buffer"
	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/ramp"
)

// Base is the lifecycle, parameter and render-loop component shared by all
// kernels. Concrete kernels embed it and supply the primitive.
//
// Parameter tables are dense: the parameter at index i has Address i.
type Base struct {
	params  []Parameter
	rampers []ramp.Ramper
	values  []float32
	state   atomic.Int32

	channels   int
	sampleRate float64

	// Per-call views of the borrowed buffers; cleared before Process returns.
	inCh, outCh [][]float32
}

func (b *Base) declare(params []Parameter) {
	for i, p := range params {
		if p.Address != Address(i) {
			panic(fmt.Sprintf("kernel: parameter %q has address %d at index %d", p.Identifier, p.Address, i))
		}
	}

	b.params = params
	b.rampers = make([]ramp.Ramper, len(params))
	b.values = make([]float32, len(params))

	for i, p := range params {
		b.rampers[i].Set(p.Default)
		b.values[i] = p.Default
	}
}

func (b *Base) initialize(channelCount int, sampleRate float64) error {
	switch State(b.state.Load()) {
	case StateDestroyed:
		return ErrDestroyed
	case StateStopped, StateStarted:
		return ErrAlreadyInitialized
	}

	if channelCount < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidChannelCount, channelCount)
	}

	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	b.channels = channelCount
	b.sampleRate = sampleRate
	b.inCh = make([][]float32, channelCount)
	b.outCh = make([][]float32, channelCount)

	return nil
}

// snapshot refreshes values from the rampers without advancing them.
func (b *Base) snapshot() []float32 {
	for i := range b.rampers {
		b.values[i] = b.rampers[i].Value()
	}

	return b.values
}

func (b *Base) markInitialized() {
	b.state.Store(int32(StateStopped))
}

func (b *Base) destroy() {
	b.state.Store(int32(StateDestroyed))
}

// setupAllowed reports whether kernel-specific setup may run now.
func (b *Base) setupAllowed() error {
	switch State(b.state.Load()) {
	case StateDestroyed:
		return ErrDestroyed
	case StateStarted:
		return ErrRunning
	default:
		return nil
	}
}

// Start enables processing. It is ignored unless the kernel is stopped.
func (b *Base) Start() {
	b.state.CompareAndSwap(int32(StateStopped), int32(StateStarted))
}

// Stop switches to pass-through. It is ignored unless the kernel is started.
func (b *Base) Stop() {
	b.state.CompareAndSwap(int32(StateStarted), int32(StateStopped))
}

// State returns the lifecycle state.
func (b *Base) State() State {
	return State(b.state.Load())
}

// IsStarted reports whether the kernel is processing.
func (b *Base) IsStarted() bool {
	return b.State() == StateStarted
}

// ChannelCount returns the channel count given to Init.
func (b *Base) ChannelCount() int { return b.channels }

// SampleRate returns the sample rate given to Init.
func (b *Base) SampleRate() float64 { return b.sampleRate }

// Parameters returns a copy of the parameter table.
func (b *Base) Parameters() []Parameter {
	return slices.Clone(b.params)
}

// SetParameter clamps v into the parameter range and jumps to it.
func (b *Base) SetParameter(addr Address, v float32) {
	if addr >= Address(len(b.params)) {
		return
	}

	p := &b.params[addr]
	b.rampers[addr].Set(core.Clamp(v, p.Min, p.Max))
}

// Parameter returns the goal of the parameter at addr, or 0.
func (b *Base) Parameter(addr Address) float32 {
	if addr >= Address(len(b.params)) {
		return 0
	}

	return b.rampers[addr].Goal()
}

// StartRamp clamps v into the parameter range and ramps to it.
func (b *Base) StartRamp(addr Address, v float32, frames int) {
	if addr >= Address(len(b.params)) {
		return
	}

	p := &b.params[addr]
	b.rampers[addr].StartRamp(core.Clamp(v, p.Min, p.Max), frames)
}

func (b *Base) step() {
	for i := range b.rampers {
		b.values[i] = b.rampers[i].Step()
	}
}

// render is the per-block loop behind every kernel's Process.
//
// Each frame advances every ramper once and pushes the values into p. The
// first frame that finds the kernel not started copies every channel of the
// block from in to out and returns; the rest of the block does not advance
// the ramps.
func (b *Base) render(p primitive, in, out buffer.List, frameCount, bufferOffset int) {
	if frameCount <= 0 || bufferOffset < 0 {
		return
	}

	channels := min(len(in), len(out))
	frames := frameCount
	for c := range channels {
		frames = min(frames, len(in.Channel(c))-bufferOffset, len(out.Channel(c))-bufferOffset)
	}

	if frames <= 0 {
		return
	}

	active := min(channels, len(b.inCh))
	for c := range active {
		b.inCh[c] = in.Channel(c)[bufferOffset : bufferOffset+frames]
		b.outCh[c] = out.Channel(c)[bufferOffset : bufferOffset+frames]
	}
	defer b.release(active)

	for f := range frames {
		b.step()

		st := State(b.state.Load())
		initialized := st == StateStopped || st == StateStarted
		if initialized {
			p.apply(b.values)
		}

		if st != StateStarted {
			bypass(in, out, channels, bufferOffset, frames)
			return
		}

		for c := range active {
			b.outCh[c][f] = p.compute(c, b.inCh[c][f])
		}
	}
}

func (b *Base) release(active int) {
	clear(b.inCh[:active])
	clear(b.outCh[:active])
}

func bypass(in, out buffer.List, channels, offset, frames int) {
	for c := range channels {
		copy(out.Channel(c)[offset:offset+frames], in.Channel(c)[offset:offset+frames])
	}
}
