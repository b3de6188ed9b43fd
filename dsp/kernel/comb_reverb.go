package kernel

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/buffer"
	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/effects/reverb"
)

// ReverbDurationAddress is the RT60 of the comb reverb in seconds.
const ReverbDurationAddress Address = 0

var combReverbParameters = []Parameter{
	{Address: ReverbDurationAddress, Identifier: "reverbDuration", Name: "Reverb Duration", Unit: "s", Min: 0, Max: 10, Default: 1},
}

// CombFilterReverb is a single feedback comb whose decay reaches -60 dB
// after the reverb duration.
type CombFilterReverb struct {
	Base

	loopDuration float64
	comb         *reverb.Comb
}

// NewCombFilterReverb returns an uninitialized comb reverb with a 0.1 s loop.
func NewCombFilterReverb() *CombFilterReverb {
	k := &CombFilterReverb{loopDuration: reverb.DefaultLoopTime}
	k.declare(combReverbParameters)

	return k
}

// SetLoopDuration sets the comb loop length in seconds. It must be called
// before Init.
func (k *CombFilterReverb) SetLoopDuration(seconds float64) error {
	switch k.State() {
	case StateDestroyed:
		return ErrDestroyed
	case StateStopped, StateStarted:
		return ErrAlreadyInitialized
	}

	if seconds <= 0 || !core.IsFinite(seconds) {
		return fmt.Errorf("%w: %v", ErrInvalidLoopDuration, seconds)
	}

	k.loopDuration = seconds

	return nil
}

// LoopDuration returns the comb loop length in seconds.
func (k *CombFilterReverb) LoopDuration() float64 { return k.loopDuration }

// Init allocates one comb loop per channel.
func (k *CombFilterReverb) Init(channelCount int, sampleRate float64) error {
	if err := k.initialize(channelCount, sampleRate); err != nil {
		return err
	}

	comb, err := reverb.NewComb(channelCount, sampleRate, k.loopDuration)
	if err != nil {
		return fmt.Errorf("kernel: comb reverb: %w", err)
	}

	k.comb = comb
	k.apply(k.snapshot())
	k.markInitialized()

	return nil
}

// Reset clears the comb loops.
func (k *CombFilterReverb) Reset() {
	if k.comb != nil {
		k.comb.Reset()
	}
}

// Destroy releases the comb loops.
func (k *CombFilterReverb) Destroy() {
	k.destroy()
	k.comb = nil
}

// Process renders one block.
func (k *CombFilterReverb) Process(in, out buffer.List, frameCount, bufferOffset int) {
	k.render(k, in, out, frameCount, bufferOffset)
}

func (k *CombFilterReverb) apply(v []float32) {
	k.comb.RevTime = float64(v[ReverbDurationAddress])
}

func (k *CombFilterReverb) compute(ch int, in float32) float32 {
	return k.comb.Compute(ch, in)
}
