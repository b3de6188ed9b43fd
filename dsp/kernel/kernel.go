package kernel

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/buffer"
)

// Address identifies a parameter within one kernel type. Addresses are
// small, dense and stable per kernel type.
type Address uint64

// Parameter describes one tunable parameter and its valid range.
type Parameter struct {
	Address    Address
	Identifier string
	Name       string
	Unit       string
	Min        float32
	Max        float32
	Default    float32
}

// State is the lifecycle state of a kernel.
type State int32

const (
	// StateUninitialized is the state of a freshly constructed kernel.
	StateUninitialized State = iota
	// StateStopped means initialized and bypassing.
	StateStopped
	// StateStarted means initialized and processing.
	StateStarted
	// StateDestroyed is terminal.
	StateDestroyed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateStopped:
		return "stopped"
	case StateStarted:
		return "started"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Kernel is the contract shared by every effect.
//
// SetParameter, Parameter, StartRamp, Start and Stop may be called from a
// control goroutine while Process runs on the render goroutine. Init, Reset,
// Destroy and kernel-specific setup must not overlap with Process.
type Kernel interface {
	// Init allocates the effect primitive for channelCount channels at
	// sampleRate and leaves the kernel stopped.
	Init(channelCount int, sampleRate float64) error
	// Start enables processing. It is ignored before Init and after Destroy.
	Start()
	// Stop switches to pass-through. In-flight ramps keep advancing.
	Stop()
	// Reset clears delay lines and filter memory. Parameters are kept.
	Reset()
	// Destroy releases the primitive. The kernel is unusable afterwards.
	Destroy()

	// SetParameter clamps v into the parameter range and jumps to it.
	// Unknown addresses are ignored.
	SetParameter(addr Address, v float32)
	// Parameter returns the parameter goal, or 0 for unknown addresses.
	Parameter(addr Address) float32
	// StartRamp clamps v and ramps to it over frames frames.
	// Unknown addresses are ignored.
	StartRamp(addr Address, v float32, frames int)

	// Process renders frameCount frames starting at bufferOffset from in
	// to out. in and out may be the same list.
	Process(in, out buffer.List, frameCount, bufferOffset int)

	// Parameters returns the parameter table.
	Parameters() []Parameter
	// State returns the lifecycle state.
	State() State
	// IsStarted reports whether the kernel is processing.
	IsStarted() bool
}

// primitive bridges ramped values into an effect's DSP state.
// apply receives one value per declared parameter, in address order, once
// per frame before compute is called for each channel.
type primitive interface {
	apply(values []float32)
	compute(channel int, in float32) float32
}
