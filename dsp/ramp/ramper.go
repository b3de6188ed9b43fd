package ramp

import (
	"math"
	"sync/atomic"
)

// Ramper linearly interpolates one scalar parameter towards a goal over a
// number of frames. The zero value is a ramper resting at 0.
//
// A Ramper must not be copied after first use.
type Ramper struct {
	value     atomic.Uint32 // float32 bits
	goal      atomic.Uint32 // float32 bits
	increment atomic.Uint32 // float32 bits
	remaining atomic.Int64
}

// New returns a Ramper resting at initial.
func New(initial float32) *Ramper {
	r := &Ramper{}
	r.Set(initial)
	return r
}

// Set jumps immediately to v and cancels any ramp in flight.
// It does not clamp; range checking belongs to the owning kernel.
func (r *Ramper) Set(v float32) {
	bits := math.Float32bits(v)
	r.remaining.Store(0)
	r.goal.Store(bits)
	r.value.Store(bits)
	r.increment.Store(0)
}

// StartRamp begins a linear ramp from the current value to target over
// frames steps. A non-positive frame count behaves like Set(target).
func (r *Ramper) StartRamp(target float32, frames int) {
	if frames <= 0 {
		r.Set(target)
		return
	}

	current := math.Float32frombits(r.value.Load())
	inc := (target - current) / float32(frames)

	// Publish goal and increment before remaining so that the render side
	// never advances a new ramp with the previous increment.
	r.remaining.Store(0)
	r.goal.Store(math.Float32bits(target))
	r.increment.Store(math.Float32bits(inc))
	r.remaining.Store(int64(frames))
}

// Step advances the ramp by exactly one frame and returns the new value.
// The owning kernel calls it once per frame from the render goroutine.
func (r *Ramper) Step() float32 {
	remaining := r.remaining.Load()
	if remaining <= 0 {
		// Converged: value == goal. Re-publishing the goal repairs a value
		// overwritten by a step that raced with Set.
		goal := r.goal.Load()
		if r.value.Load() != goal {
			r.value.Store(goal)
		}
		return math.Float32frombits(goal)
	}

	remaining--
	var v float32
	if remaining == 0 {
		v = math.Float32frombits(r.goal.Load())
	} else {
		v = math.Float32frombits(r.value.Load()) + math.Float32frombits(r.increment.Load())
	}

	// A concurrent Set/StartRamp wins: only publish if the ramp we advanced
	// is still the one in flight.
	if r.remaining.CompareAndSwap(remaining+1, remaining) {
		r.value.Store(math.Float32bits(v))
		return v
	}

	return math.Float32frombits(r.value.Load())
}

// Goal returns the ramp target (or the resting value) without advancing.
func (r *Ramper) Goal() float32 {
	return math.Float32frombits(r.goal.Load())
}

// Value returns the current value without advancing.
func (r *Ramper) Value() float32 {
	return math.Float32frombits(r.value.Load())
}

// Remaining returns the number of frames left in the current ramp.
func (r *Ramper) Remaining() int {
	return int(r.remaining.Load())
}

// Ramping reports whether a ramp is in flight.
func (r *Ramper) Ramping() bool {
	return r.remaining.Load() > 0
}
