// Package ramp provides the per-parameter linear ramper that bridges
// control-rate parameter writes into sample-accurate per-frame values.
//
// A [Ramper] is written by a control goroutine ([Ramper.Set],
// [Ramper.StartRamp]) and advanced by the render goroutine exactly once per
// audio frame ([Ramper.Step]). Every field is a single atomic scalar, so the
// hand-off is lock-free; a reader may observe a value that is one frame stale,
// which is inaudible for parameter smoothing.
//
// Ramps are counted in frames rather than wall-clock time, so they are
// sample-accurate and independent of callback jitter. When the last step of a
// ramp is taken the value snaps to the goal, so a ramp of d frames ends on
// the target exactly after d calls to Step.
package ramp
