// Package kernel provides real-time effect kernels with ramped parameters.
//
// A [Kernel] transforms a multichannel float32 stream block by block inside
// a render callback. Every tunable parameter is backed by a [ramp.Ramper],
// so control code can change values immediately ([Kernel.SetParameter]) or
// smoothly over a number of frames ([Kernel.StartRamp]) while the render
// goroutine keeps running. Parameter writes and reads are lock-free.
//
// # Lifecycle
//
//	k := kernel.NewLowShelfParametricEqualizer()
//	if err := k.Init(2, 44100); err != nil {
//		return err
//	}
//	k.Start()
//	k.StartRamp(kernel.GainAddress, 2, 4410)
//	k.Process(in, out, frames, 0) // from the render goroutine
//
// A kernel starts stopped after [Kernel.Init]. While stopped, Process copies
// its input to its output unchanged and advances parameter ramps by a single
// frame per call.
//
// # Render path
//
// Process never allocates, blocks, or returns errors. Buffers passed to it
// are borrowed for the duration of the call only. Setup failures surface
// from Init and from kernel-specific setup methods such as
// [Convolution.SetUpTable].
package kernel
