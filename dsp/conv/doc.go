// Package conv provides the convolution routines behind the convolution
// effect kernel.
//
//   - [Direct]: O(N*M) time-domain linear convolution, used as a reference
//     and for offline checks.
//   - [Uniform] and [UniformStream]: uniformly partitioned FFT convolution
//     with a frequency-domain delay line, computing one output sample per
//     call with a fixed latency of one partition.
//
// # Usage
//
// Build the impulse response spectra once, then create one stream per
// channel:
//
//	ir, err := conv.NewUniform(impulse, 256)
//	s, err := ir.NewStream()
//	for i, x := range input {
//		output[i] = s.Compute(x)
//	}
//
// Every stream owns its FFT plan and scratch buffers, so Compute never
// allocates. Streams created from the same [Uniform] share the read-only
// impulse response spectra.
package conv
