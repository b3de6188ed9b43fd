// Package effects provides time-based effect primitives for the kernels.
//
// Included processors:
//   - Delay: a multichannel feedback delay with a lowpass in the loop and a
//     dry/wet mix.
//
// Reverb and string resonator primitives live in the reverb and resonator
// subpackages.
package effects
