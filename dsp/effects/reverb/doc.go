// Package reverb provides reverb primitives for the effect kernels.
//
// Included processors:
//   - Comb: a multichannel feedback comb whose decay is set by the time the
//     loop needs to fall by 60 dB.
//
// Build with -tags fastmath to use algo-approx for the feedback coefficient.
package reverb
