// Package lowpass provides a resonant second-order lowpass primitive with a
// dry/wet mix.
//
// Like the parametric equalizer, the filter exposes its controls as plain
// mutable fields (Cutoff, Resonance, Mix) that a kernel writes once per
// frame. Coefficients are redesigned on the next [Filter.Compute] after
// Cutoff or Resonance changes.
//
// Build with -tags fastmath to use algo-approx for the dB conversion.
package lowpass
