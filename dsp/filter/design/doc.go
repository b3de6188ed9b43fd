// Package design provides RBJ-style biquad coefficient designers for the
// parametric equalizer shapes (peak, low shelf, high shelf) and for a
// resonant lowpass.
//
// The functions produce coefficients consumable by dsp/filter/biquad. Invalid
// requests (non-positive or non-finite sample rate, frequency outside
// (0, Nyquist)) yield zero coefficients; callers test with
// [biquad.Coefficients.IsZero].
package design
