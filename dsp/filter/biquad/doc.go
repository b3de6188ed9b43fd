// Package biquad provides the second-order IIR section runtime used by the
// parametric equalizer, lowpass and delay primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Coefficient design lives in
// dsp/filter/design.
package biquad
