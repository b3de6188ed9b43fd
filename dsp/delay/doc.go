// Package delay provides a circular delay line with integer and fractional
// reads, used by the comb reverb, string resonator and feedback delay
// primitives.
package delay
