// Package pareq provides a second-order parametric equalizer primitive with
// peaking, low-shelf and high-shelf modes.
//
// The equalizer exposes its controls as plain mutable fields (Fc, V, Q) so a
// kernel can write ramped values into them once per frame. Coefficients are
// redesigned lazily on the next [PAREQ.Compute] after a field changes, and
// every channel keeps its own filter memory.
//
// Build with -tags fastmath to use algo-approx for the gain conversion.
package pareq
