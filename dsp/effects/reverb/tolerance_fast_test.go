//go:build fastmath

package reverb

// approx.FastExp is accurate to about 3.2e-6 relative; the error compounds
// once per loop trip.
const decayTolerance = 1e-5
