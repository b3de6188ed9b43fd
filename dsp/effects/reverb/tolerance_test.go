//go:build !fastmath

package reverb

const decayTolerance = 1e-9
