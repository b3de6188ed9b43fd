//go:build fastmath

package pareq

// approx.FastLog is accurate to about 1.2e-5 absolute.
const (
	flatTolerance  = 1e-4
	coeffTolerance = 1e-4
)
