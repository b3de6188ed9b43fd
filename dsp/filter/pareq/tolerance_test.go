//go:build !fastmath

package pareq

const (
	flatTolerance  = 1e-6
	coeffTolerance = 1e-9
)
