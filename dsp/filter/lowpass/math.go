//go:build !fastmath

package lowpass

import "math"

// dbToRatio converts decibels to an amplitude ratio.
func dbToRatio(db float64) float64 {
	return math.Pow(10, db/20)
}
