//go:build fastmath

package lowpass

import "github.com/meko-christian/algo-approx"

const ln10Over20 = 0.11512925464970228420089957273422

// dbToRatio converts decibels to an amplitude ratio using fast approximation.
func dbToRatio(db float64) float64 {
	return approx.FastExp(db * ln10Over20)
}
