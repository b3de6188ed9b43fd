package core

// ToFloat32 converts src into dst, returning the number of converted samples.
func ToFloat32(dst []float32, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float32(src[i])
	}
	return n
}

// ToFloat64 converts src into dst, returning the number of converted samples.
func ToFloat64(dst []float64, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float64(src[i])
	}
	return n
}
