package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.1, 3.0}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]float64{1}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestMaxAbsDiffIdentical(t *testing.T) {
	a := []float64{1, 2, 3}

	d, err := MaxAbsDiff(a, a)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if d != 0 {
		t.Fatalf("MaxAbsDiff = %v, want 0 for identical slices", d)
	}
}

func TestMaxAbsDiffFloat32(t *testing.T) {
	d, err := MaxAbsDiff([]float32{0.5, -0.25}, []float32{0.5, 0.25})
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if d != 0.5 {
		t.Fatalf("MaxAbsDiff = %v, want 0.5", d)
	}
}

func TestRequireHelpersPass(t *testing.T) {
	a := []float32{1, -2, 0.5}
	RequireSliceNearlyEqual(t, a, []float32{1, -2, 0.5000001}, 1e-6)
	RequireBitIdentical(t, a, []float32{1, -2, 0.5})
	RequireFinite(t, a)
}

func TestRMS(t *testing.T) {
	if got := RMS([]float32{1, -1, 1, -1}); got != 1 {
		t.Fatalf("RMS = %v, want 1", got)
	}

	if got := RMS[float64](nil); got != 0 {
		t.Fatalf("RMS(nil) = %v, want 0", got)
	}
}
