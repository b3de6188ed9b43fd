package biquad

import (
	"math"
	"testing"
)

func TestResponse_PassthroughIsFlat(t *testing.T) {
	for _, f := range []float64{10, 1000, 10000, 23999} {
		if m := Passthrough.Magnitude(f, 48000); !almostEqual(m, 1, eps) {
			t.Errorf("|H(%v)| = %v, want 1", f, m)
		}
	}
}

func TestResponse_TwoTapAverage(t *testing.T) {
	c := simpleLowpass()

	if m := c.Magnitude(0, 48000); !almostEqual(m, 1, eps) {
		t.Fatalf("DC magnitude = %v, want 1", m)
	}

	if m := c.Magnitude(24000, 48000); m > 1e-9 {
		t.Fatalf("Nyquist magnitude = %v, want 0", m)
	}

	// |cos(w/2)| at fs/4.
	want := 20 * math.Log10(math.Cos(math.Pi/4))
	if db := c.MagnitudeDB(12000, 48000); !almostEqual(db, want, 1e-9) {
		t.Fatalf("MagnitudeDB(fs/4) = %v, want %v", db, want)
	}
}

func TestStable(t *testing.T) {
	tests := []struct {
		name string
		c    Coefficients
		want bool
	}{
		{"fir", simpleLowpass(), true},
		{"damped", Coefficients{B0: 1, A1: -0.2, A2: 0.04}, true},
		{"pole on circle", Coefficients{B0: 1, A2: 1}, false},
		{"real pole outside", Coefficients{B0: 1, A1: -2.5, A2: 1.2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.c.Stable(); got != tt.want {
				t.Fatalf("Stable() = %v, want %v", got, tt.want)
			}
		})
	}
}
