package kernel

import (
	"errors"
	"slices"
	"testing"
)

func TestDefaultRegistryNames(t *testing.T) {
	want := []string{"combreverb", "convolution", "delay", "highshelf", "lowpass", "lowshelf", "peak", "resonator"}
	if got := DefaultRegistry().Names(); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func TestRegistryNewReturnsFreshKernels(t *testing.T) {
	r := DefaultRegistry()

	a, err := r.New("peak")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	b, _ := r.New("peak")
	if a == b {
		t.Fatal("New() returned the same kernel twice")
	}

	if _, ok := a.(*PeakingParametricEqualizer); !ok {
		t.Fatalf("New(peak) = %T, want *PeakingParametricEqualizer", a)
	}

	if _, err := r.New("flanger"); err == nil {
		t.Fatal("New(flanger) error = nil, want error")
	}
}

func TestRegistryRegisterErrors(t *testing.T) {
	r := NewRegistry()
	factory := func() Kernel { return NewStringResonator() }

	if err := r.Register("", factory); err == nil {
		t.Fatal("Register(empty name) error = nil")
	}

	if err := r.Register("x", nil); err == nil {
		t.Fatal("Register(nil factory) error = nil")
	}

	if err := r.Register("x", factory); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := r.Register("x", factory); !errors.Is(err, errDuplicateKernel) {
		t.Fatalf("duplicate Register() error = %v, want %v", err, errDuplicateKernel)
	}

	if _, ok := r.Lookup("x"); !ok {
		t.Fatal("Lookup(x) = false, want true")
	}
}

func TestRegistryMustRegisterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustRegister duplicate did not panic")
		}
	}()

	DefaultRegistry().MustRegister("lowshelf", func() Kernel { return NewLowShelfParametricEqualizer() })
}
