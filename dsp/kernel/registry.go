package kernel

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Factory creates an uninitialized kernel.
type Factory func() Kernel

var errDuplicateKernel = errors.New("kernel: duplicate kernel name")

// Registry maps kernel names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds a named factory.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errors.New("kernel: empty kernel name")
	}

	if factory == nil {
		return fmt.Errorf("kernel: nil factory for %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %q", errDuplicateKernel, name)
	}

	r.factories[name] = factory

	return nil
}

// MustRegister adds a named factory and panics on error.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory for name.
func (r *Registry) Lookup(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[name]

	return f, ok
}

// New creates a fresh kernel by name.
func (r *Registry) New(name string) (Kernel, error) {
	f, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("kernel: unknown kernel %q", name)
	}

	return f(), nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	r.mu.RUnlock()

	slices.Sort(names)

	return names
}

// DefaultRegistry returns a registry holding every built-in kernel.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("lowshelf", func() Kernel { return NewLowShelfParametricEqualizer() })
	r.MustRegister("highshelf", func() Kernel { return NewHighShelfParametricEqualizer() })
	r.MustRegister("peak", func() Kernel { return NewPeakingParametricEqualizer() })
	r.MustRegister("combreverb", func() Kernel { return NewCombFilterReverb() })
	r.MustRegister("resonator", func() Kernel { return NewStringResonator() })
	r.MustRegister("convolution", func() Kernel { return NewConvolution() })
	r.MustRegister("delay", func() Kernel { return NewDelay() })
	r.MustRegister("lowpass", func() Kernel { return NewLowPassFilter() })

	return r
}
