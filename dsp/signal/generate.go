package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed changes the noise seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Pulses generates a train of unit impulses every period samples, starting
// at sample 0.
func (g *Generator) Pulses(period, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("pulse samples must be > 0: %d", samples)
	}
	if period <= 0 {
		return nil, fmt.Errorf("pulse period must be > 0: %d", period)
	}
	out := make([]float64, samples)
	for i := 0; i < samples; i += period {
		out[i] = 1
	}
	return out, nil
}

// DecayingNoiseIR synthesizes a room-like impulse response: white noise
// under an exponential envelope that falls by 60 dB after rt60 seconds.
// The result is normalized to a peak of 1.
func (g *Generator) DecayingNoiseIR(seconds, rt60 float64) ([]float64, error) {
	if seconds <= 0 || !core.IsFinite(seconds) {
		return nil, fmt.Errorf("ir length must be > 0: %f", seconds)
	}
	if rt60 <= 0 || !core.IsFinite(rt60) {
		return nil, fmt.Errorf("ir rt60 must be > 0: %f", rt60)
	}

	n := max(int(seconds*g.cfg.SampleRate), 1)
	ir, err := g.WhiteNoise(1, n)
	if err != nil {
		return nil, err
	}

	env := make([]float64, n)
	decay := math.Log(0.001) / (rt60 * g.cfg.SampleRate)
	for i := range env {
		env[i] = math.Exp(decay * float64(i))
	}
	vecmath.MulBlockInPlace(ir, env)

	return Normalize(ir, 1)
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	out := make([]float64, len(data))
	maxAbs := vecmath.MaxAbs(data)
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	vecmath.ScaleBlock(out, data, targetPeak/maxAbs)
	return out, nil
}

// ToFloat32 converts a generated signal to the kernels' sample type.
func ToFloat32(data []float64) []float32 {
	out := make([]float32, len(data))
	core.ToFloat32(out, data)
	return out
}
