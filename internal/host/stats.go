package host

import (
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Stats summarises recent render block timings.
type Stats struct {
	Blocks int
	Mean   time.Duration
	StdDev time.Duration
	P99    time.Duration
	Max    time.Duration
	// Budget is the real-time length of one full block.
	Budget time.Duration
}

// Load returns the mean block time as a fraction of the block budget.
func (s Stats) Load() float64 {
	if s.Budget <= 0 {
		return 0
	}

	return float64(s.Mean) / float64(s.Budget)
}

// Stats summarises the most recent block timings.
func (h *Host) Stats() Stats {
	h.timingMu.Lock()
	samples := make([]float64, h.count)
	for i := range samples {
		samples[i] = float64(h.timings[i])
	}
	h.timingMu.Unlock()

	s := Stats{
		Blocks: len(samples),
		Budget: time.Duration(float64(h.cfg.BlockSize) / h.cfg.SampleRate * float64(time.Second)),
	}

	if len(samples) == 0 {
		return s
	}

	slices.Sort(samples)

	mean, std := stat.MeanStdDev(samples, nil)
	s.Mean = time.Duration(mean)
	if len(samples) > 1 {
		s.StdDev = time.Duration(std)
	}
	s.P99 = time.Duration(stat.Quantile(0.99, stat.Empirical, samples, nil))
	s.Max = time.Duration(samples[len(samples)-1])

	return s
}
