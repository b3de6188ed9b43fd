// Command fxplay plays a test signal through an effect kernel on the default
// sound card while ramping parameters on a schedule.
//
// Usage:
//
//	fxplay [flags]
//
// Ramps are given as address=value@start+length with times in seconds.
//
// Examples:
//
//	fxplay -kernel lowshelf -ramp 1=4@1+2 -ramp 1=1@4+1
//	fxplay -kernel resonator -signal pulses -set 0=220
//	fxplay -kernel delay -signal pulses -set 0=0.3 -ramp 0=0.1@3+2
//	fxplay -kernel convolution -signal pulses -ir-rt60 1.5
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/kernel"
	dspsignal "github.com/cwbudde/algo-fx/dsp/signal"
	"github.com/cwbudde/algo-fx/internal/host"
)

// eventList collects repeated -set and -ramp flags. Times stay in seconds
// until the sample rate is known.
type eventList struct {
	action host.Action
	specs  []eventSpec
}

type eventSpec struct {
	addr          kernel.Address
	value         float32
	start, length float64
}

func (l *eventList) String() string { return fmt.Sprint(len(l.specs)) }

func (l *eventList) Set(s string) error {
	addrText, rest, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("missing '=' in %q", s)
	}

	addr, err := strconv.ParseUint(addrText, 10, 64)
	if err != nil {
		return fmt.Errorf("bad address %q: %w", addrText, err)
	}

	valueText, timing, _ := strings.Cut(rest, "@")
	value, err := strconv.ParseFloat(valueText, 32)
	if err != nil {
		return fmt.Errorf("bad value %q: %w", valueText, err)
	}

	spec := eventSpec{addr: kernel.Address(addr), value: float32(value)}
	if timing != "" {
		startText, lengthText, _ := strings.Cut(timing, "+")
		if spec.start, err = strconv.ParseFloat(startText, 64); err != nil {
			return fmt.Errorf("bad start %q: %w", startText, err)
		}

		if lengthText != "" {
			if spec.length, err = strconv.ParseFloat(lengthText, 64); err != nil {
				return fmt.Errorf("bad length %q: %w", lengthText, err)
			}
		}
	}

	l.specs = append(l.specs, spec)

	return nil
}

func (l *eventList) events(sampleRate float64) []host.Event {
	out := make([]host.Event, len(l.specs))
	for i, s := range l.specs {
		out[i] = host.Event{
			Frame:      int64(s.start * sampleRate),
			Action:     l.action,
			Address:    s.addr,
			Value:      s.value,
			RampFrames: int(s.length * sampleRate),
		}
	}

	return out
}

func main() {
	name := flag.String("kernel", "lowshelf", "kernel to run (see fxinfo -list)")
	source := flag.String("signal", "noise", "test signal: sine, noise or pulses")
	freq := flag.Float64("freq", 220, "sine frequency in Hz")
	level := flag.Float64("level", -12, "test signal peak level in dBFS")
	duration := flag.Duration("duration", 8*time.Second, "playback time")
	sampleRate := flag.Float64("sr", 44100, "sample rate in Hz")
	blockSize := flag.Int("block", 512, "render block size in frames")
	subBlock := flag.Int("subblock", 0, "split render blocks into Process calls of this many frames")
	loopDuration := flag.Float64("loop", 0.1, "comb reverb loop duration in seconds")
	irRT60 := flag.Float64("ir-rt60", 1, "synthetic impulse response RT60 in seconds (convolution)")
	partition := flag.Int("partition", kernel.DefaultPartitionLength, "convolution partition length")
	bypass := flag.Bool("bypass", false, "start the kernel stopped")

	sets := &eventList{action: host.ActionSet}
	ramps := &eventList{action: host.ActionRamp}
	flag.Var(sets, "set", "set parameter: address=value[@seconds] (repeatable)")
	flag.Var(ramps, "ramp", "ramp parameter: address=value@start+length (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fxplay [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Plays a test signal through an effect kernel.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fxplay -kernel lowshelf -ramp 1=4@1+2\n")
		fmt.Fprintf(os.Stderr, "  fxplay -kernel resonator -signal pulses -set 0=220\n")
		fmt.Fprintf(os.Stderr, "  fxplay -kernel lowpass -signal noise -ramp 0=300@1+3 -set 1=12\n")
	}
	flag.Parse()

	if err := run(*name, *source, *freq, core.DBToLinear(*level), *duration, *sampleRate, *blockSize, *subBlock,
		*loopDuration, *irRT60, *partition, *bypass,
		append(sets.events(*sampleRate), ramps.events(*sampleRate)...)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(name, source string, freq, level float64, duration time.Duration, sampleRate float64,
	blockSize, subBlock int, loopDuration, irRT60 float64, partition int, bypass bool, events []host.Event,
) error {
	coreOpts := []core.ProcessorOption{core.WithSampleRate(sampleRate), core.WithBlockSize(blockSize)}
	gen := newGenerator(sampleRate)

	input, err := testSignal(gen, source, freq, level)
	if err != nil {
		return err
	}

	k, err := kernel.DefaultRegistry().New(name)
	if err != nil {
		return err
	}

	if err := configure(k, gen, loopDuration, irRT60, partition); err != nil {
		return err
	}

	h, err := host.New(k, host.Loop(input), host.WithProcessor(coreOpts...), host.WithSubBlock(subBlock))
	if err != nil {
		return err
	}
	defer k.Destroy()

	if !bypass {
		k.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()

	automation := make(chan error, 1)
	go func() { automation <- h.RunAutomation(ctx, events) }()

	if err := host.Play(ctx, h); err != nil {
		return err
	}

	if err := <-automation; err != nil && ctx.Err() == nil {
		return err
	}

	s := h.Stats()
	fmt.Fprintf(os.Stderr, "%s: %d frames, block mean %v (sd %v, p99 %v, max %v), load %.1f%%\n",
		name, h.Position(), s.Mean, s.StdDev, s.P99, s.Max, 100*s.Load())

	return nil
}

func newGenerator(sampleRate float64) *dspsignal.Generator {
	return dspsignal.NewGenerator(core.WithSampleRate(sampleRate))
}

func testSignal(gen *dspsignal.Generator, source string, freq, level float64) ([]float32, error) {
	sr := gen.Config().SampleRate
	n := int(sr)

	var (
		data []float64
		err  error
	)

	switch source {
	case "sine":
		data, err = gen.Sine(freq, level, n)
	case "noise":
		data, err = gen.WhiteNoise(level, n)
	case "pulses":
		data, err = gen.Pulses(n/2, n)
		if err == nil {
			data, err = dspsignal.Normalize(data, level)
		}
	default:
		return nil, fmt.Errorf("unknown signal %q (sine, noise, pulses)", source)
	}

	if err != nil {
		return nil, err
	}

	return dspsignal.ToFloat32(data), nil
}

func configure(k kernel.Kernel, gen *dspsignal.Generator, loopDuration, irRT60 float64, partition int) error {
	switch k := k.(type) {
	case *kernel.CombFilterReverb:
		return k.SetLoopDuration(loopDuration)
	case *kernel.Convolution:
		if err := k.SetPartitionLength(partition); err != nil {
			return err
		}

		ir, err := gen.DecayingNoiseIR(1.5*irRT60, irRT60)
		if err != nil {
			return err
		}

		// -26 dB peak.
		ir, err = dspsignal.Normalize(ir, 0.05)
		if err != nil {
			return err
		}

		return k.SetUpTable(dspsignal.ToFloat32(ir))
	}

	return nil
}
