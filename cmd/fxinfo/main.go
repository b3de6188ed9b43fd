// Command fxinfo prints the effect kernels, their parameter tables and the
// SIMD features available to the block math.
//
// Usage:
//
//	fxinfo [flags] [kernel-name ...]
//
// Without arguments it prints the parameter table of every kernel.
//
// Examples:
//
//	fxinfo lowshelf
//	fxinfo -list
//	fxinfo -cpu
//	fxinfo -response peak -freq 2000 -gain 3 -q 1.4
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-fx/dsp/core"
	"github.com/cwbudde/algo-fx/dsp/filter/pareq"
	"github.com/cwbudde/algo-fx/dsp/kernel"
	"github.com/cwbudde/algo-vecmath/cpu"
)

var equalizerModes = map[string]pareq.Mode{
	"lowshelf":  pareq.ModeLowShelf,
	"highshelf": pareq.ModeHighShelf,
	"peak":      pareq.ModePeak,
}

func main() {
	list := flag.Bool("list", false, "list available kernel names")
	showCPU := flag.Bool("cpu", false, "print detected SIMD features")
	response := flag.String("response", "", "print the magnitude response of an equalizer kernel")
	freq := flag.Float64("freq", 1000, "equalizer corner or center frequency in Hz (with -response)")
	gain := flag.Float64("gain", 2, "equalizer linear gain (with -response)")
	q := flag.Float64("q", 0.707, "equalizer Q (with -response)")
	sampleRate := flag.Float64("sr", 44100, "sample rate in Hz (with -response)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fxinfo [flags] [kernel-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints effect kernel parameter tables.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints every kernel.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fxinfo lowshelf combreverb\n")
		fmt.Fprintf(os.Stderr, "  fxinfo -cpu\n")
		fmt.Fprintf(os.Stderr, "  fxinfo -response peak -freq 2000 -gain 3 -q 1.4\n")
	}
	flag.Parse()

	registry := kernel.DefaultRegistry()

	switch {
	case *list:
		for _, name := range registry.Names() {
			fmt.Println(name)
		}
	case *showCPU:
		printCPU(cpu.DetectFeatures())
	case *response != "":
		mode, ok := equalizerModes[strings.ToLower(*response)]
		if !ok {
			fmt.Fprintf(os.Stderr, "error: %q is not an equalizer kernel (lowshelf, highshelf, peak)\n", *response)
			os.Exit(1)
		}

		if err := printResponse(mode, *freq, *gain, *q, *sampleRate); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	default:
		names := flag.Args()
		if len(names) == 0 {
			names = registry.Names()
		}

		if !printParameters(registry, names) {
			os.Exit(1)
		}
	}
}

func printParameters(registry *kernel.Registry, names []string) bool {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Kernel\tAddress\tIdentifier\tName\tUnit\tMin\tMax\tDefault\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return false
	}

	printed := 0
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		k, err := registry.New(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v (use -list to see available)\n", err)
			continue
		}

		params := k.Parameters()
		if len(params) == 0 {
			if _, err := fmt.Fprintf(tw, "%s\t-\t(no parameters)\t\t\t\t\t\n", name); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
				return false
			}
		}

		for _, p := range params {
			if _, err := fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%g\t%g\t%g\n",
				name, p.Address, p.Identifier, p.Name, p.Unit, p.Min, p.Max, p.Default,
			); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
				return false
			}
		}

		printed++
	}

	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
		return false
	}

	if printed == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching kernels\n")
		return false
	}

	return true
}

func printCPU(f cpu.Features) {
	levels := []cpu.SIMDLevel{cpu.SIMDSSE2, cpu.SIMDAVX, cpu.SIMDAVX2, cpu.SIMDAVX512, cpu.SIMDNEON}

	best := cpu.SIMDNone
	fmt.Printf("Architecture: %s\n", f.Architecture)
	for _, level := range levels {
		ok := cpu.Supports(f, level)
		if ok {
			best = level
		}
		fmt.Printf("%-13s %v\n", level.String()+":", ok)
	}

	fmt.Printf("Block math:   %s\n", best)
}

func printResponse(mode pareq.Mode, freq, gain, q, sampleRate float64) error {
	eq, err := pareq.New(1, sampleRate, mode)
	if err != nil {
		return err
	}

	eq.Fc, eq.V, eq.Q = freq, gain, q
	c := eq.Coefficients()

	fmt.Printf("%s  fc=%g Hz  gain=%g (%+.2f dB)  Q=%g  sr=%g Hz  stable=%v\n",
		mode, freq, gain, core.LinearToDB(gain), q, sampleRate, c.Stable())

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	for f := 31.25; f < sampleRate/2; f *= 2 {
		if _, err := fmt.Fprintf(tw, "%.0f Hz\t%.2f dB\t\n", f, c.MagnitudeDB(f, sampleRate)); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}

	return tw.Flush()
}
