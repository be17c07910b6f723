// Command sineinfo prints the harmonic content the Bruh Sine effect adds to
// a pure tone, for a sweep of one parameter.
//
// Usage:
//
//	sineinfo [flags] [value ...]
//
// Each value is a setting of the swept parameter. Without arguments a
// default sweep over the parameter's range is printed.
//
// Examples:
//
//	sineinfo
//	sineinfo -sweep factor 0 0.25 0.5 1
//	sineinfo -sweep increment -mix 50 0.01 0.1 1
//	sineinfo -window blackman-harris -fft 16384
//	sineinfo -list
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/bruhsine/dsp/core"
	"github.com/cwbudde/bruhsine/dsp/param"
	"github.com/cwbudde/bruhsine/dsp/plugin"
	"github.com/cwbudde/bruhsine/dsp/window"
	"github.com/cwbudde/bruhsine/measure/harmonics"
)

const defaultSweepSteps = 5

type options struct {
	sweep     string
	values    []float64
	base      map[string]float64
	probe     harmonics.Probe
	cfg       harmonics.Config
	harmonics int
}

func main() {
	sweep := flag.String("sweep", plugin.ParamFactor, "parameter to sweep")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	fftSize := flag.Int("fft", 8192, "FFT size (power of two)")
	freq := flag.Float64("freq", 750, "probe frequency in Hz")
	amp := flag.Float64("amp", 0.5, "probe amplitude")
	count := flag.Int("harmonics", 5, "harmonic columns to print (H2..)")
	win := flag.String("window", "hann", "analysis window")
	increment := flag.Float64("increment", math.NaN(), "fixed increment for the sweep")
	factor := flag.Float64("factor", math.NaN(), "fixed factor for the sweep")
	mix := flag.Float64("mix", math.NaN(), "fixed mix in percent for the sweep")
	list := flag.Bool("list", false, "list parameters and their ranges")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sineinfo [flags] [value ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the harmonic content the effect adds to a pure tone.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  sineinfo -sweep factor 0 0.5 1\n")
		fmt.Fprintf(os.Stderr, "  sineinfo -sweep mix -factor 0.3\n")
		fmt.Fprintf(os.Stderr, "  sineinfo -list\n")
	}
	flag.Parse()

	surface, err := newSurface()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *list {
		if err := printList(os.Stdout, surface); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		return
	}

	winType, err := window.Parse(*win)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	values, err := sweepValues(surface, *sweep, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	base := map[string]float64{}
	for id, v := range map[string]float64{
		plugin.ParamIncrement: *increment,
		plugin.ParamFactor:    *factor,
		plugin.ParamMix:       *mix,
	} {
		if !math.IsNaN(v) {
			base[id] = v
		}
	}

	opts := options{
		sweep:     *sweep,
		values:    values,
		base:      base,
		probe:     harmonics.Probe{Frequency: *freq, Amplitude: *amp},
		cfg:       harmonics.Config{SampleRate: *rate, FFTSize: *fftSize, MaxHarmonics: *count, Window: winType},
		harmonics: *count,
	}

	if err := printSweep(os.Stdout, surface, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newSurface() (*param.Surface, error) {
	fx, err := plugin.New(core.DefaultProcessorConfig())
	if err != nil {
		return nil, err
	}

	return fx.Params(), nil
}

// sweepValues parses args as plain values of id, or spreads
// defaultSweepSteps positions evenly over its normalized range.
func sweepValues(surface *param.Surface, id string, args []string) ([]float64, error) {
	p, ok := surface.Parameter(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q (use -list to see available)", param.ErrUnknownParameter, id)
	}

	if len(args) == 0 {
		values := make([]float64, defaultSweepSteps)
		for i := range values {
			values[i] = p.Range().Unnormalize(float64(i) / float64(defaultSweepSteps-1))
		}

		return values, nil
	}

	values := make([]float64, 0, len(args))

	for _, a := range args {
		v, err := p.Parse(a)
		if err != nil {
			return nil, err
		}

		values = append(values, p.Range().Clamp(v))
	}

	return values, nil
}

func printList(w io.Writer, surface *param.Surface) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "ID\tName\tMin\tMax\tDefault\tSmoothing\n")
	fmt.Fprintf(tw, "--\t----\t---\t---\t-------\t---------\n")

	for _, p := range surface.Parameters() {
		rng := p.Range()
		fmt.Fprintf(tw, "%s\t%s\t%s%s\t%s%s\t%s%s\t%s\n",
			p.ID(), p.Name(),
			p.Format(rng.Min), p.Unit(),
			p.Format(rng.Max), p.Unit(),
			p.Format(p.Default()), p.Unit(),
			p.Smoothing())
	}

	return tw.Flush()
}

func printSweep(w io.Writer, surface *param.Surface, opts options) error {
	p, ok := surface.Parameter(opts.sweep)
	if !ok {
		return fmt.Errorf("%w: %q", param.ErrUnknownParameter, opts.sweep)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\tLevel [dB]\tTHD [%%]\tTHD [dB]", p.Name())

	for k := 2; k < 2+opts.harmonics; k++ {
		fmt.Fprintf(tw, "\tH%d [dB]", k)
	}

	fmt.Fprintln(tw)

	for _, v := range opts.values {
		values := make(map[string]float64, len(opts.base)+1)
		for id, b := range opts.base {
			values[id] = b
		}

		values[opts.sweep] = v

		res, err := harmonics.MeasureEffect(values, opts.probe, opts.cfg)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s%s\t%.2f\t%.3f\t%.2f",
			p.Format(v), p.Unit(),
			core.LinearToDB(res.FundamentalLevel),
			res.THD*100,
			res.THDdB)

		for k := 0; k < opts.harmonics; k++ {
			if k < len(res.Harmonics) {
				fmt.Fprintf(tw, "\t%.2f", core.LinearToDB(res.Harmonics[k]))
			} else {
				fmt.Fprintf(tw, "\t-")
			}
		}

		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
