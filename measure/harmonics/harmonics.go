// Package harmonics measures the harmonic content of a rendered signal.
//
// It is an offline tool: it windows a block, takes one FFT and reads the
// fundamental and its integer multiples off the magnitude spectrum.
package harmonics

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/bruhsine/dsp/core"
	"github.com/cwbudde/bruhsine/dsp/window"
)

const (
	defaultFFTSize      = 4096
	defaultMaxHarmonics = 9
)

// ErrEmptySignal is returned when there is nothing to analyze.
var ErrEmptySignal = errors.New("harmonics: empty signal")

// Config holds analysis parameters. Zero values select defaults.
type Config struct {
	SampleRate float64
	// FFTSize must be a power of two. Longer signals are truncated, shorter
	// ones zero-padded.
	FFTSize int
	// Fundamental in Hz. Zero searches for the strongest bin.
	Fundamental  float64
	MaxHarmonics int
	// CaptureBins is the half-width of the band summed around each
	// component. Zero uses the window's main lobe.
	CaptureBins int
	Window      window.Type
}

// Result holds one analysis.
type Result struct {
	FundamentalFreq float64
	// FundamentalLevel estimates the peak amplitude of the fundamental.
	FundamentalLevel float64
	// Harmonics[i] is the level of harmonic i+2 relative to the fundamental.
	Harmonics []float64
	// THD is the root-sum-square of Harmonics.
	THD    float64
	THDdB  float64
	OddHD  float64
	EvenHD float64
}

// Analyzer reuses its FFT plan and buffers across calls with the same
// configuration. It is not safe for concurrent use.
type Analyzer struct {
	cfg  Config
	plan *algofft.Plan[complex128]

	window   []float64
	lobeNorm float64
	scratch  []float64
	in       []complex128
	out      []complex128
	mag      []float64
}

// NewAnalyzer validates cfg and prepares an FFT plan.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("harmonics: fft plan: %w", err)
	}

	return &Analyzer{
		cfg:     cfg,
		plan:    plan,
		scratch: make([]float64, cfg.FFTSize),
		in:      make([]complex128, cfg.FFTSize),
		out:     make([]complex128, cfg.FFTSize),
		mag:     make([]float64, cfg.FFTSize/2+1),
	}, nil
}

// Analyze is a one-shot analysis of signal.
func Analyze(signal []float64, cfg Config) (Result, error) {
	a, err := NewAnalyzer(cfg)
	if err != nil {
		return Result{}, err
	}

	return a.Analyze(signal)
}

// Config returns the effective configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// Analyze windows signal, transforms it and evaluates the harmonic series.
func (a *Analyzer) Analyze(signal []float64) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptySignal
	}

	n := min(len(signal), a.cfg.FFTSize)
	a.prepareWindow(n)

	a.scratch = core.EnsureLen(a.scratch, n)
	seg := a.scratch
	copy(seg, signal[:n])

	if err := window.Apply(seg, a.window); err != nil {
		return Result{}, fmt.Errorf("harmonics: %w", err)
	}

	for i := range a.in {
		if i < n {
			a.in[i] = complex(seg[i], 0)
		} else {
			a.in[i] = 0
		}
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return Result{}, fmt.Errorf("harmonics: fft: %w", err)
	}

	for i := range a.mag {
		x := a.out[i]
		a.mag[i] = math.Hypot(real(x), imag(x))
	}

	return a.evaluate(), nil
}

func (a *Analyzer) evaluate() Result {
	cfg := a.cfg
	maxBin := len(a.mag) - 1
	binHz := cfg.SampleRate / float64(cfg.FFTSize)

	fundBin := a.fundamentalBin(binHz)
	capture := min(cfg.CaptureBins, fundBin/2)

	// Magnitudes summed over the main lobe, divided by the window's lobe
	// gain, give the peak amplitude of a sinusoid.
	scale := 1 / a.lobeNorm
	level := lobeSum(a.mag, fundBin, capture) * scale

	res := Result{
		FundamentalFreq:  float64(fundBin) * binHz,
		FundamentalLevel: level,
		THDdB:            math.Inf(-1),
	}

	if level <= 0 {
		return res
	}

	var sumSq, oddSq, evenSq float64

	for k := 2; k-2 < cfg.MaxHarmonics; k++ {
		bin := k * fundBin
		if bin > maxBin {
			break
		}

		ratio := lobeSum(a.mag, bin, capture) * scale / level
		res.Harmonics = append(res.Harmonics, ratio)

		sq := ratio * ratio
		sumSq += sq

		if k%2 == 0 {
			evenSq += sq
		} else {
			oddSq += sq
		}
	}

	res.THD = math.Sqrt(sumSq)
	res.OddHD = math.Sqrt(oddSq)
	res.EvenHD = math.Sqrt(evenSq)

	if res.THD > 0 {
		res.THDdB = 20 * math.Log10(res.THD)
	}

	return res
}

func (a *Analyzer) fundamentalBin(binHz float64) int {
	maxBin := len(a.mag) - 1

	if a.cfg.Fundamental > 0 {
		bin := int(math.Round(a.cfg.Fundamental / binHz))
		return max(1, min(bin, maxBin))
	}

	best := 1
	for i := 2; i <= maxBin; i++ {
		if a.mag[i] > a.mag[best] {
			best = i
		}
	}

	return best
}

// prepareWindow caches periodic window coefficients of length n.
func (a *Analyzer) prepareWindow(n int) {
	if len(a.window) == n {
		return
	}

	a.window = window.Generate(a.cfg.Window, n, window.WithPeriodic())
	a.lobeNorm = float64(n) / 2 * a.cfg.Window.BinSum()
}

func lobeSum(mag []float64, bin, capture int) float64 {
	lo := max(bin-capture, 0)
	hi := min(bin+capture, len(mag)-1)

	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += mag[i]
	}

	return sum
}

func normalizeConfig(cfg Config) (Config, error) {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return cfg, fmt.Errorf("harmonics sample rate must be > 0 and finite: %f", cfg.SampleRate)
	}

	if cfg.FFTSize == 0 {
		cfg.FFTSize = defaultFFTSize
	}

	if cfg.FFTSize < 2 || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return cfg, fmt.Errorf("harmonics FFT size must be a power of two >= 2: %d", cfg.FFTSize)
	}

	if cfg.Fundamental < 0 || cfg.Fundamental > cfg.SampleRate/2 || math.IsNaN(cfg.Fundamental) {
		return cfg, fmt.Errorf("harmonics fundamental must be in [0, %g]: %f", cfg.SampleRate/2, cfg.Fundamental)
	}

	if cfg.MaxHarmonics <= 0 {
		cfg.MaxHarmonics = defaultMaxHarmonics
	}

	if !cfg.Window.Valid() {
		return cfg, fmt.Errorf("harmonics window is invalid: %d", cfg.Window)
	}

	if cfg.CaptureBins <= 0 {
		cfg.CaptureBins = cfg.Window.MainLobeBins()
	}

	return cfg, nil
}

