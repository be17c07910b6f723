package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/bruhsine/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with
// signal-specific options.
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
func (g *Generator) Config() core.ProcessorConfig { return g.cfg }

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// SetSeed replaces the noise seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// Oscillator returns a phase-continuous sine source starting at phase 0.
func (g *Generator) Oscillator(freqHz, amplitude float64) (*Oscillator, error) {
	if !core.IsFinite(freqHz) || freqHz < 0 || freqHz > g.cfg.SampleRate/2 {
		return nil, fmt.Errorf("sine frequency must be in [0, %g]: %f", g.cfg.SampleRate/2, freqHz)
	}

	if !core.IsFinite(amplitude) {
		return nil, fmt.Errorf("sine amplitude must be finite: %f", amplitude)
	}

	return &Oscillator{
		step: 2 * math.Pi * freqHz / g.cfg.SampleRate,
		amp:  amplitude,
	}, nil
}

// Sine generates samples of a sine wave starting at phase 0.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}

	osc, err := g.Oscillator(freqHz, amplitude)
	if err != nil {
		return nil, err
	}

	out := make([]float64, samples)
	osc.Fill(out)

	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude).
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

// Oscillator is a sine source that keeps its phase across Fill calls. It is
// not safe for concurrent use.
type Oscillator struct {
	step  float64
	amp   float64
	phase float64
}

// Fill writes the next len(dst) samples. Splitting a run into several Fill
// calls yields the same samples as one call.
func (o *Oscillator) Fill(dst []float64) {
	for i := range dst {
		dst[i] = o.amp * math.Sin(o.phase)

		o.phase += o.step
		if o.phase >= 2*math.Pi {
			o.phase -= 2 * math.Pi
		}
	}
}

// Phase returns the current phase in radians, in [0, 2π).
func (o *Oscillator) Phase() float64 { return o.phase }

// Reset rewinds the phase to 0.
func (o *Oscillator) Reset() { o.phase = 0 }
