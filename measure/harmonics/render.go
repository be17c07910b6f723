package harmonics

import (
	"fmt"

	"github.com/cwbudde/bruhsine/dsp/core"
	"github.com/cwbudde/bruhsine/dsp/plugin"
	"github.com/cwbudde/bruhsine/dsp/signal"
)

// Probe describes the test tone fed through the effect.
type Probe struct {
	Frequency float64
	Amplitude float64
}

// RenderEffect renders frames of a sine probe through a fresh stereo effect
// instance configured with values (keyed by parameter ID) and returns the
// left channel. The instance is reset after the values are applied, so no
// smoothing ramp colours the output.
func RenderEffect(values map[string]float64, probe Probe, sampleRate float64, frames int) ([]float64, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("harmonics frame count must be > 0: %d", frames)
	}

	p, err := plugin.New(core.ProcessorConfig{
		SampleRate: sampleRate,
		BlockSize:  core.DefaultProcessorConfig().BlockSize,
		Channels:   2,
	})
	if err != nil {
		return nil, err
	}

	if err := p.Params().Restore(values); err != nil {
		return nil, err
	}

	p.Reset()

	left, err := signal.NewGenerator(core.WithSampleRate(sampleRate)).Sine(probe.Frequency, probe.Amplitude, frames)
	if err != nil {
		return nil, fmt.Errorf("harmonics probe: %w", err)
	}

	right := append([]float64(nil), left...)

	if st := p.Process([][]float64{left, right}, sampleRate); st != plugin.StatusNormal {
		return nil, fmt.Errorf("harmonics: effect returned %v", st)
	}

	return left, nil
}

// MeasureEffect renders the probe through the effect and analyzes the
// result. cfg.Fundamental defaults to the probe frequency.
func MeasureEffect(values map[string]float64, probe Probe, cfg Config) (Result, error) {
	if cfg.Fundamental == 0 {
		cfg.Fundamental = probe.Frequency
	}

	a, err := NewAnalyzer(cfg)
	if err != nil {
		return Result{}, err
	}

	out, err := RenderEffect(values, probe, a.cfg.SampleRate, a.cfg.FFTSize)
	if err != nil {
		return Result{}, err
	}

	return a.Analyze(out)
}
