package plugin

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/bruhsine/dsp/buffer"
	"github.com/cwbudde/bruhsine/dsp/core"
	"github.com/cwbudde/bruhsine/dsp/effects"
	"github.com/cwbudde/bruhsine/dsp/param"
	"github.com/cwbudde/bruhsine/dsp/smooth"
)

// Status is the result of processing one block.
type Status int

const (
	// StatusNormal means the block was processed.
	StatusNormal Status = iota
	// StatusError means the block geometry or sample rate was unusable and
	// the block was left untouched.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Option mutates construction-time plugin settings.
type Option func(*config) error

type config struct {
	wrapMode effects.SineShaperWrapMode
}

// WithWrapMode selects the shaper's accumulator wrap policy.
func WithWrapMode(mode effects.SineShaperWrapMode) Option {
	return func(cfg *config) error {
		if mode != effects.SineShaperWrapReset && mode != effects.SineShaperWrapModulo {
			return fmt.Errorf("plugin wrap mode is invalid: %d", mode)
		}

		cfg.wrapMode = mode

		return nil
	}
}

// Plugin is one effect instance.
type Plugin struct {
	params *Params
	shaper *effects.SineShaper

	gain      *smooth.Smoother
	increment *smooth.Smoother
	factor    *smooth.Smoother
	mix       *smooth.Smoother

	sampleRate float64
	channels   int
	blockSize  int

	gainBuf   []float64
	incBuf    []float64
	factorBuf []float64
	mixBuf    []float64
	weights   []float64

	resetPending atomic.Bool
}

// New creates an instance for the given stream geometry. cfg.BlockSize bounds
// the scratch space prepared for the audio path; larger blocks are processed
// in chunks.
func New(cfg core.ProcessorConfig, opts ...Option) (*Plugin, error) {
	if !validSampleRate(cfg.SampleRate) {
		return nil, fmt.Errorf("plugin sample rate must be > 0 and finite: %f", cfg.SampleRate)
	}

	if cfg.BlockSize <= 0 {
		return nil, fmt.Errorf("plugin block size must be > 0: %d", cfg.BlockSize)
	}

	if cfg.Channels <= 0 {
		return nil, fmt.Errorf("plugin channel count must be > 0: %d", cfg.Channels)
	}

	pc := config{wrapMode: effects.SineShaperWrapReset}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&pc); err != nil {
			return nil, err
		}
	}

	params, err := NewParams()
	if err != nil {
		return nil, err
	}

	shaper, err := effects.NewSineShaper(effects.WithSineShaperWrapMode(pc.wrapMode))
	if err != nil {
		return nil, err
	}

	p := &Plugin{
		params:     params,
		shaper:     shaper,
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
		blockSize:  cfg.BlockSize,
		gainBuf:    make([]float64, cfg.BlockSize),
		incBuf:     make([]float64, cfg.BlockSize),
		factorBuf:  make([]float64, cfg.BlockSize),
		mixBuf:     make([]float64, cfg.BlockSize),
		weights:    make([]float64, cfg.BlockSize),
	}

	smoothers := []struct {
		dst **smooth.Smoother
		src *param.Parameter
	}{
		{&p.gain, params.Output},
		{&p.increment, params.Increment},
		{&p.factor, params.Factor},
		{&p.mix, params.Mix},
	}

	for _, s := range smoothers {
		sm, err := s.src.NewSmoother()
		if err != nil {
			return nil, fmt.Errorf("plugin: %s smoother: %w", s.src.ID(), err)
		}

		*s.dst = sm
	}

	return p, nil
}

// Params returns the surface editors and automation write to.
func (p *Plugin) Params() *param.Surface { return p.params.Surface() }

// Parameters returns typed handles to the parameters.
func (p *Plugin) Parameters() *Params { return p.params }

// SampleRate returns the rate the smoothers are currently derived for.
func (p *Plugin) SampleRate() float64 { return p.sampleRate }

// Channels returns the configured channel count.
func (p *Plugin) Channels() int { return p.channels }

// Accumulator returns the shaper's accumulator, for inspection.
func (p *Plugin) Accumulator() float64 { return p.shaper.Accumulator() }

// SetSampleRate switches to a new sample rate. Running ramps restart from
// their current value with step counts derived for the new rate.
func (p *Plugin) SetSampleRate(sampleRate float64) error {
	if !validSampleRate(sampleRate) {
		return fmt.Errorf("plugin sample rate must be > 0 and finite: %f", sampleRate)
	}

	p.sampleRate = sampleRate
	p.updateTargets()

	return nil
}

// Reset handles a stream discontinuity: the accumulator returns to 0 and the
// smoothers jump to their targets instead of gliding from stale values.
// It must not run concurrently with Process; use RequestReset from other
// goroutines.
func (p *Plugin) Reset() {
	p.shaper.Reset()
	p.gain.Reset(p.params.Output.Value())
	p.increment.Reset(p.params.Increment.Value())
	p.factor.Reset(p.params.Factor.Value())
	p.mix.Reset(p.params.Mix.Value())
}

// RequestReset asks for a Reset at the start of the next block. Safe to call
// from any goroutine.
func (p *Plugin) RequestReset() {
	p.resetPending.Store(true)
}

// Process transforms a planar block in place: block[c][i] is sample i of
// channel c. Frames are processed in index order with one set of smoothed
// coefficients per frame.
func (p *Plugin) Process(block [][]float64, sampleRate float64) Status {
	frames, err := buffer.FrameCount(block)
	if err != nil || !validSampleRate(sampleRate) {
		return StatusError
	}

	p.beginBlock(sampleRate)

	for offset := 0; offset < frames; offset += p.blockSize {
		n := min(p.blockSize, frames-offset)

		p.renderWeights(n)

		for _, ch := range block {
			vecmath.MulBlockInPlace(ch[offset:offset+n], p.weights[:n])
		}
	}

	return StatusNormal
}

// ProcessInterleaved transforms an interleaved block in place: buf holds
// frames of channels samples each.
func (p *Plugin) ProcessInterleaved(buf []float64, channels int, sampleRate float64) Status {
	if channels <= 0 || len(buf)%channels != 0 || !validSampleRate(sampleRate) {
		return StatusError
	}

	p.beginBlock(sampleRate)

	for i := 0; i < len(buf); i += channels {
		p.shaper.ProcessFrame(buf[i:i+channels], effects.FrameParams{
			Gain:      p.gain.Next(),
			Increment: p.increment.Next(),
			Factor:    p.factor.Next(),
			Mix:       p.mix.Next() / 100,
		})
	}

	return StatusNormal
}

func (p *Plugin) beginBlock(sampleRate float64) {
	if p.resetPending.Swap(false) {
		p.Reset()
	}

	p.sampleRate = sampleRate
	p.updateTargets()
}

func (p *Plugin) updateTargets() {
	p.gain.SetTarget(p.params.Output.Value(), p.sampleRate)
	p.increment.SetTarget(p.params.Increment.Value(), p.sampleRate)
	p.factor.SetTarget(p.params.Factor.Value(), p.sampleRate)
	p.mix.SetTarget(p.params.Mix.Value(), p.sampleRate)
}

func (p *Plugin) renderWeights(n int) {
	gain := p.gainBuf[:n]
	inc := p.incBuf[:n]
	factor := p.factorBuf[:n]
	mix := p.mixBuf[:n]

	p.gain.NextBlock(gain)
	p.increment.NextBlock(inc)
	p.factor.NextBlock(factor)
	p.mix.NextBlock(mix)

	for i := range mix {
		mix[i] /= 100
	}

	p.shaper.RenderWeights(p.weights[:n], gain, inc, factor, mix)
}

func validSampleRate(sampleRate float64) bool {
	return sampleRate > 0 && !math.IsInf(sampleRate, 0)
}
