package param

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/bruhsine/dsp/core"
	"github.com/cwbudde/bruhsine/dsp/smooth"
)

const defaultDisplayDigits = 2

// Option mutates construction-time parameter settings.
type Option func(*config) error

type config struct {
	unit      string
	formatter Formatter
	parser    Parser
	smoothing smooth.Style
}

// WithUnit sets the unit suffix appended for display, e.g. " dB" or " %".
func WithUnit(unit string) Option {
	return func(cfg *config) error {
		cfg.unit = unit
		return nil
	}
}

// WithFormatter sets the value-to-text conversion.
func WithFormatter(f Formatter) Option {
	return func(cfg *config) error {
		if f == nil {
			return fmt.Errorf("parameter formatter must not be nil")
		}

		cfg.formatter = f

		return nil
	}
}

// WithParser sets the text-to-value conversion.
func WithParser(p Parser) Option {
	return func(cfg *config) error {
		if p == nil {
			return fmt.Errorf("parameter parser must not be nil")
		}

		cfg.parser = p

		return nil
	}
}

// WithSmoothing sets the style used by smoothers built from this parameter.
func WithSmoothing(style smooth.Style) Option {
	return func(cfg *config) error {
		if err := style.Validate(); err != nil {
			return err
		}

		cfg.smoothing = style

		return nil
	}
}

// Parameter is a named, range-bounded, automatable value.
//
// Set and Value may be called from any goroutine. The stored value is the
// unsmoothed target; smoothing happens on the audio side.
type Parameter struct {
	id        string
	name      string
	unit      string
	rng       Range
	def       float64
	formatter Formatter
	parser    Parser
	smoothing smooth.Style

	bits atomic.Uint64
}

// New creates a parameter holding def. def must lie inside rng.
func New(id, name string, def float64, rng Range, opts ...Option) (*Parameter, error) {
	if id == "" {
		return nil, fmt.Errorf("parameter id must not be empty")
	}

	if err := rng.Validate(); err != nil {
		return nil, fmt.Errorf("parameter %s: %w", id, err)
	}

	if !core.IsFinite(def) || def < rng.Min || def > rng.Max {
		return nil, fmt.Errorf("parameter %s: default must be in [%g, %g]: %f", id, rng.Min, rng.Max, def)
	}

	cfg := config{
		formatter: FormatRounded(defaultDisplayDigits),
		smoothing: smooth.None(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("parameter %s: %w", id, err)
		}
	}

	if cfg.parser == nil {
		cfg.parser = ParseNumber(cfg.unit)
	}

	p := &Parameter{
		id:        id,
		name:      name,
		unit:      cfg.unit,
		rng:       rng,
		def:       def,
		formatter: cfg.formatter,
		parser:    cfg.parser,
		smoothing: cfg.smoothing,
	}
	p.bits.Store(math.Float64bits(def))

	return p, nil
}

// ID returns the stable key used for automation and persistence.
func (p *Parameter) ID() string { return p.id }

// Name returns the display name.
func (p *Parameter) Name() string { return p.name }

// Unit returns the display unit suffix.
func (p *Parameter) Unit() string { return p.unit }

// Range returns the value range.
func (p *Parameter) Range() Range { return p.rng }

// Default returns the default value.
func (p *Parameter) Default() float64 { return p.def }

// Smoothing returns the smoothing style for this parameter.
func (p *Parameter) Smoothing() smooth.Style { return p.smoothing }

// Value returns the last stored target value.
func (p *Parameter) Value() float64 {
	return math.Float64frombits(p.bits.Load())
}

// Set clamps v into range, stores it and returns the stored value.
// NaN leaves the current value untouched.
func (p *Parameter) Set(v float64) float64 {
	if math.IsNaN(v) {
		return p.Value()
	}

	v = p.rng.Clamp(v)
	p.bits.Store(math.Float64bits(v))

	return v
}

// NormalizedValue returns the stored value as a 0..1 position.
func (p *Parameter) NormalizedValue() float64 {
	return p.rng.Normalize(p.Value())
}

// SetNormalized stores the value at normalized position pos.
func (p *Parameter) SetNormalized(pos float64) float64 {
	if math.IsNaN(pos) {
		return p.Value()
	}

	return p.Set(p.rng.Unnormalize(pos))
}

// ResetToDefault stores the default value.
func (p *Parameter) ResetToDefault() {
	p.Set(p.def)
}

// Format renders v without unit.
func (p *Parameter) Format(v float64) string {
	return p.formatter(v)
}

// Parse reads text into a plain value without storing it.
func (p *Parameter) Parse(text string) (float64, error) {
	v, err := p.parser(text)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w", p.id, err)
	}

	return v, nil
}

// String renders the current value with its unit, e.g. "-6.02 dB".
func (p *Parameter) String() string {
	return p.Format(p.Value()) + p.unit
}

// NewSmoother returns a smoother resting at the current value, using the
// parameter's smoothing style and range minimum.
func (p *Parameter) NewSmoother() (*smooth.Smoother, error) {
	return smooth.New(p.smoothing, p.Value(), smooth.WithDomainMin(p.rng.Min))
}
