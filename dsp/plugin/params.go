package plugin

import (
	"github.com/cwbudde/bruhsine/dsp/core"
	"github.com/cwbudde/bruhsine/dsp/param"
	"github.com/cwbudde/bruhsine/dsp/smooth"
)

// Parameter IDs. They are stable across versions and used as persistence keys.
const (
	ParamIncrement = "increment"
	ParamFactor    = "factor"
	ParamMix       = "mix"
	ParamOutput    = "output"
)

const (
	outputMinDB     = -30.0
	outputMaxDB     = 30.0
	smoothingTimeMs = 50.0
	displayDigits   = 2
	defaultSkew     = 0.5
)

// Params holds typed handles to the effect's parameters and the surface
// they are published on.
type Params struct {
	Increment *param.Parameter
	Factor    *param.Parameter
	Mix       *param.Parameter
	Output    *param.Parameter

	surface *param.Surface
}

// NewParams creates the parameter set at default values.
func NewParams() (*Params, error) {
	style := smooth.Logarithmic(smoothingTimeMs)
	rounded := param.WithFormatter(param.FormatRounded(displayDigits))

	increment, err := param.New(ParamIncrement, "Increment", 1,
		param.SkewedRange(0.01, 1, defaultSkew),
		param.WithSmoothing(style), rounded)
	if err != nil {
		return nil, err
	}

	factor, err := param.New(ParamFactor, "Factor", 1,
		param.SkewedRange(0, 1, defaultSkew),
		param.WithSmoothing(style), rounded)
	if err != nil {
		return nil, err
	}

	mix, err := param.New(ParamMix, "Mix", 100,
		param.SkewedRange(0, 100, defaultSkew),
		param.WithSmoothing(style), param.WithUnit(" %"), rounded)
	if err != nil {
		return nil, err
	}

	output, err := param.New(ParamOutput, "Output", core.DBToGain(0),
		param.SkewedRange(core.DBToGain(outputMinDB), core.DBToGain(outputMaxDB),
			param.GainSkewFactor(outputMinDB, outputMaxDB)),
		param.WithSmoothing(style),
		param.WithUnit(" dB"),
		param.WithFormatter(param.FormatGainToDB(displayDigits)),
		param.WithParser(param.ParseGainFromDB()))
	if err != nil {
		return nil, err
	}

	surface, err := param.NewSurface(increment, factor, mix, output)
	if err != nil {
		return nil, err
	}

	return &Params{
		Increment: increment,
		Factor:    factor,
		Mix:       mix,
		Output:    output,
		surface:   surface,
	}, nil
}

// Surface returns the shared parameter surface.
func (p *Params) Surface() *param.Surface { return p.surface }
