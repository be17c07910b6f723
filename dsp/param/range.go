package param

import (
	"fmt"
	"math"

	"github.com/cwbudde/bruhsine/dsp/core"
)

// Range maps between plain parameter values and normalized 0..1 positions.
//
// A skew Factor below 1 spreads resolution toward the low end of the range;
// Factor 1 is a linear range. The mapping is
//
//	value = Min + (Max-Min) * p^(1/Factor)
//	p     = ((value-Min) / (Max-Min))^Factor
type Range struct {
	Min    float64
	Max    float64
	Factor float64
}

// LinearRange returns an unskewed range.
func LinearRange(min, max float64) Range {
	return Range{Min: min, Max: max, Factor: 1}
}

// SkewedRange returns a range with the given skew factor.
func SkewedRange(min, max, factor float64) Range {
	return Range{Min: min, Max: max, Factor: factor}
}

// GainSkewFactor returns the skew factor that places the gain halfway
// between minDB and maxDB (in dB) at the centre of the normalized range.
func GainSkewFactor(minDB, maxDB float64) float64 {
	minGain := core.DBToGain(minDB)
	maxGain := core.DBToGain(maxDB)
	midGain := core.DBToGain((minDB + maxDB) / 2)

	return math.Log(0.5) / math.Log((midGain-minGain)/(maxGain-minGain))
}

// Validate reports whether the range is usable.
func (r Range) Validate() error {
	if !core.IsFinite(r.Min) || !core.IsFinite(r.Max) {
		return fmt.Errorf("range bounds must be finite: [%f, %f]", r.Min, r.Max)
	}

	if r.Min >= r.Max {
		return fmt.Errorf("range min must be below max: [%g, %g]", r.Min, r.Max)
	}

	if !(r.Factor > 0) || math.IsInf(r.Factor, 0) {
		return fmt.Errorf("range skew factor must be > 0 and finite: %f", r.Factor)
	}

	return nil
}

// Clamp limits v to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	return core.Clamp(v, r.Min, r.Max)
}

// Normalize maps a plain value to its 0..1 position. Out-of-range values are
// clamped first.
func (r Range) Normalize(v float64) float64 {
	p := (r.Clamp(v) - r.Min) / (r.Max - r.Min)
	if r.Factor == 1 {
		return p
	}

	return math.Pow(p, r.Factor)
}

// Unnormalize maps a 0..1 position to a plain value. Positions outside 0..1
// are clamped first.
func (r Range) Unnormalize(p float64) float64 {
	p = core.Clamp(p, 0, 1)
	if r.Factor != 1 {
		p = math.Pow(p, 1/r.Factor)
	}

	return r.Clamp(r.Min + (r.Max-r.Min)*p)
}

func (r Range) String() string {
	if r.Factor == 1 {
		return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
	}

	return fmt.Sprintf("[%g, %g] skew %g", r.Min, r.Max, r.Factor)
}
