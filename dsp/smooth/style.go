package smooth

import (
	"fmt"
	"math"
)

// Law selects how a ramp interpolates between its start and its target.
type Law int

const (
	// LawNone jumps to the target immediately.
	LawNone Law = iota
	// LawLinear adds a constant increment per step.
	LawLinear
	// LawLogarithmic multiplies by a constant ratio per step, i.e. it is
	// linear in log space. Suited to gain-like quantities.
	LawLogarithmic
	// LawExponential closes a constant fraction of the remaining distance
	// per step, reaching 1e-4 of the initial distance on the last step.
	LawExponential
)

func (l Law) String() string {
	switch l {
	case LawNone:
		return "none"
	case LawLinear:
		return "linear"
	case LawLogarithmic:
		return "logarithmic"
	case LawExponential:
		return "exponential"
	default:
		return fmt.Sprintf("Law(%d)", int(l))
	}
}

// Style is a smoothing law plus its ramp time in milliseconds.
type Style struct {
	Law    Law
	TimeMs float64
}

// None returns a style that never ramps.
func None() Style { return Style{Law: LawNone} }

// Linear returns a linear style with the given ramp time.
func Linear(timeMs float64) Style { return Style{Law: LawLinear, TimeMs: timeMs} }

// Logarithmic returns a log-space style with the given ramp time.
func Logarithmic(timeMs float64) Style { return Style{Law: LawLogarithmic, TimeMs: timeMs} }

// Exponential returns a one-pole style with the given ramp time.
func Exponential(timeMs float64) Style { return Style{Law: LawExponential, TimeMs: timeMs} }

// Validate reports whether the style can be used by a Smoother.
func (s Style) Validate() error {
	if s.Law < LawNone || s.Law > LawExponential {
		return fmt.Errorf("smoothing law is invalid: %d", s.Law)
	}

	if s.TimeMs < 0 || math.IsNaN(s.TimeMs) || math.IsInf(s.TimeMs, 0) {
		return fmt.Errorf("smoothing time must be >= 0 and finite: %f", s.TimeMs)
	}

	return nil
}

// Steps returns ceil(TimeMs * sampleRate / 1000), or 0 when the style does
// not ramp or the sample rate is unusable.
func (s Style) Steps(sampleRate float64) int {
	if s.Law == LawNone || s.TimeMs <= 0 || !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return 0
	}

	return int(math.Ceil(s.TimeMs * sampleRate / 1000))
}

func (s Style) String() string {
	if s.Law == LawNone {
		return s.Law.String()
	}

	return fmt.Sprintf("%s(%gms)", s.Law, s.TimeMs)
}
