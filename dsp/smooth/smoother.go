package smooth

import (
	"fmt"
	"math"
)

// exponentialResidual is the fraction of the initial distance left just
// before the last step of an exponential ramp.
const exponentialResidual = 0.0001

// Option mutates construction-time smoother settings.
type Option func(*config) error

type config struct {
	offset float64
}

// WithDomainMin tells the smoother the smallest value it will ever see.
// For the logarithmic law a minimum <= 0 shifts the interpolation domain to
// v - min + 1, keeping it strictly positive. Strictly positive minimums
// leave the law purely geometric.
func WithDomainMin(min float64) Option {
	return func(cfg *config) error {
		if math.IsNaN(min) || math.IsInf(min, 0) {
			return fmt.Errorf("smoother domain minimum must be finite: %f", min)
		}

		if min > 0 {
			cfg.offset = 0
		} else {
			cfg.offset = 1 - min
		}

		return nil
	}
}

// Smoother produces one interpolated value per frame toward a target.
// It is not safe for concurrent use; it belongs to the audio goroutine.
type Smoother struct {
	style  Style
	offset float64

	current    float64
	target     float64
	start      float64
	step       float64
	stepsLeft  int
	rampLaw    Law
	sampleRate float64
}

// New returns a smoother resting at initial.
func New(style Style, initial float64, opts ...Option) (*Smoother, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}

	if math.IsNaN(initial) || math.IsInf(initial, 0) {
		return nil, fmt.Errorf("smoother initial value must be finite: %f", initial)
	}

	var cfg config

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Smoother{
		style:   style,
		offset:  cfg.offset,
		current: initial,
		target:  initial,
		start:   initial,
		rampLaw: style.Law,
	}, nil
}

// SetTarget arms a ramp from the current value to target, lasting
// Style.Steps(sampleRate) steps. Calling it again with an unchanged target
// and sample rate leaves a running ramp alone, so it can be called at the
// start of every block.
//
// A non-finite target is a caller bug and panics.
func (s *Smoother) SetTarget(target, sampleRate float64) {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		panic(fmt.Sprintf("smooth: non-finite target %v", target))
	}

	if target == s.target && sampleRate == s.sampleRate {
		return
	}

	s.target = target
	s.sampleRate = sampleRate

	steps := s.style.Steps(sampleRate)
	if steps == 0 || s.current == target {
		s.snap(target)
		return
	}

	s.start = s.current
	s.stepsLeft = steps
	s.rampLaw = s.style.Law

	n := float64(steps)

	switch s.rampLaw {
	case LawLogarithmic:
		from := s.current + s.offset
		to := target + s.offset

		if from <= 0 || to <= 0 {
			// Outside the declared domain; geometric interpolation is undefined.
			s.rampLaw = LawLinear
			s.step = (target - s.current) / n

			return
		}

		s.step = mathExp(mathLog(to/from) / n)
	case LawExponential:
		s.step = math.Pow(exponentialResidual, 1/n)
	default:
		s.step = (target - s.current) / n
	}
}

// Next advances one step and returns the new value. Once the ramp is
// exhausted it keeps returning the target.
func (s *Smoother) Next() float64 {
	if s.stepsLeft == 0 {
		return s.current
	}

	s.stepsLeft--
	if s.stepsLeft == 0 {
		s.current = s.target
		return s.current
	}

	switch s.rampLaw {
	case LawLogarithmic:
		s.current = (s.current+s.offset)*s.step - s.offset
	case LawExponential:
		s.current = s.target + (s.current-s.target)*s.step
	default:
		s.current += s.step
	}

	s.current = between(s.current, s.start, s.target)

	return s.current
}

// NextBlock fills dst with consecutive Next values.
func (s *Smoother) NextBlock(dst []float64) {
	if s.stepsLeft == 0 {
		for i := range dst {
			dst[i] = s.current
		}

		return
	}

	for i := range dst {
		dst[i] = s.Next()
	}
}

// Reset drops any running ramp and rests the smoother at value.
func (s *Smoother) Reset(value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		panic(fmt.Sprintf("smooth: non-finite reset value %v", value))
	}

	s.snap(value)
}

// Current returns the most recently produced value.
func (s *Smoother) Current() float64 { return s.current }

// Target returns the value the smoother is heading to.
func (s *Smoother) Target() float64 { return s.target }

// StepsLeft returns the number of Next calls until the target is reached.
func (s *Smoother) StepsLeft() int { return s.stepsLeft }

// IsSmoothing reports whether a ramp is in progress.
func (s *Smoother) IsSmoothing() bool { return s.stepsLeft > 0 }

// Style returns the configured smoothing style.
func (s *Smoother) Style() Style { return s.style }

func (s *Smoother) snap(value float64) {
	s.current = value
	s.target = value
	s.start = value
	s.stepsLeft = 0
}

func between(v, a, b float64) float64 {
	if a > b {
		a, b = b, a
	}

	if v < a {
		return a
	}

	if v > b {
		return b
	}

	return v
}
