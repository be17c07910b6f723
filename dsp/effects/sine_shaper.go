package effects

import (
	"fmt"
	"math"
)

// SineShaperCeiling is the accumulator value above which it wraps.
const SineShaperCeiling = 10.0

// SineShaperWrapMode selects what happens when the accumulator passes
// SineShaperCeiling.
type SineShaperWrapMode int

const (
	// SineShaperWrapReset jumps the accumulator back to exactly 0. The
	// resulting discontinuity in the drive term is part of the effect's sound.
	SineShaperWrapReset SineShaperWrapMode = iota
	// SineShaperWrapModulo subtracts the ceiling, keeping the accumulator
	// phase-continuous across the wrap.
	SineShaperWrapModulo
)

// SineShaperOption mutates construction-time parameters.
type SineShaperOption func(*sineShaperConfig) error

type sineShaperConfig struct {
	wrapMode SineShaperWrapMode
}

func defaultSineShaperConfig() sineShaperConfig {
	return sineShaperConfig{wrapMode: SineShaperWrapReset}
}

// WithSineShaperWrapMode selects the accumulator wrap policy.
func WithSineShaperWrapMode(mode SineShaperWrapMode) SineShaperOption {
	return func(cfg *sineShaperConfig) error {
		if !validSineShaperWrapMode(mode) {
			return fmt.Errorf("sine shaper wrap mode is invalid: %d", mode)
		}

		cfg.wrapMode = mode

		return nil
	}
}

// FrameParams is the coefficient set applied to one frame.
// Mix is the wet fraction in [0, 1]; Gain is linear.
type FrameParams struct {
	Gain      float64
	Increment float64
	Factor    float64
	Mix       float64
}

// SineShaper multiplies the input by sin(acc^factor), where acc is an
// accumulator advanced by Increment once per frame and wrapped above
// SineShaperCeiling. The shaped signal is blended with the dry input and
// scaled by Gain:
//
//	out = (s*(1-mix) + s*sin(acc^factor)*mix) * gain
//
// Factor and Increment are expected to be non-negative; the accumulator is
// never negative, so fractional exponents are always defined.
type SineShaper struct {
	acc      float64
	wrapMode SineShaperWrapMode
}

// NewSineShaper creates a sine shaper with its accumulator at 0.
func NewSineShaper(opts ...SineShaperOption) (*SineShaper, error) {
	cfg := defaultSineShaperConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	return &SineShaper{wrapMode: cfg.wrapMode}, nil
}

// SetWrapMode changes the accumulator wrap policy.
func (s *SineShaper) SetWrapMode(mode SineShaperWrapMode) error {
	if !validSineShaperWrapMode(mode) {
		return fmt.Errorf("sine shaper wrap mode is invalid: %d", mode)
	}

	s.wrapMode = mode

	return nil
}

// WrapMode returns the accumulator wrap policy.
func (s *SineShaper) WrapMode() SineShaperWrapMode { return s.wrapMode }

// Accumulator returns the current accumulator value.
func (s *SineShaper) Accumulator() float64 { return s.acc }

// Reset returns the accumulator to 0, as after a transport discontinuity.
func (s *SineShaper) Reset() {
	s.acc = 0
}

// Drive returns sin(acc^factor) for the current accumulator.
// factor 0 gives sin(1) for every accumulator value, including 0.
func (s *SineShaper) Drive(factor float64) float64 {
	return mathSin(mathPow(s.acc, factor))
}

// Advance moves the accumulator forward by increment and applies the wrap policy.
func (s *SineShaper) Advance(increment float64) {
	s.acc += increment
	if s.acc <= SineShaperCeiling {
		return
	}

	switch s.wrapMode {
	case SineShaperWrapModulo:
		s.acc = math.Mod(s.acc, SineShaperCeiling)
	default:
		s.acc = 0
	}
}

// ProcessFrame transforms one frame (one sample per channel) in place and
// advances the accumulator once.
func (s *SineShaper) ProcessFrame(frame []float64, p FrameParams) {
	drive := s.Drive(p.Factor)

	for i, x := range frame {
		shaped := x * drive
		mixed := x*(1-p.Mix) + shaped*p.Mix
		frame[i] = mixed * p.Gain
	}

	s.Advance(p.Increment)
}

// ProcessInPlace treats buf as a mono signal and processes it with fixed
// coefficients, one frame per sample.
func (s *SineShaper) ProcessInPlace(buf []float64, p FrameParams) {
	for i := range buf {
		s.ProcessFrame(buf[i:i+1], p)
	}
}

// RenderWeights computes, for each frame i, the factor w[i] such that
// out = in * w[i] for every channel of that frame:
//
//	w = ((1-mix) + sin(acc^factor)*mix) * gain
//
// and advances the accumulator once per frame. All slices must be at least
// len(dst) long. Multiplying each channel by dst gives the same result as
// ProcessFrame up to rounding, with the transcendental work done once per
// frame instead of once per sample.
func (s *SineShaper) RenderWeights(dst, gain, increment, factor, mix []float64) {
	n := len(dst)
	gain = gain[:n]
	increment = increment[:n]
	factor = factor[:n]
	mix = mix[:n]

	for i := range dst {
		drive := s.Drive(factor[i])
		dst[i] = ((1 - mix[i]) + drive*mix[i]) * gain[i]
		s.Advance(increment[i])
	}
}

func validSineShaperWrapMode(mode SineShaperWrapMode) bool {
	return mode == SineShaperWrapReset || mode == SineShaperWrapModulo
}
