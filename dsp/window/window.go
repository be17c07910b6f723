// Package window generates the analysis windows used by the measurement
// tools.
package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

// The zero value is TypeHann.
const (
	TypeHann Type = iota
	TypeRectangular
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris4Term
	TypeFlatTop
)

var (
	hannCoeffs            = []float64{0.5, -0.5}
	hammingCoeffs         = []float64{0.54, -0.46}
	blackmanCoeffs        = []float64{0.42, -0.5, 0.08}
	blackmanHarris4Coeffs = []float64{0.35875, -0.48829, 0.14128, -0.01168}
	flatTopCoeffs         = []float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368}
)

var names = map[Type]string{
	TypeRectangular:         "rectangular",
	TypeHann:                "hann",
	TypeHamming:             "hamming",
	TypeBlackman:            "blackman",
	TypeBlackmanHarris4Term: "blackman-harris",
	TypeFlatTop:             "flat-top",
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// Types lists the supported windows.
func Types() []Type {
	return []Type{TypeHann, TypeRectangular, TypeHamming, TypeBlackman, TypeBlackmanHarris4Term, TypeFlatTop}
}

// Parse returns the window named name (case-insensitive).
func Parse(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range names {
		if n == name {
			return t, nil
		}
	}

	return 0, fmt.Errorf("unknown window %q", name)
}

// MainLobeBins is the distance in bins from the peak of a bin-centred
// sinusoid to the first spectral zero.
func (t Type) MainLobeBins() int {
	switch t {
	case TypeRectangular:
		return 1
	case TypeHann, TypeHamming:
		return 2
	case TypeBlackman:
		return 3
	case TypeBlackmanHarris4Term:
		return 4
	case TypeFlatTop:
		return 5
	default:
		return 2
	}
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic (FFT framing) form instead of the
// symmetric one.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	coeffs := cosineTerms(t)
	out := make([]float64, length)

	for i := range out {
		out[i] = cosineSum(samplePosition(i, length, cfg.periodic), coeffs)
	}

	return out
}

// Apply multiplies buf in place by coeffs. Both must have the same length.
func Apply(buf, coeffs []float64) error {
	if len(buf) != len(coeffs) {
		return fmt.Errorf("window length %d does not match buffer length %d", len(coeffs), len(buf))
	}

	vecmath.MulBlockInPlace(buf, coeffs)

	return nil
}

// BinSum is the summed magnitude, in units of n/2, that a bin-centred unit
// sinusoid spreads over the main lobe of an n-point periodic window.
func (t Type) BinSum() float64 {
	sum := 0.0
	for _, c := range cosineTerms(t) {
		sum += math.Abs(c)
	}

	return sum
}

// Valid reports whether t is a supported window.
func (t Type) Valid() bool {
	_, ok := names[t]
	return ok
}

func cosineTerms(t Type) []float64 {
	switch t {
	case TypeHann:
		return hannCoeffs
	case TypeHamming:
		return hammingCoeffs
	case TypeBlackman:
		return blackmanCoeffs
	case TypeBlackmanHarris4Term:
		return blackmanHarris4Coeffs
	case TypeFlatTop:
		return flatTopCoeffs
	default:
		return []float64{1}
	}
}

func cosineSum(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
