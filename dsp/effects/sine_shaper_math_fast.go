//go:build fastmath

package effects

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// mathPow computes x^y for x >= 0 as exp(y*ln x) using fast approximations.
// 0^0 is 1, x^1 is x and 0^y is 0 for y > 0, matching math.Pow exactly at
// the exponents the default parameters use.
func mathPow(x, y float64) float64 {
	switch y {
	case 0:
		return 1
	case 1:
		return x
	}

	if x <= 0 {
		return 0
	}

	return approx.FastExp(y * approx.FastLog(x))
}

// mathSin uses the standard library; the argument never exceeds the
// accumulator ceiling, so range reduction is cheap.
func mathSin(x float64) float64 { return math.Sin(x) }
