package core

import "math"

const (
	defaultEpsilon = 1e-12

	// MinusInfinityDB is the level at and below which gain is treated as silence.
	MinusInfinityDB = -100.0
	// MinusInfinityGain is the linear gain matching MinusInfinityDB.
	MinusInfinityGain = 1e-5
)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// DBToGain is DBToLinear with a silence floor: levels at or below
// MinusInfinityDB map to exactly 0.
func DBToGain(db float64) float64 {
	if db <= MinusInfinityDB {
		return 0
	}

	return DBToLinear(db)
}

// GainToDB is LinearToDB with the gain clamped to MinusInfinityGain, so the
// result is always finite.
func GainToDB(gain float64) float64 {
	return LinearToDB(math.Max(gain, MinusInfinityGain))
}
