package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/bruhsine/dsp/core"
)

// Formatter renders a plain value for display, without the unit suffix.
type Formatter func(value float64) string

// Parser reads user text back into a plain value. Errors wrap ErrInvalidFormat.
type Parser func(text string) (float64, error)

// FormatRounded renders values with a fixed number of decimals.
func FormatRounded(digits int) Formatter {
	if digits < 0 {
		digits = 0
	}

	scale := math.Pow(10, float64(digits))

	return func(value float64) string {
		v := math.Round(value*scale) / scale
		if v == 0 {
			v = 0 // drop the sign of -0
		}

		return strconv.FormatFloat(v, 'f', digits, 64)
	}
}

// FormatGainToDB renders a linear gain as decibels. Gains at or below the
// silence floor render as "-inf".
func FormatGainToDB(digits int) Formatter {
	rounded := FormatRounded(digits)

	return func(gain float64) string {
		if gain <= core.MinusInfinityGain {
			return "-inf"
		}

		return rounded(core.GainToDB(gain))
	}
}

// ParseGainFromDB reads decibel text into a linear gain. It accepts bare
// numbers, numbers followed by "dB" (any case, optional space), and "-inf".
func ParseGainFromDB() Parser {
	number := ParseNumber("dB")

	return func(text string) (float64, error) {
		trimmed := stripUnit(text, "dB")
		if strings.EqualFold(trimmed, "-inf") || trimmed == "-∞" {
			return 0, nil
		}

		db, err := number(text)
		if err != nil {
			return 0, err
		}

		return core.DBToGain(db), nil
	}
}

// ParseNumber reads a finite number, optionally followed by unit.
func ParseNumber(unit string) Parser {
	return func(text string) (float64, error) {
		trimmed := stripUnit(text, unit)
		if trimmed == "" {
			return 0, fmt.Errorf("%w: empty input", ErrInvalidFormat)
		}

		v, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidFormat, text)
		}

		if !core.IsFinite(v) {
			return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidFormat, text)
		}

		return v, nil
	}
}

func stripUnit(text, unit string) string {
	s := strings.TrimSpace(text)

	u := strings.TrimSpace(unit)
	if u == "" {
		return s
	}

	if len(s) >= len(u) && strings.EqualFold(s[len(s)-len(u):], u) {
		s = strings.TrimSpace(s[:len(s)-len(u)])
	}

	return s
}
