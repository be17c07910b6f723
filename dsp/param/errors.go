package param

import "errors"

var (
	// ErrInvalidFormat is returned when text entered for a parameter cannot be
	// read as a number in the parameter's unit convention. The prior value is kept.
	ErrInvalidFormat = errors.New("invalid parameter format")

	// ErrNonFiniteValue is returned when NaN or ±Inf is written to the surface.
	// Such values never reach the smoothers.
	ErrNonFiniteValue = errors.New("non-finite parameter value")

	// ErrUnknownParameter is returned for IDs the surface does not hold.
	ErrUnknownParameter = errors.New("unknown parameter")

	errDuplicateParameter = errors.New("duplicate parameter id")
)
