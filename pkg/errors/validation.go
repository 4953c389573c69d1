package errors

import (
	"math"
	"strings"
)

// RequirePositive validates that a count field is at least 1.
// Counts drive divisions in the layout core, so zero is rejected as well.
func RequirePositive(field string, n int) error {
	if n <= 0 {
		return New(ErrCodeInvalidInput, "%s must be positive, got %d", field, n)
	}
	return nil
}

// RequireNonNegative validates that a length in canonical units is usable.
// NaN and infinities are rejected alongside negative values.
func RequireNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", field)
	}
	if v < 0 {
		return New(ErrCodeInvalidInput, "%s must not be negative, got %g", field, v)
	}
	return nil
}

// RequireOneOf validates that value is one of the allowed strings.
func RequireOneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "%s must be one of: %s, got %q", field, strings.Join(allowed, ", "), value)
}

// Overflow reports a derived dimension that went negative after subtracting
// gaps or margins from the available space.
func Overflow(what string, got float64) error {
	return New(ErrCodeGeometryOverflow, "%s is negative (%gcm): gaps or margins exceed the available space", what, got)
}
