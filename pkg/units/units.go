// Package units converts warehouse lengths into the canonical unit (centimeters).
//
// Configuration documents carry lengths as a value plus a unit tag ("m", "ft", ...).
// Everything downstream of the config boundary works in centimeters only.
//
// Two modes exist for input the converter cannot interpret:
//
//	Strict:     unknown units and non-numeric values are INVALID_* errors
//	Permissive: unknown units scale by 1, non-numeric values become 0
//
// Missing (nil) values convert to 0 in both modes.
package units

import (
	"math"
	"strconv"
	"strings"

	errs "github.com/matzehuels/racklayout/pkg/errors"
)

// Unit constants.
const (
	MM = "mm"
	CM = "cm"
	M  = "m"
	KM = "km"
	IN = "in"
	FT = "ft"
	YD = "yd"
)

// Canonical is the unit every converted length is expressed in.
const Canonical = CM

// ValidUnits contains all recognized unit tags.
var ValidUnits = []string{MM, CM, M, KM, IN, FT, YD}

// scale maps a unit tag to its centimeter equivalent.
var scale = map[string]float64{
	MM: 0.1,
	CM: 1,
	M:  100,
	KM: 100000,
	IN: 2.54,
	FT: 30.48,
	YD: 91.44,
}

// Mode selects how the converter treats input it cannot interpret.
type Mode int

const (
	// Strict rejects unknown units and non-numeric values.
	Strict Mode = iota
	// Permissive falls back to a scale of 1 and a value of 0.
	Permissive
)

// String returns the mode name used in flags and cache keys.
func (m Mode) String() string {
	if m == Permissive {
		return "permissive"
	}
	return "strict"
}

// ParseMode parses a mode name. The empty string selects Strict.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return Strict, nil
	case "permissive", "lenient":
		return Permissive, nil
	}
	return Strict, errs.New(errs.ErrCodeInvalidInput, "invalid mode %q (must be one of: strict, permissive)", s)
}

// normalize lowercases and trims a unit tag.
func normalize(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

// IsValid checks if the given unit tag is recognized (case-insensitive).
func IsValid(unit string) bool {
	_, ok := scale[normalize(unit)]
	return ok
}

// ValidUnitsString returns a comma-separated list of units for error messages.
func ValidUnitsString() string {
	return strings.Join(ValidUnits, ", ")
}

// ScaleFactor returns the centimeter equivalent of one unit.
// The boolean is false for unrecognized units, in which case the factor is 1.
func ScaleFactor(unit string) (float64, bool) {
	f, ok := scale[normalize(unit)]
	if !ok {
		return 1, false
	}
	return f, true
}

// ToCanonical converts value, expressed in unit, to centimeters.
//
// value may be nil, any Go integer or float type, or a numeric string
// (surrounding whitespace is ignored).
func ToCanonical(value any, unit string, mode Mode) (float64, error) {
	if value == nil {
		return 0, nil
	}

	f, ok := ScaleFactor(unit)
	if !ok && mode == Strict {
		return 0, errs.New(errs.ErrCodeInvalidUnit, "unknown unit %q (must be one of: %s)", unit, ValidUnitsString())
	}

	n, ok := toFloat(value)
	if !ok {
		if mode == Strict {
			return 0, errs.New(errs.ErrCodeInvalidInput, "non-numeric value %v", value)
		}
		return 0, nil
	}
	return n * f, nil
}

// toFloat coerces the supported numeric representations to float64.
// Strings that parse to NaN or infinity are treated as non-numeric.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case interface{ Float64() (float64, error) }:
		// json.Number
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
