package dataprocessing

import (
	"math"
	"strconv"
	"strings"
)

// Value is a numeric observation that may be missing
type Value struct {
	Float float64
	Valid bool
}

// Known wraps an observed number
func Known(f float64) Value {
	return Value{Float: f, Valid: true}
}

// Missing returns the missing value
func Missing() Value {
	return Value{}
}

// String formats the value for output; missing values are empty
func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float, 'f', -1, 64)
}

// missingMarkers are cell contents exporters use for "no observation"
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	".":    true,
	"-":    true,
}

var numberCleaner = strings.NewReplacer(",", "", "$", "", "%", "")

// ParseValue reads a raw cell into a Value. Thousands separators, currency and
// percent signs are stripped. Cells that are not numeric fail with *ValueFormatError.
func ParseValue(column, raw string) (Value, error) {
	s := strings.TrimSpace(raw)
	if missingMarkers[strings.ToLower(s)] {
		return Missing(), nil
	}

	cleaned := strings.TrimSpace(numberCleaner.Replace(s))
	if !isDecimal(cleaned) {
		return Missing(), &ValueFormatError{Column: column, Value: raw}
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(f, 0) {
		return Missing(), &ValueFormatError{Column: column, Value: raw}
	}
	return Known(f), nil
}

// isDecimal accepts plain decimal notation with an optional exponent.
// ParseFloat also reads Inf, hex floats and underscores, none of which a data export means.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '+', r == '-', r == 'e', r == 'E':
		default:
			return false
		}
	}
	return true
}
