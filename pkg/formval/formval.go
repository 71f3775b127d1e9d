// Package formval parses lenient form/JSON string fields into typed values.
// Two distinct empty-string policies exist in this system and must not be
// unified: patient numeric fields store NULL when absent, while medication
// stock and price coerce the empty string to zero.
package formval

import (
	"strconv"
	"strings"
)

// OptionalInt parses s into an int pointer. Empty input yields nil (stored
// as NULL), not zero.
func OptionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// OptionalFloat parses s into a float64 pointer. Empty input yields nil.
func OptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// IntOrZero parses s into an int, coercing the empty string to 0.
func IntOrZero(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// FloatOrZero parses s into a float64, coercing the empty string to 0.0.
func FloatOrZero(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
