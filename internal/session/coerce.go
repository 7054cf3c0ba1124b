package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Coercion turns raw form text into typed request fields. Required fields
// reject blanks; optional fields map blanks to nil.

// RequiredInt parses a required whole number.
func RequiredInt(label, raw string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("%s is required", label)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", label)
	}
	return n, nil
}

// RequiredNonNegativeInt parses a required whole number >= 0.
func RequiredNonNegativeInt(label, raw string) (int, error) {
	n, err := RequiredInt(label, raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative", label)
	}
	return n, nil
}

// RequiredPositiveInt parses a required whole number >= 1.
func RequiredPositiveInt(label, raw string) (int, error) {
	n, err := RequiredInt(label, raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("%s must be at least 1", label)
	}
	return n, nil
}

// PositiveIntOrDefault parses a whole number >= 1, substituting def when
// blank.
func PositiveIntOrDefault(label, raw string, def int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	return RequiredPositiveInt(label, raw)
}

// RequiredFloat parses a required decimal number.
func RequiredFloat(label, raw string) (float64, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("%s is required", label)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", label)
	}
	return f, nil
}

// OptionalFloat parses a decimal number, mapping blank to nil.
func OptionalFloat(label, raw string) (*float64, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", label)
	}
	return &f, nil
}

// OptionalInt parses a whole number, mapping blank to nil.
func OptionalInt(label, raw string) (*int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be a whole number", label)
	}
	return &n, nil
}

// OptionalString trims the input and maps blank to nil.
func OptionalString(raw string) *string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	return &v
}

// RequiredDate parses a required ISO date and returns it normalized.
func RequiredDate(label, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		return "", fmt.Errorf("%s must be a date like 2006-01-02", label)
	}
	return d.Format("2006-01-02"), nil
}
