package util

import (
	"math"
	"strconv"
	"strings"
)

// ParseInt parses s as a base-10 integer, returning 0 on any failure.
// Decimal input is truncated toward zero.
func ParseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int64(f)
	}
	return 0
}

// ParseFloat parses s as a float, returning 0 on any failure. NaN and Inf
// inputs also normalize to 0 so they never reach a persisted record.
func ParseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// FormatFloat renders a float for form display without exponent notation.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
