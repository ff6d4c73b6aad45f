// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"
)

// RoundUnit rounds a value to the nearest whole currency unit with halves
// going toward positive infinity, so -2.5 becomes -2 and 2.5 becomes 3.
func RoundUnit(val float64) float64 {
	return math.Floor(val + 0.5)
}

// IsWhole reports whether a value has no fractional part.
func IsWhole(val float64) bool {
	return val == math.Trunc(val)
}

// IsFinite reports whether a value is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}
