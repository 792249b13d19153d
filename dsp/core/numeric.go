package core

import "math"

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

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Wrap folds x into the half-open range [0, length).
// A value equal to length wraps to 0. Values already in range are returned
// unchanged, so the common case costs two comparisons. Non-finite x or a
// non-positive length yield NaN.
func Wrap(x, length float64) float64 {
	if x >= 0 && x < length {
		return x
	}
	if !(length > 0) || !IsFinite(x) {
		return math.NaN()
	}

	x = math.Mod(x, length)
	if x < 0 {
		x += length
	}
	// x+length can round up to length for tiny negative x.
	if x >= length {
		x = 0
	}
	return x
}
