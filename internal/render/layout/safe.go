package layout

import "math"

// The PDF backend faults hard when handed NaN or infinite coordinates, so
// every geometry value leaving this package goes through these guards
// instead of ad hoc clamps at each call site.

// SafeNum returns v unless it is NaN or infinite, in which case the fallback
// is returned.
func SafeNum(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// SafePositive returns v unless it is NaN, infinite, or non-positive.
func SafePositive(v, fallback float64) float64 {
	v = SafeNum(v, fallback)
	if v <= 0 {
		return fallback
	}
	return v
}
