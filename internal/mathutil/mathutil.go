// Package mathutil has the small numeric helpers shared by the town packages.
package mathutil

import "math"

// Clamp01 limits a progress fraction to [0, 1]. NaN counts as 0.
func Clamp01(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// RandomIntRange returns an int in [lo, hi] drawn from intn, which is usually rand.Intn.
func RandomIntRange(intn func(int) int, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + intn(hi-lo+1)
}
