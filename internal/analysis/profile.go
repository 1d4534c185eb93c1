package analysis

import "math"

// Reference2p evaluates the textbook 2p orbital radial shape
// x^2 * exp(-x^2) at the given coordinates, used as the comparison
// curve for vortex radial energy profiles.
func Reference2p(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x * x * math.Exp(-x*x)
	}
	return out
}

// Normalize scales a profile so its maximum is 1. An all-zero profile
// is returned unchanged.
func Normalize(profile []float64) []float64 {
	max := 0.0
	for _, v := range profile {
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(profile))
	if max == 0 {
		copy(out, profile)
		return out
	}
	for i, v := range profile {
		out[i] = v / max
	}
	return out
}

// RMSDeviation is the root-mean-square difference of two equal-length
// profiles, typically after Normalize.
func RMSDeviation(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}
