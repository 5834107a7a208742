// Package stagger splits one overall progress value into n sub-progress
// values that activate one after another, each sweeping [0,1] inside its own
// 1/n wide window of the overall value.
package stagger

import "math"

// ClampedRemainder returns how far scale has moved past the start of part i
// of n, floored at zero.
func ClampedRemainder(scale float64, i, n int) float64 {
	return math.Max(0, scale-float64(i)/float64(n))
}

// Part returns the normalized progress of part i of n for the overall scale.
// Part i stays at 0 until scale exceeds i/n and reaches 1 once scale is at
// least (i+1)/n.
func Part(scale float64, i, n int) float64 {
	if n < 1 {
		return 0
	}
	w := 1 / float64(n)
	return math.Min(w, ClampedRemainder(scale, i, n)) * float64(n)
}

// Parts returns every part of n in index order.
func Parts(scale float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = Part(scale, i, n)
	}
	return out
}
