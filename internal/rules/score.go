package rules

import "math"

// scoreTolerance absorbs floating point error so a value that should be
// exactly 1 still maps to the full maximum.
const scoreTolerance = 1e-9

// scaleScore maps v in [0, 1] onto [0, maxScore], rounding down.
func scaleScore(v float64, maxScore int) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return clampScore(int(math.Floor(v*float64(maxScore)+scoreTolerance)), maxScore)
}

func clampScore(score, maxScore int) int {
	return max(0, min(score, maxScore))
}

// ratio returns min(a, b) / max(a, b), or 0 when either value is not positive.
func ratio(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	return min(a, b) / max(a, b)
}
