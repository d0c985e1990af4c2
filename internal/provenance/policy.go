package provenance

import (
	"fmt"
	"math"
)

// Threshold modes.
const (
	// ModeFraction requires a share of the maximum possible score.
	ModeFraction = "fraction"
	// ModeAbsolute requires a fixed number of points.
	ModeAbsolute = "absolute"
)

// DefaultThreshold accepts at 60% of the maximum, 84 of 140 with all four
// rules active.
const DefaultThreshold = 0.6

const thresholdTolerance = 1e-9

// Policy decides how many points the top candidate needs to be accepted.
type Policy struct {
	Mode      string  `json:"mode" yaml:"mode"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

// DefaultPolicy returns the fraction policy at DefaultThreshold.
func DefaultPolicy() Policy {
	return Policy{Mode: ModeFraction, Threshold: DefaultThreshold}
}

// Validate reports unusable policies.
func (p Policy) Validate() error {
	if math.IsNaN(p.Threshold) || math.IsInf(p.Threshold, 0) {
		return fmt.Errorf("threshold must be finite, got %v", p.Threshold)
	}
	switch p.Mode {
	case ModeFraction:
		if p.Threshold <= 0 || p.Threshold > 1 {
			return fmt.Errorf("fraction threshold must be in (0, 1], got %v", p.Threshold)
		}
	case ModeAbsolute:
		if p.Threshold < 0 {
			return fmt.Errorf("absolute threshold must not be negative, got %v", p.Threshold)
		}
		if p.Threshold > 0 && p.Threshold < 1 {
			return fmt.Errorf("absolute threshold %v is below one point; use fraction mode for shares of the maximum", p.Threshold)
		}
	default:
		return fmt.Errorf("unknown threshold mode %q", p.Mode)
	}
	return nil
}

// Required returns the minimum total score accepted out of maxPossible.
// Scores are whole points, so a fractional requirement rounds up.
func (p Policy) Required(maxPossible int) int {
	if p.Mode == ModeAbsolute {
		return int(math.Ceil(p.Threshold - thresholdTolerance))
	}
	return int(math.Ceil(p.Threshold*float64(maxPossible) - thresholdTolerance))
}

func (p Policy) String() string {
	if p.Mode == ModeAbsolute {
		return fmt.Sprintf("absolute %g points", p.Threshold)
	}
	return fmt.Sprintf("fraction %.2f of max", p.Threshold)
}
