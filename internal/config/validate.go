package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateTuning(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMatching() error {
	if len(c.Matching.Rules) == 0 {
		return errors.New("matching.rules must include at least one rule")
	}
	known := []string{RuleMetadata, RuleHistogram, RuleTemplate, RuleKeypoint}
	for _, rule := range c.Matching.Rules {
		if !slices.Contains(known, rule) {
			return fmt.Errorf("matching.rules: unknown rule %q (known: %v)", rule, known)
		}
	}
	if math.IsNaN(c.Matching.Threshold) || math.IsInf(c.Matching.Threshold, 0) {
		return errors.New("matching.threshold must be a finite number")
	}
	switch c.Matching.ThresholdMode {
	case ThresholdFraction:
		if c.Matching.Threshold <= 0 || c.Matching.Threshold > 1 {
			return errors.New("matching.threshold must be in (0, 1] when matching.threshold_mode is \"fraction\"")
		}
	case ThresholdAbsolute:
		if c.Matching.Threshold < 0 {
			return errors.New("matching.threshold must be >= 0 when matching.threshold_mode is \"absolute\"")
		}
		if c.Matching.Threshold > 0 && c.Matching.Threshold < 1 {
			return fmt.Errorf("matching.threshold %g is a fraction but matching.threshold_mode is \"absolute\" (set a point total)", c.Matching.Threshold)
		}
	default:
		return fmt.Errorf("matching.threshold_mode: unsupported value %q (use \"fraction\" or \"absolute\")", c.Matching.ThresholdMode)
	}
	if c.Matching.Workers <= 0 {
		return errors.New("matching.workers must be positive")
	}
	return nil
}

func (c *Config) validateTuning() error {
	if err := ensurePositiveMap(map[string]int{
		"template.max_side":         c.Template.MaxSide,
		"keypoint.max_features":     c.Keypoint.MaxFeatures,
		"keypoint.fast_threshold":   c.Keypoint.FastThreshold,
		"keypoint.good_distance":    c.Keypoint.GoodDistance,
		"keypoint.saturation_count": c.Keypoint.SaturationCount,
		"keypoint.max_side":         c.Keypoint.MaxSide,
		"cache.images":              c.Cache.Images,
	}); err != nil {
		return err
	}
	if c.Keypoint.GoodDistance > 256 {
		return errors.New("keypoint.good_distance must be <= 256 (descriptor bits)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
