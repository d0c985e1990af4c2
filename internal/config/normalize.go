package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRegistration()
	c.normalizeMatching()
	c.normalizeTuning()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("SLEUTH_ORIGINALS_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.OriginalsDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.OriginalsDir) == "" {
		c.Paths.OriginalsDir = defaultOriginalsDir
	}
	var err error
	if c.Paths.OriginalsDir, err = expandPath(c.Paths.OriginalsDir); err != nil {
		return fmt.Errorf("paths.originals_dir: %w", err)
	}
	return nil
}

// normalizeRegistration trims and dot-prefixes extensions. Case is preserved
// because registration matching is case-sensitive by default.
func (c *Config) normalizeRegistration() {
	exts := make([]string, 0, len(c.Registration.Extensions))
	seen := make(map[string]struct{}, len(c.Registration.Extensions))
	for _, ext := range c.Registration.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = append(exts, defaultExtensions...)
	}
	c.Registration.Extensions = exts
}

func (c *Config) normalizeMatching() {
	rules := make([]string, 0, len(c.Matching.Rules))
	seen := make(map[string]struct{}, len(c.Matching.Rules))
	for _, rule := range c.Matching.Rules {
		rule = strings.ToLower(strings.TrimSpace(rule))
		if rule == "" {
			continue
		}
		if _, ok := seen[rule]; ok {
			continue
		}
		seen[rule] = struct{}{}
		rules = append(rules, rule)
	}
	if len(rules) == 0 {
		rules = append(rules, defaultRules...)
	}
	c.Matching.Rules = rules

	c.Matching.ThresholdMode = strings.ToLower(strings.TrimSpace(c.Matching.ThresholdMode))
	if c.Matching.ThresholdMode == "" {
		c.Matching.ThresholdMode = defaultThresholdMode
	}
	if c.Matching.Workers <= 0 {
		c.Matching.Workers = runtime.NumCPU()
	}
}

func (c *Config) normalizeTuning() {
	if c.Template.MaxSide <= 0 {
		c.Template.MaxSide = defaultTemplateMaxSide
	}
	if c.Keypoint.MaxFeatures <= 0 {
		c.Keypoint.MaxFeatures = defaultMaxFeatures
	}
	if c.Keypoint.FastThreshold <= 0 {
		c.Keypoint.FastThreshold = defaultFastThreshold
	}
	if c.Keypoint.GoodDistance <= 0 {
		c.Keypoint.GoodDistance = defaultGoodDistance
	}
	if c.Keypoint.SaturationCount <= 0 {
		c.Keypoint.SaturationCount = defaultSaturationCount
	}
	if c.Keypoint.MaxSide <= 0 {
		c.Keypoint.MaxSide = defaultKeypointMaxSide
	}
	if c.Cache.Images <= 0 {
		c.Cache.Images = defaultCacheImages
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("SLEUTH_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		var err error
		if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}
