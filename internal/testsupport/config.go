package testsupport

import (
	"path/filepath"
	"testing"

	"sleuth/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a default config whose originals directory lives in a
// per-test temp directory. Workers are pinned to two so tests exercise the
// concurrent paths without depending on the host CPU count.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.OriginalsDir = filepath.Join(t.TempDir(), "originals")
	cfg.Matching.Workers = 2
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithRules restricts the active rules.
func WithRules(names ...string) ConfigOption {
	return func(c *config.Config) {
		c.Matching.Rules = names
	}
}

// WithThreshold overrides the decision policy.
func WithThreshold(mode string, value float64) ConfigOption {
	return func(c *config.Config) {
		c.Matching.ThresholdMode = mode
		c.Matching.Threshold = value
	}
}

// WithSkipUndecodable enables skipping undecodable originals.
func WithSkipUndecodable() ConfigOption {
	return func(c *config.Config) {
		c.Registration.SkipUndecodable = true
	}
}
