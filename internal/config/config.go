package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OriginalsDir string `toml:"originals_dir"`
}

// Registration controls how the originals folder is turned into signatures.
type Registration struct {
	Extensions []string `toml:"extensions"`
	// CaseInsensitiveExtensions folds case when matching file suffixes.
	// Registration is case-sensitive unless this is set.
	CaseInsensitiveExtensions bool `toml:"case_insensitive_extensions"`
	// SkipUndecodable logs and skips files that fail to decode instead of
	// aborting the whole registration.
	SkipUndecodable bool `toml:"skip_undecodable"`
}

// Matching contains the rule selection and acceptance policy.
type Matching struct {
	Rules []string `toml:"rules"`
	// ThresholdMode is either "fraction" (of the maximum possible score) or
	// "absolute" (points).
	ThresholdMode string  `toml:"threshold_mode"`
	Threshold     float64 `toml:"threshold"`
	Workers       int     `toml:"workers"`
}

// Template tunes the normalized cross-correlation rule.
type Template struct {
	// MaxSide bounds the longest side of the search image before correlation.
	MaxSide int `toml:"max_side"`
}

// Keypoint tunes feature detection and descriptor matching.
type Keypoint struct {
	MaxFeatures     int `toml:"max_features"`
	FastThreshold   int `toml:"fast_threshold"`
	GoodDistance    int `toml:"good_distance"`
	SaturationCount int `toml:"saturation_count"`
	MaxSide         int `toml:"max_side"`
}

// Cache bounds the decoded image cache.
type Cache struct {
	Images int `toml:"images"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File, when set, receives a JSON copy of every log record.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for sleuth.
//
// Configuration sections by subsystem:
//   - Paths: originals folder
//   - Registration: extension filter and decode failure policy
//   - Matching: active rules, acceptance threshold and fan-out width
//   - Template: correlation search bounds
//   - Keypoint: feature detection and matching thresholds
//   - Cache: decoded image cache size
//   - Logging: log format, level and optional JSON file
type Config struct {
	Paths        Paths        `toml:"paths"`
	Registration Registration `toml:"registration"`
	Matching     Matching     `toml:"matching"`
	Template     Template     `toml:"template"`
	Keypoint     Keypoint     `toml:"keypoint"`
	Cache        Cache        `toml:"cache"`
	Logging      Logging      `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/sleuth/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("sleuth.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory when file logging is enabled.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Logging.File) == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.Logging.File), 0o755); err != nil {
		return fmt.Errorf("create log directory %q: %w", filepath.Dir(c.Logging.File), err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
