package preflight

import (
	"path/filepath"
	"strings"

	"sleuth/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name" yaml:"name"`
	Passed bool   `json:"passed" yaml:"passed"`
	Detail string `json:"detail" yaml:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	dirCheck := CheckDirectoryAccess("Originals directory", cfg.Paths.OriginalsDir, ReadOnly)
	results = append(results, dirCheck)
	if dirCheck.Passed {
		results = append(results, CheckOriginals(
			cfg.Paths.OriginalsDir,
			cfg.Registration.Extensions,
			cfg.Registration.CaseInsensitiveExtensions,
		))
	}

	if file := strings.TrimSpace(cfg.Logging.File); file != "" {
		results = append(results, CheckDirectoryAccess("Log directory", filepath.Dir(file), ReadWrite))
	}

	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
