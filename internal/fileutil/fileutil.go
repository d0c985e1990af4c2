package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// ExtensionMatcher reports whether file names carry one of a set of suffixes.
type ExtensionMatcher struct {
	exts     []string
	foldCase bool
}

// NewExtensionMatcher builds a matcher for exts. Each extension should include
// its leading dot. With foldCase the comparison uses Unicode case folding, so
// ".JPG" matches ".jpg".
func NewExtensionMatcher(exts []string, foldCase bool) ExtensionMatcher {
	m := ExtensionMatcher{foldCase: foldCase}
	for _, ext := range exts {
		m.exts = append(m.exts, m.normalize(ext))
	}
	return m
}

func (m ExtensionMatcher) normalize(s string) string {
	if !m.foldCase {
		return s
	}
	// A Caser is stateful, so each call gets its own.
	return cases.Fold().String(s)
}

// Match reports whether name ends in one of the configured extensions.
func (m ExtensionMatcher) Match(name string) bool {
	ext := m.normalize(filepath.Ext(name))
	if ext == "" {
		return false
	}
	return slices.Contains(m.exts, ext)
}

// ListImages returns the regular files directly inside dir whose extension
// matches, sorted by file name. Hidden files are skipped.
func ListImages(dir string, matcher ExtensionMatcher) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !entry.Type().IsRegular() {
			info, err := os.Stat(filepath.Join(dir, name))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		if matcher.Match(name) {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	slices.Sort(paths)
	return paths, nil
}

// ListDirs returns the names of the non-hidden subdirectories of dir in sorted
// order.
func ListDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// EnsureDir creates path and any missing parents.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}
