package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options describes logger construction parameters.
type Options struct {
	Level    string
	Format   string
	Writer   io.Writer
	FilePath string
}

// New constructs a slog logger using the provided options. Records go to
// Writer (stderr when nil) in the requested format and, when FilePath is set,
// are also appended to that file as JSON. The returned close function syncs
// and closes that file; it is a no-op otherwise.
func New(opts Options) (*slog.Logger, func() error, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	addSource := level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	var primary slog.Handler
	switch format {
	case "json":
		primary = newJSONHandler(writer, levelVar, addSource)
	case "console":
		primary = newPrettyHandler(writer, levelVar, addSource)
	default:
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	path := strings.TrimSpace(opts.FilePath)
	if path == "" {
		return slog.New(primary), func() error { return nil }, nil
	}
	file, err := openLogFile(path)
	if err != nil {
		return nil, nil, err
	}
	closeFile := func() error {
		syncErr := file.Sync()
		if err := file.Close(); err != nil {
			return fmt.Errorf("close log file %s: %w", path, err)
		}
		if syncErr != nil {
			return fmt.Errorf("sync log file %s: %w", path, syncErr)
		}
		return nil
	}
	return slog.New(slogmulti.Fanout(primary, newJSONHandler(file, levelVar, addSource))), closeFile, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}
