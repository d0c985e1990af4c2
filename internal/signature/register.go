package signature

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"sleuth/internal/fileutil"
	"sleuth/internal/imaging"
	"sleuth/internal/logging"
)

// DefaultExtensions are the suffixes registered when none are configured.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png"}

// Prober decodes a file far enough to describe it.
type Prober interface {
	Probe(path string) (imaging.Info, error)
}

// Options tune registration.
type Options struct {
	// Extensions restricts which files are registered. Empty means
	// DefaultExtensions.
	Extensions []string
	// FoldCase matches extensions case-insensitively.
	FoldCase bool
	// SkipUndecodable logs and skips files that fail to decode instead of
	// aborting.
	SkipUndecodable bool
	Logger          *slog.Logger
}

// Register builds a store from the originals in folder. Files are visited in
// sorted name order and each becomes one signature keyed by its file name.
func Register(folder string, prober Prober, opts Options) (*Store, error) {
	if prober == nil {
		return nil, errors.New("register originals: prober is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "signature")

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	paths, err := fileutil.ListImages(folder, fileutil.NewExtensionMatcher(exts, opts.FoldCase))
	if err != nil {
		return nil, fmt.Errorf("register originals: %w", err)
	}

	sigs := make([]Signature, 0, len(paths))
	skipped := 0
	for _, path := range paths {
		name := filepath.Base(path)
		info, err := prober.Probe(path)
		if err != nil {
			decodeErr := &DecodeError{Path: path, Err: err}
			if !opts.SkipUndecodable {
				return nil, decodeErr
			}
			skipped++
			logging.WarnWithContext(logger, "skipping undecodable original", "registration_skip",
				logging.String(logging.FieldTarget, name),
				logging.String(logging.FieldErrorHint, "re-export the file or remove it from the originals folder"),
				logging.String(logging.FieldImpact, "original will never be matched"),
				logging.Error(decodeErr),
			)
			continue
		}
		sigs = append(sigs, Signature{
			ID:        name,
			Path:      path,
			ByteSize:  info.ByteSize,
			Width:     info.Width,
			Height:    info.Height,
			ColorMode: info.ColorMode,
			Format:    info.Format,
		})
		logger.Info("registered original",
			logging.String(logging.FieldTarget, name),
			logging.Int64("bytes", info.ByteSize),
			logging.String("dimensions", fmt.Sprintf("%dx%d", info.Width, info.Height)),
			logging.String("color_mode", info.ColorMode),
		)
	}

	store, err := NewStore(sigs...)
	if err != nil {
		return nil, fmt.Errorf("register originals: %w", err)
	}
	logger.Info("registration complete",
		logging.String("folder", folder),
		logging.Int("registered", store.Len()),
		logging.Int("skipped", skipped),
	)
	return store, nil
}
