package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"sleuth/internal/config"
	"sleuth/internal/imaging"
	"sleuth/internal/logging"
	"sleuth/internal/provenance"
	"sleuth/internal/rules"
	"sleuth/internal/signature"
)

type commandContext struct {
	flags *rootFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
	closeLog   func() error
}

func newCommandContext(flags *rootFlags) *commandContext {
	return &commandContext{flags: flags}
}

// ensureConfig loads the configuration once and applies command line
// overrides on top of it.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyOverrides(cmd, cfg); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	changed := func(name string) bool {
		flag := cmd.Flags().Lookup(name)
		return flag != nil && flag.Changed
	}
	if dir := strings.TrimSpace(c.flags.originals); dir != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return fmt.Errorf("resolve originals dir: %w", err)
		}
		cfg.Paths.OriginalsDir = expanded
	}
	if level := strings.TrimSpace(c.flags.logLevel); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	if mode := strings.ToLower(strings.TrimSpace(c.flags.thresholdMode)); mode != "" {
		if mode != cfg.Matching.ThresholdMode && !changed("threshold") {
			return fmt.Errorf("--threshold-mode %s changes how the configured threshold %g is read; pass --threshold as well", mode, cfg.Matching.Threshold)
		}
		cfg.Matching.ThresholdMode = mode
	}
	if changed("threshold") {
		cfg.Matching.Threshold = c.flags.threshold
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}
	return nil
}

func (c *commandContext) loggerFor(cmd *cobra.Command) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig(cmd)
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.closeLog, c.loggerErr = logging.New(logging.Options{
			Level:    cfg.Logging.Level,
			Format:   cfg.Logging.Format,
			Writer:   cmd.ErrOrStderr(),
			FilePath: cfg.Logging.File,
		})
	})
	return c.logger, c.loggerErr
}

// Close releases the log file opened for this invocation, if any.
func (c *commandContext) Close() error {
	if c.closeLog == nil {
		return nil
	}
	return c.closeLog()
}

// session bundles everything a matching command needs.
type session struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     *signature.Store
	detective *provenance.Detective
}

func (c *commandContext) register(cmd *cobra.Command) (*config.Config, *slog.Logger, *imaging.Loader, *signature.Store, error) {
	cfg, err := c.ensureConfig(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	logger, err := c.loggerFor(cmd)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	loader, err := imaging.NewLoader(cfg.Cache.Images)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	store, err := signature.Register(cfg.Paths.OriginalsDir, loader, signature.Options{
		Extensions:      cfg.Registration.Extensions,
		FoldCase:        cfg.Registration.CaseInsensitiveExtensions,
		SkipUndecodable: cfg.Registration.SkipUndecodable,
		Logger:          logger,
	})
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return cfg, logger, loader, store, nil
}

func (c *commandContext) openSession(cmd *cobra.Command) (*session, error) {
	cfg, logger, loader, store, err := c.register(cmd)
	if err != nil {
		return nil, err
	}
	set, err := rules.Build(cfg.Matching.Rules, rules.Deps{
		Prober: loader,
		Pixels: loader,
		Detector: imaging.Detector{
			MaxFeatures: cfg.Keypoint.MaxFeatures,
			Threshold:   cfg.Keypoint.FastThreshold,
			MaxSide:     cfg.Keypoint.MaxSide,
		},
		TemplateMaxSide: cfg.Template.MaxSide,
		GoodDistance:    cfg.Keypoint.GoodDistance,
		SaturationCount: cfg.Keypoint.SaturationCount,
	})
	if err != nil {
		return nil, fmt.Errorf("build rules: %w", err)
	}
	agg := provenance.NewAggregator(store, set, logger, provenance.WithWorkers(cfg.Matching.Workers))
	detective, err := provenance.NewDetective(agg, provenance.Policy{
		Mode:      cfg.Matching.ThresholdMode,
		Threshold: cfg.Matching.Threshold,
	}, logger)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, store: store, detective: detective}, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
