package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"sleuth/internal/fileutil"
	"sleuth/internal/logging"
	"sleuth/internal/provenance"
)

// Investigator produces an outcome for one query image.
type Investigator interface {
	Investigate(ctx context.Context, path string) (provenance.Outcome, error)
}

// Section is the outcome of one folder of queries.
type Section struct {
	Name     string               `json:"name" yaml:"name"`
	Dir      string               `json:"dir" yaml:"dir"`
	Queries  []string             `json:"queries,omitempty" yaml:"queries,omitempty"`
	Outcomes []provenance.Outcome `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
}

// Matched counts accepted outcomes in the section.
func (s Section) Matched() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Decision.Accepted {
			n++
		}
	}
	return n
}

// Summary tallies verdicts across every section.
type Summary struct {
	Queries   int            `json:"queries" yaml:"queries"`
	Matched   int            `json:"matched" yaml:"matched"`
	Rejected  int            `json:"rejected" yaml:"rejected"`
	PerTarget map[string]int `json:"per_target" yaml:"per_target"`
}

// Targets returns the matched target IDs in sorted order.
func (s Summary) Targets() []string {
	ids := make([]string, 0, len(s.PerTarget))
	for id := range s.PerTarget {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Report is the result of a batch run.
type Report struct {
	Sections []Section `json:"sections" yaml:"sections"`
	Summary  Summary   `json:"summary" yaml:"summary"`
}

// ErrNoQueries is returned when none of the folders contain query images.
var ErrNoQueries = errors.New("no query images found")

// Runner drives an Investigator over folders.
type Runner struct {
	inv      Investigator
	matcher  fileutil.ExtensionMatcher
	logger   *slog.Logger
	progress io.Writer
	workers  int
}

// Option customises the Runner.
type Option func(*Runner)

// WithLogger sets the runner logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithProgress renders a progress bar per section to w.
func WithProgress(w io.Writer) Option {
	return func(r *Runner) {
		r.progress = w
	}
}

// WithWorkers bounds how many queries are investigated at once.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// NewRunner returns a runner accepting files with one of exts, compared
// case-insensitively.
func NewRunner(inv Investigator, exts []string, opts ...Option) *Runner {
	r := &Runner{
		inv:     inv,
		matcher: fileutil.NewExtensionMatcher(exts, true),
		logger:  logging.NewNop(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "batch")
	return r
}

type plannedSection struct {
	name  string
	dir   string
	paths []string
}

// Plan lists the sections and query paths Run would execute, in order,
// without investigating anything.
func (r *Runner) Plan(dirs []string) ([]Section, error) {
	planned, err := r.plan(dirs)
	if err != nil {
		return nil, err
	}
	out := make([]Section, len(planned))
	for i, p := range planned {
		out[i] = Section{Name: p.name, Dir: p.dir, Queries: p.paths}
	}
	return out, nil
}

func (r *Runner) plan(dirs []string) ([]plannedSection, error) {
	sorted := slices.Clone(dirs)
	slices.Sort(sorted)

	var sections []plannedSection
	for _, dir := range sorted {
		paths, err := fileutil.ListImages(dir, r.matcher)
		if err != nil {
			return nil, err
		}
		if len(paths) > 0 {
			sections = append(sections, plannedSection{name: filepath.Base(dir), dir: dir, paths: paths})
		}
		subdirs, err := fileutil.ListDirs(dir)
		if err != nil {
			return nil, err
		}
		for _, sub := range subdirs {
			subdir := filepath.Join(dir, sub)
			paths, err := fileutil.ListImages(subdir, r.matcher)
			if err != nil {
				return nil, err
			}
			if len(paths) > 0 {
				sections = append(sections, plannedSection{name: sub, dir: subdir, paths: paths})
			}
		}
	}
	if len(sections) == 0 {
		return nil, ErrNoQueries
	}
	return sections, nil
}

// Run investigates every query image in dirs.
func (r *Runner) Run(ctx context.Context, dirs []string) (Report, error) {
	planned, err := r.plan(dirs)
	if err != nil {
		return Report{}, err
	}

	report := Report{Summary: Summary{PerTarget: map[string]int{}}}
	for _, p := range planned {
		r.logger.Info("running section",
			logging.String("section", p.name),
			logging.String("dir", p.dir),
			logging.Int("queries", len(p.paths)),
		)
		outcomes, err := r.runSection(ctx, p)
		if err != nil {
			return Report{}, fmt.Errorf("section %s: %w", p.name, err)
		}
		section := Section{Name: p.name, Dir: p.dir, Outcomes: outcomes}
		report.Sections = append(report.Sections, section)

		for _, o := range outcomes {
			report.Summary.Queries++
			if o.Decision.Accepted {
				report.Summary.Matched++
				report.Summary.PerTarget[o.Decision.BestMatchID]++
			} else {
				report.Summary.Rejected++
			}
		}
		r.logger.Info("section complete",
			logging.String("section", p.name),
			logging.Int("matched", section.Matched()),
			logging.Int("rejected", len(outcomes)-section.Matched()),
		)
	}
	return report, nil
}

func (r *Runner) runSection(ctx context.Context, p plannedSection) ([]provenance.Outcome, error) {
	var bar *progressbar.ProgressBar
	if r.progress != nil {
		bar = progressbar.NewOptions(len(p.paths),
			progressbar.OptionSetWriter(r.progress),
			progressbar.OptionSetDescription(p.name),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		defer bar.Finish()
	}

	outcomes := make([]provenance.Outcome, len(p.paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, path := range p.paths {
		g.Go(func() error {
			outcome, err := r.inv.Investigate(gctx, path)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
