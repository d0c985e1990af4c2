package provenance

import (
	"cmp"
	"context"
	"log/slog"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"sleuth/internal/logging"
	"sleuth/internal/rules"
	"sleuth/internal/signature"
)

// Candidate is one registered original scored against a query image.
type Candidate struct {
	TargetID         string         `json:"target" yaml:"target"`
	TotalScore       int            `json:"total_score" yaml:"total_score"`
	MaxPossibleScore int            `json:"max_possible_score" yaml:"max_possible_score"`
	Results          []rules.Result `json:"results" yaml:"results"`
}

// FiredCount returns how many rules fired for the candidate.
func (c Candidate) FiredCount() int {
	n := 0
	for _, r := range c.Results {
		if r.Fired {
			n++
		}
	}
	return n
}

// Aggregator scores a query image against every stored signature.
type Aggregator struct {
	store   *signature.Store
	set     *rules.Set
	logger  *slog.Logger
	workers int
}

// Option customises the Aggregator.
type Option func(*Aggregator)

// WithWorkers bounds how many rule evaluations run at once.
func WithWorkers(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.workers = n
		}
	}
}

// NewAggregator binds a store and rule set.
func NewAggregator(store *signature.Store, set *rules.Set, logger *slog.Logger, opts ...Option) *Aggregator {
	if logger == nil {
		logger = logging.NewNop()
	}
	a := &Aggregator{
		store:   store,
		set:     set,
		logger:  logging.NewComponentLogger(logger, "aggregator"),
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// MaxPossibleScore is the total every candidate is scored out of.
func (a *Aggregator) MaxPossibleScore() int {
	return a.set.MaxPossibleScore()
}

// Rules returns the active rule set.
func (a *Aggregator) Rules() *rules.Set {
	return a.set
}

// Evaluate returns every stored original ranked by descending total score.
// Originals with equal totals keep their registration order. The only error
// is cancellation of ctx.
func (a *Aggregator) Evaluate(ctx context.Context, candidatePath string) ([]Candidate, error) {
	sigs := a.store.All()
	active := a.set.Rules()
	maxPossible := a.set.MaxPossibleScore()
	logger := logging.WithContext(ctx, a.logger)

	results := make([][]rules.Result, len(sigs))
	for i := range results {
		results[i] = make([]rules.Result, len(active))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
schedule:
	for i, sig := range sigs {
		for j, rule := range active {
			if gctx.Err() != nil {
				break schedule
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				res := rules.Evaluate(rule, sig, candidatePath)
				results[i][j] = res
				logger.Debug("rule evaluated",
					logging.String(logging.FieldTarget, sig.ID),
					logging.String(logging.FieldRule, res.RuleID),
					slog.Group("score",
						slog.Int("value", res.Score),
						slog.Int("max", res.MaxScore),
						slog.Bool("fired", res.Fired),
						slog.String("evidence", res.Evidence),
					),
				)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, len(sigs))
	for i, sig := range sigs {
		total := 0
		for _, res := range results[i] {
			total += res.Score
		}
		candidates[i] = Candidate{
			TargetID:         sig.ID,
			TotalScore:       total,
			MaxPossibleScore: maxPossible,
			Results:          results[i],
		}
	}
	slices.SortStableFunc(candidates, func(x, y Candidate) int {
		return cmp.Compare(y.TotalScore, x.TotalScore)
	})
	return candidates, nil
}
