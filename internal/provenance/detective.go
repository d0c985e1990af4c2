package provenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"sleuth/internal/logging"
)

// Detective investigates query images against the registry.
type Detective struct {
	agg    *Aggregator
	policy Policy
	logger *slog.Logger
}

// NewDetective validates policy and binds it to agg.
func NewDetective(agg *Aggregator, policy Policy, logger *slog.Logger) (*Detective, error) {
	if agg == nil {
		return nil, fmt.Errorf("detective: aggregator is required")
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("detective: %w", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Detective{
		agg:    agg,
		policy: policy,
		logger: logging.NewComponentLogger(logger, "detective"),
	}, nil
}

// Policy returns the acceptance policy.
func (d *Detective) Policy() Policy {
	return d.policy
}

// Aggregator returns the underlying aggregator.
func (d *Detective) Aggregator() *Aggregator {
	return d.agg
}

// Investigate ranks every original against the image at path and decides
// whether the best one is a match.
func (d *Detective) Investigate(ctx context.Context, path string) (Outcome, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, d.logger).With(logging.String(logging.FieldQuery, path))

	start := time.Now()
	candidates, err := d.agg.Evaluate(ctx, path)
	if err != nil {
		return Outcome{}, fmt.Errorf("investigate %s: %w", path, err)
	}
	decision := Decide(d.policy, candidates)

	result, reason := "rejected", fmt.Sprintf("top score %d below required %d", decision.ConfidenceScore, decision.Required)
	switch {
	case len(candidates) == 0:
		reason = "no registered originals"
	case decision.Accepted:
		result = "match"
		reason = fmt.Sprintf("top score %d meets required %d", decision.ConfidenceScore, decision.Required)
	}
	attrs := logging.DecisionAttrs("provenance", result, reason)
	attrs = append(attrs,
		logging.String("best_match", decision.BestMatchID),
		logging.Int("score", decision.ConfidenceScore),
		logging.Int("max", decision.MaxPossibleScore),
		logging.Int("candidates", len(candidates)),
		logging.Duration("elapsed", time.Since(start)),
	)
	logger.Info("investigation complete", logging.Args(attrs...)...)

	return Outcome{
		QueryPath:  path,
		RunID:      runID,
		Candidates: candidates,
		Decision:   decision,
	}, nil
}
