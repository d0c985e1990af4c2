package rules

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownRule is returned by Build for an unrecognised rule name.
var ErrUnknownRule = errors.New("unknown rule")

// Set is an ordered collection of rules with unique IDs.
type Set struct {
	rules []Rule
}

// NewSet returns a set holding rules in the given order.
func NewSet(rules ...Rule) (*Set, error) {
	seen := make(map[string]struct{}, len(rules))
	for i, rule := range rules {
		if rule == nil {
			return nil, fmt.Errorf("rule %d is nil", i)
		}
		id := rule.ID()
		if id == "" {
			return nil, fmt.Errorf("rule %d has an empty id", i)
		}
		if rule.MaxScore() <= 0 {
			return nil, fmt.Errorf("rule %s: max score must be positive", id)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("rule %s registered twice", id)
		}
		seen[id] = struct{}{}
	}
	return &Set{rules: slices.Clone(rules)}, nil
}

// Rules returns the rules in registration order.
func (s *Set) Rules() []Rule {
	if s == nil {
		return nil
	}
	return slices.Clone(s.rules)
}

// Len returns the number of rules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// IDs returns the rule IDs in registration order.
func (s *Set) IDs() []string {
	ids := make([]string, 0, s.Len())
	for _, rule := range s.Rules() {
		ids = append(ids, rule.ID())
	}
	return ids
}

// MaxPossibleScore is the sum of the declared maxima of every rule.
func (s *Set) MaxPossibleScore() int {
	total := 0
	for _, rule := range s.Rules() {
		total += rule.MaxScore()
	}
	return total
}

// Deps supplies the collaborators and tuning used by the built-in rules.
type Deps struct {
	Prober          Prober
	Pixels          PixelSource
	Detector        FeatureDetector
	TemplateMaxSide int
	GoodDistance    int
	SaturationCount int
}

// Names lists the built-in rules in their default order.
func Names() []string {
	return []string{IDMetadata, IDHistogram, IDTemplate, IDKeypoint}
}

// Build creates a set from rule names, preserving their order.
func Build(names []string, deps Deps) (*Set, error) {
	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		var rule Rule
		switch strings.ToLower(strings.TrimSpace(name)) {
		case IDMetadata:
			if deps.Prober == nil {
				return nil, errors.New("metadata rule requires a prober")
			}
			rule = NewMetadataRule(deps.Prober)
		case IDHistogram:
			if deps.Pixels == nil {
				return nil, errors.New("histogram rule requires a pixel source")
			}
			rule = NewHistogramRule(deps.Pixels)
		case IDTemplate:
			if deps.Pixels == nil {
				return nil, errors.New("template rule requires a pixel source")
			}
			rule = NewTemplateRule(deps.Pixels, deps.TemplateMaxSide)
		case IDKeypoint:
			if deps.Pixels == nil || deps.Detector == nil {
				return nil, errors.New("keypoint rule requires a pixel source and a detector")
			}
			rule = NewKeypointRule(deps.Pixels, deps.Detector, deps.GoodDistance, deps.SaturationCount)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
		}
		rules = append(rules, rule)
	}
	return NewSet(rules...)
}
