package provenance

// Decision is the verdict on the top-ranked candidate.
type Decision struct {
	// BestMatchID is empty when the query was rejected.
	BestMatchID      string `json:"best_match,omitempty" yaml:"best_match,omitempty"`
	ConfidenceScore  int    `json:"confidence_score" yaml:"confidence_score"`
	Accepted         bool   `json:"accepted" yaml:"accepted"`
	Required         int    `json:"required" yaml:"required"`
	MaxPossibleScore int    `json:"max_possible_score" yaml:"max_possible_score"`
}

// Decide accepts the first candidate when its total reaches the required
// score. The boundary is inclusive. Candidates must already be ranked.
func Decide(policy Policy, candidates []Candidate) Decision {
	if len(candidates) == 0 {
		return Decision{}
	}
	top := candidates[0]
	d := Decision{
		ConfidenceScore:  top.TotalScore,
		Required:         policy.Required(top.MaxPossibleScore),
		MaxPossibleScore: top.MaxPossibleScore,
	}
	if top.MaxPossibleScore > 0 && top.TotalScore >= d.Required {
		d.Accepted = true
		d.BestMatchID = top.TargetID
	}
	return d
}

// Outcome is everything known about one investigated query image.
type Outcome struct {
	QueryPath  string      `json:"query" yaml:"query"`
	RunID      string      `json:"run_id" yaml:"run_id"`
	Candidates []Candidate `json:"candidates" yaml:"candidates"`
	Decision   Decision    `json:"decision" yaml:"decision"`
}

// Top returns the highest ranked candidate, if any.
func (o Outcome) Top() (Candidate, bool) {
	if len(o.Candidates) == 0 {
		return Candidate{}, false
	}
	return o.Candidates[0], true
}
