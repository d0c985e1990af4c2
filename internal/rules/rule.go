package rules

import (
	"fmt"
	"image"

	"sleuth/internal/imaging"
	"sleuth/internal/signature"
)

// Result is the outcome of one rule evaluated against one original.
type Result struct {
	RuleID   string `json:"rule" yaml:"rule"`
	Score    int    `json:"score" yaml:"score"`
	MaxScore int    `json:"max_score" yaml:"max_score"`
	Fired    bool   `json:"fired" yaml:"fired"`
	Evidence string `json:"evidence" yaml:"evidence"`
}

// Rule scores a candidate image against a registered original.
type Rule interface {
	ID() string
	MaxScore() int
	Evaluate(sig signature.Signature, candidatePath string) Result
}

// Prober describes an image file without keeping its pixels.
type Prober interface {
	Probe(path string) (imaging.Info, error)
}

// PixelSource decodes image files into pixel planes.
type PixelSource interface {
	Load(path string) (*imaging.Image, error)
}

// FeatureDetector extracts keypoint features from a grayscale image.
type FeatureDetector interface {
	Detect(img *image.Gray) []imaging.Feature
}

// Evaluate runs rule and enforces the result contract: identity fields are
// filled from the rule, the score is clamped to [0, MaxScore], and a panic is
// reported as a zero-score result.
func Evaluate(rule Rule, sig signature.Signature, candidatePath string) (res Result) {
	id, maxScore := rule.ID(), rule.MaxScore()
	defer func() {
		if r := recover(); r != nil {
			res = failed(id, maxScore, fmt.Sprintf("rule failed: %v", r))
		}
	}()

	res = rule.Evaluate(sig, candidatePath)
	res.RuleID = id
	res.MaxScore = maxScore
	res.Score = clampScore(res.Score, maxScore)
	return res
}

func failed(id string, maxScore int, evidence string) Result {
	return Result{RuleID: id, MaxScore: maxScore, Evidence: evidence}
}
