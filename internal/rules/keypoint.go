package rules

import (
	"fmt"

	"sleuth/internal/imaging"
	"sleuth/internal/signature"
)

const (
	// IDKeypoint identifies the keypoint matching rule.
	IDKeypoint = "keypoint"

	keypointMax       = 40
	keypointFireCount = 10
	// DefaultGoodDistance is the Hamming distance below which a match counts.
	DefaultGoodDistance = 60
	// DefaultSaturationCount is the number of good matches worth the full score.
	DefaultSaturationCount = 25
)

// KeypointRule counts cross-checked descriptor matches between both images.
type KeypointRule struct {
	pixels       PixelSource
	detector     FeatureDetector
	goodDistance int
	saturation   int
}

// NewKeypointRule returns a keypoint rule. Non-positive tuning values fall
// back to the defaults.
func NewKeypointRule(pixels PixelSource, detector FeatureDetector, goodDistance, saturation int) *KeypointRule {
	if goodDistance <= 0 {
		goodDistance = DefaultGoodDistance
	}
	if saturation <= 0 {
		saturation = DefaultSaturationCount
	}
	return &KeypointRule{pixels: pixels, detector: detector, goodDistance: goodDistance, saturation: saturation}
}

func (r *KeypointRule) ID() string    { return IDKeypoint }
func (r *KeypointRule) MaxScore() int { return keypointMax }

func (r *KeypointRule) Evaluate(sig signature.Signature, candidatePath string) Result {
	target, err := r.pixels.Load(sig.Path)
	if err != nil {
		return failed(IDKeypoint, keypointMax, "could not load images")
	}
	candidate, err := r.pixels.Load(candidatePath)
	if err != nil {
		return failed(IDKeypoint, keypointMax, "could not load images")
	}

	targetDesc := imaging.Descriptors(r.detector.Detect(target.Gray))
	candidateDesc := imaging.Descriptors(r.detector.Detect(candidate.Gray))
	if len(targetDesc) == 0 || len(candidateDesc) == 0 {
		return failed(IDKeypoint, keypointMax, "no descriptors")
	}

	matches := imaging.MatchCrossCheck(candidateDesc, targetDesc)
	good := imaging.CountGood(matches, r.goodDistance)
	return Result{
		RuleID:   IDKeypoint,
		Score:    min(keypointMax, good*keypointMax/r.saturation),
		MaxScore: keypointMax,
		Fired:    good >= keypointFireCount,
		Evidence: fmt.Sprintf("%d good matches of %d cross-checked", good, len(matches)),
	}
}
