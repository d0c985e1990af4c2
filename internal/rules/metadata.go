package rules

import (
	"fmt"

	"sleuth/internal/signature"
)

const (
	// IDMetadata identifies the metadata rule.
	IDMetadata = "metadata"

	metadataMax    = 30
	metadataPart   = 10
	metadataFireAt = 15
)

// MetadataRule compares byte size, dimensions and colour mode.
type MetadataRule struct {
	prober Prober
}

// NewMetadataRule returns a metadata rule probing candidates through prober.
func NewMetadataRule(prober Prober) *MetadataRule {
	return &MetadataRule{prober: prober}
}

func (r *MetadataRule) ID() string    { return IDMetadata }
func (r *MetadataRule) MaxScore() int { return metadataMax }

func (r *MetadataRule) Evaluate(sig signature.Signature, candidatePath string) Result {
	info, err := r.prober.Probe(candidatePath)
	if err != nil {
		return failed(IDMetadata, metadataMax, "could not load candidate")
	}

	sizeRatio := ratio(float64(sig.ByteSize), float64(info.ByteSize))
	sizeScore := scaleScore(sizeRatio, metadataPart)

	var dimRatio float64
	if sig.Width > 0 && sig.Height > 0 && info.Width > 0 && info.Height > 0 {
		dimRatio = (ratio(float64(sig.Width), float64(info.Width)) +
			ratio(float64(sig.Height), float64(info.Height))) / 2
	}
	dimScore := scaleScore(dimRatio, metadataPart)

	modeScore := 0
	if info.ColorMode == sig.ColorMode {
		modeScore = metadataPart
	}

	score := sizeScore + dimScore + modeScore
	return Result{
		RuleID:   IDMetadata,
		Score:    score,
		MaxScore: metadataMax,
		Fired:    score >= metadataFireAt,
		Evidence: fmt.Sprintf("size ratio %.2f, dimension ratio %.2f, mode %s vs %s",
			sizeRatio, dimRatio, info.ColorMode, sig.ColorMode),
	}
}
