package rules

import (
	"fmt"
	"image"

	"sleuth/internal/imaging"
	"sleuth/internal/signature"
)

const (
	// IDHistogram identifies the colour histogram rule.
	IDHistogram = "histogram"

	histogramMax    = 30
	histogramFireAt = 0.5
)

// HistogramRule correlates the joint colour histograms of both images.
type HistogramRule struct {
	pixels    PixelSource
	correlate func(a, b image.Image) float64
}

// NewHistogramRule returns a histogram rule decoding through pixels.
func NewHistogramRule(pixels PixelSource) *HistogramRule {
	return &HistogramRule{pixels: pixels, correlate: imaging.Correlate}
}

func (r *HistogramRule) ID() string    { return IDHistogram }
func (r *HistogramRule) MaxScore() int { return histogramMax }

func (r *HistogramRule) Evaluate(sig signature.Signature, candidatePath string) Result {
	target, err := r.pixels.Load(sig.Path)
	if err != nil {
		return failed(IDHistogram, histogramMax, "could not load images")
	}
	candidate, err := r.pixels.Load(candidatePath)
	if err != nil {
		return failed(IDHistogram, histogramMax, "could not load images")
	}

	corr := r.correlate(target.RGBA, candidate.RGBA)
	return Result{
		RuleID:   IDHistogram,
		Score:    scaleScore(corr, histogramMax),
		MaxScore: histogramMax,
		Fired:    corr > histogramFireAt,
		Evidence: fmt.Sprintf("histogram correlation %.3f", corr),
	}
}
