package rules

import (
	"fmt"
	"image"

	"sleuth/internal/imaging"
	"sleuth/internal/signature"
)

const (
	// IDTemplate identifies the template matching rule.
	IDTemplate = "template"

	templateMax    = 40
	templateFireAt = 0.5
	// DefaultTemplateMaxSide bounds the longer side of the search image.
	DefaultTemplateMaxSide = 160
)

// TemplateRule searches for the smaller image inside the larger one with
// normalized cross-correlation. When both images have the same area the
// candidate is used as the template.
type TemplateRule struct {
	pixels  PixelSource
	maxSide int
	match   func(search, tmpl *image.Gray, maxSide int) (float64, image.Point)
}

// NewTemplateRule returns a template rule. Both images are shrunk by one
// common factor until the search image fits within maxSide.
func NewTemplateRule(pixels PixelSource, maxSide int) *TemplateRule {
	if maxSide <= 0 {
		maxSide = DefaultTemplateMaxSide
	}
	return &TemplateRule{pixels: pixels, maxSide: maxSide, match: imaging.MatchTemplateScaled}
}

func (r *TemplateRule) ID() string    { return IDTemplate }
func (r *TemplateRule) MaxScore() int { return templateMax }

func (r *TemplateRule) Evaluate(sig signature.Signature, candidatePath string) Result {
	target, err := r.pixels.Load(sig.Path)
	if err != nil {
		return failed(IDTemplate, templateMax, "could not load images")
	}
	candidate, err := r.pixels.Load(candidatePath)
	if err != nil {
		return failed(IDTemplate, templateMax, "could not load images")
	}

	search, tmpl, role := target, candidate, "candidate"
	if candidate.Area() > target.Area() {
		search, tmpl, role = candidate, target, "original"
	}
	if tmpl.Info.Width > search.Info.Width || tmpl.Info.Height > search.Info.Height {
		return failed(IDTemplate, templateMax, "template larger than target")
	}

	v, at := r.match(search.Gray, tmpl.Gray, r.maxSide)
	return Result{
		RuleID:   IDTemplate,
		Score:    scaleScore(v, templateMax),
		MaxScore: templateMax,
		Fired:    v > templateFireAt,
		Evidence: fmt.Sprintf("template correlation %.3f at (%d,%d), %s as template", v, at.X, at.Y, role),
	}
}
