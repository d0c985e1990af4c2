package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sleuth/internal/batch"
	"sleuth/internal/provenance"
	"sleuth/internal/rules"
	"sleuth/internal/signature"
)

func ruleTitle(id string) string {
	return cases.Title(language.English).String(id)
}

func firedLabel(fired, colorize bool) string {
	if fired {
		return paint("FIRED", ansiGreen, colorize)
	}
	return paint("NO MATCH", ansiYellow, colorize)
}

func verdictLabel(d provenance.Decision, colorize bool) string {
	if d.Accepted {
		return paint("MATCH to "+d.BestMatchID, ansiGreen, colorize)
	}
	return paint("REJECTED", ansiRed, colorize)
}

// renderRuleLine formats one rule result the way the investigation report
// lists them: "Rule 1 (Metadata): FIRED - evidence -> 30/30".
func renderRuleLine(index int, res rules.Result, colorize bool) string {
	return fmt.Sprintf("  Rule %d (%s): %s - %s -> %d/%d",
		index, ruleTitle(res.RuleID), firedLabel(res.Fired, colorize), res.Evidence, res.Score, res.MaxScore)
}

// renderOutcome writes the per-query report for the top candidate and, with
// all set, a table of every ranked candidate.
func renderOutcome(w io.Writer, o provenance.Outcome, all, colorize bool) {
	fmt.Fprintf(w, "Processing: %s\n", filepath.Base(o.QueryPath))
	top, ok := o.Top()
	if !ok {
		fmt.Fprintln(w, "  No registered originals")
	} else {
		fmt.Fprintf(w, "  Best candidate: %s\n", top.TargetID)
		for i, res := range top.Results {
			fmt.Fprintln(w, renderRuleLine(i+1, res, colorize))
		}
	}
	d := o.Decision
	fmt.Fprintf(w, "Final: %d/%d -> %s (required %d)\n", d.ConfidenceScore, d.MaxPossibleScore, verdictLabel(d, colorize), d.Required)
	if all && len(o.Candidates) > 0 {
		fmt.Fprintln(w, renderCandidateTable(o.Candidates))
	}
}

func renderCandidateTable(candidates []provenance.Candidate) string {
	headers := []string{"Rank", "Original"}
	aligns := []columnAlignment{alignRight, alignLeft}
	for _, res := range candidates[0].Results {
		headers = append(headers, ruleTitle(res.RuleID))
		aligns = append(aligns, alignRight)
	}
	headers = append(headers, "Total", "Fired")
	aligns = append(aligns, alignRight, alignRight)

	rows := make([][]string, 0, len(candidates))
	for i, c := range candidates {
		row := []string{strconv.Itoa(i + 1), c.TargetID}
		for _, res := range c.Results {
			row = append(row, fmt.Sprintf("%d/%d", res.Score, res.MaxScore))
		}
		row = append(row,
			fmt.Sprintf("%d/%d", c.TotalScore, c.MaxPossibleScore),
			fmt.Sprintf("%d/%d", c.FiredCount(), len(c.Results)),
		)
		rows = append(rows, row)
	}
	return renderTable(headers, rows, aligns)
}

func renderSignatureTable(sigs []signature.Signature) string {
	rows := make([][]string, 0, len(sigs))
	for _, sig := range sigs {
		rows = append(rows, []string{
			sig.ID,
			sig.Format,
			sig.ColorMode,
			fmt.Sprintf("%dx%d", sig.Width, sig.Height),
			humanize.Bytes(uint64(max(sig.ByteSize, 0))),
		})
	}
	return renderTable(
		[]string{"Original", "Format", "Mode", "Dimensions", "Size"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	)
}

// renderPlan lists the query images of each section.
func renderPlan(w io.Writer, sections []batch.Section, colorize bool) {
	total := 0
	for i, section := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		for _, line := range renderSectionHeader(strings.ToUpper(section.Name)+" ("+section.Dir+")", colorize) {
			fmt.Fprintln(w, line)
		}
		for _, q := range section.Queries {
			fmt.Fprintf(w, "  %s\n", filepath.Base(q))
		}
		total += len(section.Queries)
	}
	fmt.Fprintf(w, "\n%d query images in %d sections\n", total, len(sections))
}

// renderBatch writes one verdict line per query grouped by section, then the
// summary.
func renderBatch(w io.Writer, report batch.Report, colorize bool) {
	for i, section := range report.Sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		for _, line := range renderSectionHeader(strings.ToUpper(section.Name)+" ("+section.Dir+")", colorize) {
			fmt.Fprintln(w, line)
		}
		for _, o := range section.Outcomes {
			d := o.Decision
			fmt.Fprintf(w, "  %-32s %d/%d -> %s\n", filepath.Base(o.QueryPath), d.ConfidenceScore, d.MaxPossibleScore, verdictLabel(d, colorize))
		}
		fmt.Fprintf(w, "  %d of %d matched\n", section.Matched(), len(section.Outcomes))
	}

	sum := report.Summary
	fmt.Fprintln(w)
	for _, line := range renderSectionHeader("Summary", colorize) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "  Queries: %d  Matched: %d  Rejected: %d\n", sum.Queries, sum.Matched, sum.Rejected)
	if len(sum.PerTarget) == 0 {
		return
	}
	rows := make([][]string, 0, len(sum.PerTarget))
	for _, id := range sum.Targets() {
		rows = append(rows, []string{id, strconv.Itoa(sum.PerTarget[id])})
	}
	fmt.Fprintln(w, renderTable([]string{"Original", "Matches"}, rows, []columnAlignment{alignLeft, alignRight}))
}
