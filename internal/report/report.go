package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dusk-indust/applycheck/internal/reconcile"
	"github.com/dusk-indust/applycheck/internal/textnorm"
)

// DefaultSampleLimit bounds the number of diagnostic samples kept per failing
// category. The counts are always complete; samples exist so a human can
// triage without drowning in output.
const DefaultSampleLimit = 10

// Sample is one bounded human-readable example of a failing finding.
type Sample struct {
	ParagraphID string `json:"paragraphId"`
	Detail      string `json:"detail,omitempty"`
	Expected    string `json:"expected,omitempty"`
	Observed    string `json:"observed,omitempty"`
}

// Report is the verification artifact: complete counts per outcome plus
// bounded samples per failing category. It is always written in full,
// pass or fail, so one run surfaces every problem found.
type Report struct {
	RunID            string                         `json:"runId"`
	GeneratedAt      string                         `json:"generatedAt"`
	AlgorithmVersion string                         `json:"algorithmVersion"`
	SourceRecords    int                            `json:"sourceRecords"`
	Checked          int                            `json:"checked"`
	Counts           map[reconcile.Outcome]int      `json:"counts"`
	Samples          map[reconcile.Outcome][]Sample `json:"samples,omitempty"`
	Passed           bool                           `json:"passed"`
}

// failingOutcomes are the categories that gate the release, in display order.
var failingOutcomes = []reconcile.Outcome{
	reconcile.OutcomeMismatch,
	reconcile.OutcomeMissingInSource,
	reconcile.OutcomeFuzzyRejected,
}

// successOutcomes in display order.
var successOutcomes = []reconcile.Outcome{
	reconcile.OutcomeExactMatch,
	reconcile.OutcomeMultiApplyMatch,
	reconcile.OutcomeMergeMatch,
}

// Build aggregates findings into a Report. sampleLimit <= 0 uses
// DefaultSampleLimit.
func Build(findings []reconcile.Finding, sourceRecords, sampleLimit int) *Report {
	if sampleLimit <= 0 {
		sampleLimit = DefaultSampleLimit
	}

	r := &Report{
		RunID:            uuid.NewString(),
		GeneratedAt:      time.Now().UTC().Format(time.RFC3339),
		AlgorithmVersion: textnorm.AlgorithmVersion,
		SourceRecords:    sourceRecords,
		Checked:          len(findings),
		Counts:           make(map[reconcile.Outcome]int),
		Samples:          make(map[reconcile.Outcome][]Sample),
	}

	for _, f := range findings {
		r.Counts[f.Outcome]++
		if f.Outcome.Success() {
			continue
		}
		if len(r.Samples[f.Outcome]) >= sampleLimit {
			continue
		}
		r.Samples[f.Outcome] = append(r.Samples[f.Outcome], Sample{
			ParagraphID: f.ParagraphID,
			Detail:      f.Detail,
			Expected:    string(f.Expected),
			Observed:    string(f.Observed),
		})
	}

	// Binary release gate: no partial "mostly passed" state.
	r.Passed = r.Counts[reconcile.OutcomeMismatch] == 0 &&
		r.Counts[reconcile.OutcomeMissingInSource] == 0 &&
		r.Counts[reconcile.OutcomeFuzzyRejected] == 0
	return r
}

// WriteSummary prints the human-readable summary: total counts first, then
// the bounded samples per failing category.
func (r *Report) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "Verification run %s (algorithm v%s)\n", r.RunID, r.AlgorithmVersion)
	fmt.Fprintf(w, "  source records: %d, classifications: %d\n\n", r.SourceRecords, r.Checked)

	for _, o := range successOutcomes {
		fmt.Fprintf(w, "  %-18s %d\n", o, r.Counts[o])
	}
	for _, o := range failingOutcomes {
		fmt.Fprintf(w, "  %-18s %d\n", o, r.Counts[o])
	}
	fmt.Fprintln(w)

	for _, o := range failingOutcomes {
		samples := r.Samples[o]
		if len(samples) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s samples (showing %d of %d):\n", o, len(samples), r.Counts[o])
		for _, s := range samples {
			fmt.Fprintf(w, "  - %s", s.ParagraphID)
			if s.Expected != "" || s.Observed != "" {
				fmt.Fprintf(w, " expected=%s observed=%s", s.Expected, s.Observed)
			}
			if s.Detail != "" {
				fmt.Fprintf(w, " (%s)", s.Detail)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	if r.Passed {
		fmt.Fprintln(w, "PASS: every rewrite verified in place")
	} else {
		fmt.Fprintln(w, "FAIL: verification findings present")
	}
}

// WriteJSON writes the machine-readable artifact. Called on every run,
// pass or fail, so downstream tooling can inspect details without
// re-running verification.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
