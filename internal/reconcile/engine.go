package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dusk-indust/applycheck/internal/structure"
	"github.com/dusk-indust/applycheck/internal/textnorm"
)

// Engine verifies that every rewrite landed in the right place, intact,
// exactly once. It is a single finite pass: each group of observations
// sharing a paragraph id reaches exactly one terminal classification, with
// no retries and no state shared between groups.
type Engine struct {
	records map[string]RewriteRecord
}

// NewEngine builds an Engine over the source-of-truth rewrite set.
func NewEngine(records []RewriteRecord) *Engine {
	byID := make(map[string]RewriteRecord, len(records))
	for _, r := range records {
		byID[r.ParagraphID] = r
	}
	return &Engine{records: byID}
}

// Run classifies every observation group and returns the findings in
// deterministic (sorted paragraph id) order. The context is checked between
// groups so a caller can abandon a large batch early; a cancelled run returns
// the context error and no findings.
func (e *Engine) Run(ctx context.Context, observations []Observation) ([]Finding, error) {
	keys, groups := groupByParagraph(observations)

	var findings []Finding
	for _, id := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		findings = append(findings, e.classifyGroup(id, groups[id])...)
	}
	return findings, nil
}

// classifyGroup runs the verification state machine for one paragraph id.
func (e *Engine) classifyGroup(id string, group []Observation) []Finding {
	var findings []Finding

	// Fuzzy gate: checked first, independent of everything else. Each fuzzy
	// row is rejected individually and excluded from every other
	// classification, so one bad anchor cannot mask (or fake) a content
	// match elsewhere in the group.
	var trusted []Observation
	for _, obs := range group {
		if obs.MatchType == MatchFuzzy {
			findings = append(findings, Finding{
				ParagraphID: id,
				Outcome:     OutcomeFuzzyRejected,
				Detail:      "anchor resolved by fuzzy match; untrusted regardless of fingerprint",
				Observed:    obs.Fingerprint,
			})
			continue
		}
		trusted = append(trusted, obs)
	}
	if len(trusted) == 0 {
		return findings
	}

	record, ok := e.records[id]
	if !ok {
		findings = append(findings, Finding{
			ParagraphID: id,
			Outcome:     OutcomeMissingInSource,
			Detail:      fmt.Sprintf("%d observation(s) reference a paragraph absent from the rewrite table", len(trusted)),
		})
		return findings
	}

	if len(trusted) == 1 {
		findings = append(findings, e.classifySingle(record, trusted[0]))
		return findings
	}
	findings = append(findings, e.classifyMulti(record, trusted))
	return findings
}

// classifySingle handles the one-observation case: exact match, then the
// merge fallback when the placement step reported a companion paragraph.
func (e *Engine) classifySingle(record RewriteRecord, obs Observation) Finding {
	expected := textnorm.ComputeFingerprint(record.RewrittenText)
	if expected == obs.Fingerprint {
		return Finding{
			ParagraphID: record.ParagraphID,
			Outcome:     OutcomeExactMatch,
			Expected:    expected,
			Observed:    obs.Fingerprint,
		}
	}

	if obs.CompanionID != "" {
		if companion, ok := e.records[obs.CompanionID]; ok {
			merged := structure.MergeRewrites(record.RewrittenText, companion.RewrittenText)
			mergedFP := textnorm.ComputeFingerprint(merged)
			if mergedFP == obs.Fingerprint {
				return Finding{
					ParagraphID: record.ParagraphID,
					Outcome:     OutcomeMergeMatch,
					Detail:      fmt.Sprintf("merged with companion %s", obs.CompanionID),
					Expected:    mergedFP,
					Observed:    obs.Fingerprint,
				}
			}
			return Finding{
				ParagraphID: record.ParagraphID,
				Outcome:     OutcomeMismatch,
				Detail:      fmt.Sprintf("neither plain nor merged (companion %s) fingerprint matches", obs.CompanionID),
				Expected:    expected,
				Observed:    obs.Fingerprint,
			}
		}
	}

	return Finding{
		ParagraphID: record.ParagraphID,
		Outcome:     OutcomeMismatch,
		Expected:    expected,
		Observed:    obs.Fingerprint,
	}
}

// classifyMulti handles the split-list case: the rewrite must decompose into
// exactly as many items as there are observations, and the expected item
// fingerprints must be consumed by the observed ones as a multiset. Placement
// order of split items is not guaranteed to mirror source order, but every
// expected fragment must appear exactly once.
func (e *Engine) classifyMulti(record RewriteRecord, group []Observation) Finding {
	items := structure.SplitListItems(record.RewrittenText)
	if len(items) != len(group) {
		return Finding{
			ParagraphID: record.ParagraphID,
			Outcome:     OutcomeMismatch,
			Detail: fmt.Sprintf("rewrite splits into %d item(s) but %d placement(s) observed",
				len(items), len(group)),
		}
	}

	remaining := make(map[textnorm.Fingerprint]int, len(items))
	for _, item := range items {
		remaining[textnorm.ComputeFingerprint(item)]++
	}

	var unmatched []string
	for _, obs := range group {
		if remaining[obs.Fingerprint] > 0 {
			remaining[obs.Fingerprint]--
			if remaining[obs.Fingerprint] == 0 {
				delete(remaining, obs.Fingerprint)
			}
			continue
		}
		unmatched = append(unmatched, string(obs.Fingerprint))
	}

	if len(unmatched) == 0 && len(remaining) == 0 {
		return Finding{
			ParagraphID: record.ParagraphID,
			Outcome:     OutcomeMultiApplyMatch,
			Detail:      fmt.Sprintf("%d item(s) matched as a multiset", len(items)),
		}
	}

	sort.Strings(unmatched)
	return Finding{
		ParagraphID: record.ParagraphID,
		Outcome:     OutcomeMismatch,
		Detail:      fmt.Sprintf("observed fingerprint(s) without a matching expected item: %s", strings.Join(unmatched, ", ")),
	}
}

// groupByParagraph indexes observations by paragraph id and returns the ids
// in sorted order so runs are deterministic.
func groupByParagraph(observations []Observation) ([]string, map[string][]Observation) {
	groups := make(map[string][]Observation)
	for _, obs := range observations {
		groups[obs.ParagraphID] = append(groups[obs.ParagraphID], obs)
	}
	keys := make([]string, 0, len(groups))
	for id := range groups {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return keys, groups
}
