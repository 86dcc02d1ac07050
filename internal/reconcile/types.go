package reconcile

import "github.com/dusk-indust/applycheck/internal/textnorm"

// MatchType is the anchor-resolution tag the placement step assigns to each
// observation.
type MatchType string

const (
	// MatchExact means the placement step located the anchor by paragraph
	// identity.
	MatchExact MatchType = "exact"

	// MatchFuzzy means the placement step fell back to approximate matching.
	// Fuzzy anchors have been observed to place correct-looking text in the
	// wrong paragraph, so they are rejected regardless of fingerprint
	// agreement.
	MatchFuzzy MatchType = "fuzzy"
)

// RewriteRecord is one unit of approved rewritten text, keyed by paragraph
// identity. Immutable input to the engine.
type RewriteRecord struct {
	ParagraphID   string
	RewrittenText string
}

// Observation is one placement-log row: what the placement step committed at
// one physical site, fingerprinted at placement time with the shared
// textnorm contract.
type Observation struct {
	ParagraphID string
	Fingerprint textnorm.Fingerprint
	MatchType   MatchType

	// CompanionID is set only when the placement step merged this paragraph
	// with a second source paragraph into one placed paragraph.
	CompanionID string
}

// Outcome is the terminal classification of a group of observations (or of a
// single fuzzy row within a group).
type Outcome string

const (
	OutcomeExactMatch      Outcome = "exact_match"
	OutcomeMultiApplyMatch Outcome = "multi_apply_match"
	OutcomeMergeMatch      Outcome = "merge_match"
	OutcomeMismatch        Outcome = "mismatch"
	OutcomeMissingInSource Outcome = "missing_in_source"
	OutcomeFuzzyRejected   Outcome = "fuzzy_rejected"
)

// Success reports whether the outcome is an acceptable verification result.
func (o Outcome) Success() bool {
	switch o {
	case OutcomeExactMatch, OutcomeMultiApplyMatch, OutcomeMergeMatch:
		return true
	}
	return false
}

// Finding is one classification result. Expected and Observed are filled for
// fingerprint comparisons; Detail carries the structural disagreement for
// count mismatches and similar cases.
type Finding struct {
	ParagraphID string
	Outcome     Outcome
	Detail      string
	Expected    textnorm.Fingerprint
	Observed    textnorm.Fingerprint
}
