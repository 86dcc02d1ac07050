package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/applycheck/internal/structure"
	"github.com/dusk-indust/applycheck/internal/textnorm"
)

func fp(text string) textnorm.Fingerprint {
	return textnorm.ComputeFingerprint(text)
}

func runEngine(t *testing.T, records []RewriteRecord, observations []Observation) []Finding {
	t.Helper()
	findings, err := NewEngine(records).Run(context.Background(), observations)
	require.NoError(t, err)
	return findings
}

func TestEngine_ExactMatch(t *testing.T) {
	records := []RewriteRecord{{ParagraphID: "p1", RewrittenText: "Hello world."}}
	obs := []Observation{{ParagraphID: "p1", Fingerprint: fp("Hello world."), MatchType: MatchExact}}

	findings := runEngine(t, records, obs)
	require.Len(t, findings, 1)
	assert.Equal(t, OutcomeExactMatch, findings[0].Outcome)
	assert.Equal(t, "p1", findings[0].ParagraphID)
}

func TestEngine_ExactMatch_SurvivesFormattingNoise(t *testing.T) {
	// The placement side fingerprints the committed text, which may have lost
	// bold markers and gained whitespace. Identity must hold.
	records := []RewriteRecord{{ParagraphID: "p1", RewrittenText: "<<BOLD_START>>Let op:<<BOLD_END>> controleer de wond."}}
	obs := []Observation{{ParagraphID: "p1", Fingerprint: fp("Let op:  controleer de wond."), MatchType: MatchExact}}

	findings := runEngine(t, records, obs)
	require.Len(t, findings, 1)
	assert.Equal(t, OutcomeExactMatch, findings[0].Outcome)
}

func TestEngine_Mismatch_WrongText(t *testing.T) {
	records := []RewriteRecord{{ParagraphID: "p1", RewrittenText: "Hello world."}}
	obs := []Observation{{ParagraphID: "p1", Fingerprint: fp("Goodbye world."), MatchType: MatchExact}}

	findings := runEngine(t, records, obs)
	require.Len(t, findings, 1)
	assert.Equal(t, OutcomeMismatch, findings[0].Outcome)
	assert.Equal(t, fp("Hello world."), findings[0].Expected)
	assert.Equal(t, fp("Goodbye world."), findings[0].Observed)
}

func TestEngine_MultiApplyMatch_AnyOrder(t *testing.T) {
	records := []RewriteRecord{{ParagraphID: "p2", RewrittenText: "a; b; c;"}}
	obs := []Observation{
		{ParagraphID: "p2", Fingerprint: fp("c;"), MatchType: MatchExact},
		{ParagraphID: "p2", Fingerprint: fp("a;"), MatchType: MatchExact},
		{ParagraphID: "p2", Fingerprint: fp("b;"), MatchType: MatchExact},
	}

	findings := runEngine(t, records, obs)
	require.Len(t, findings, 1)
	assert.Equal(t, OutcomeMultiApplyMatch, findings[0].Outcome)
}

func TestEngine_MultiApply_ReorderingNeverChangesVerdict(t *testing.T) {
	records := []RewriteRecord{{ParagraphID: "p2", RewrittenText: "a; b; c;"}}
	orders := [][]string{
		{"a;", "b;", "c;"},
		{"b;", "c;", "a;"},
		{"c;", "b;", "a;"},
	}
	for _, order := range orders {
		var obs []Observation
		for _, item := range order {
			obs = append(obs, Observation{ParagraphID: "p2", Fingerprint: fp(item), MatchType: MatchExact})
		}
		findings := runEngine(t, records, obs)
		require.Len(t, findings, 1)
		assert.Equal(t, OutcomeMultiApplyMatch, findings[0].Outcome, "order %v", order)
	}
}

func TestEngine_MultiApply_CountDisagreement(t *testing.T) {
	records := []RewriteRecord{{ParagraphID: "p2", RewrittenText: "a; b; c;"}}
	obs := []Observation{
		{ParagraphID: "p2", Fingerprint: fp("a;"), MatchType: MatchExact},
		{ParagraphID: "p2", Fingerprint: fp("b;"), MatchType: MatchExact},
	}

	findings := runEngine(t, records, obs)
	require.Len(t, findings, 1)
	assert.Equal(t, OutcomeMismatch, findings[0].Outcome)
	assert.Contains(t, findings[0].Detail, "3 item(s)")
	assert.Contains(t, findings[0].Detail, "2 placement(s)")
}

func TestEngine_MultiApply_DuplicateObservedItem(t *testing.T) {
	// Right count, but one expected fragment missing and another doubled:
	// the multiset must not be exhausted.
	records := []RewriteRecord{{ParagraphID: "p2", RewrittenText: "a; b; c;"}}
	obs := []Observation{
		{ParagraphID: "p2", Fingerprint: fp("a;"), MatchType: MatchExact},
		{ParagraphID: "p2", Fingerprint: fp("a;"), MatchType: MatchExact},
		{ParagraphID: "p2", Fingerprint: fp("c;"), MatchType: MatchExact},
	}

	findings := runEngine(t, records, obs)
	require.Len(t, findings, 1)
	assert.Equal(t, OutcomeMismatch, findings[0].Outcome)
}

func TestEngine_FuzzyRejected_EvenWhenFingerprintAgrees(t *testing.T) {
	records := []RewriteRecord{{ParagraphID: "p3", RewrittenText: "Foo"}}
	obs := []Observation{{ParagraphID: "p3", Fingerprint: fp("Foo"), MatchType: MatchFuzzy}}

	findings := runEngine(t, records, obs)
	require.Len(t, findings, 1)
	assert.Equal(t, OutcomeFuzzyRejected, findings[0].Outcome)
}

func TestEngine_FuzzyRow_ExcludedFromGroupClassification(t *testing.T) {
	// One fuzzy row in a split group: the fuzzy row is rejected on its own,
	// and the remaining exact rows are verified without it. With one expected
	// item left unconsumed the exact rows cannot reach multi_apply_match.
	records := []RewriteRecord{{ParagraphID: "p2", RewrittenText: "a; b; c;"}}
	obs := []Observation{
		{ParagraphID: "p2", Fingerprint: fp("a;"), MatchType: MatchExact},
		{ParagraphID: "p2", Fingerprint: fp("b;"), MatchType: MatchFuzzy},
		{ParagraphID: "p2", Fingerprint: fp("c;"), MatchType: MatchExact},
	}

	findings := runEngine(t, records, obs)
	require.Len(t, findings, 2)

	outcomes := map[Outcome]int{}
	for _, f := range findings {
		outcomes[f.Outcome]++
	}
	assert.Equal(t, 1, outcomes[OutcomeFuzzyRejected])
	assert.Equal(t, 1, outcomes[OutcomeMismatch], "remaining exact rows disagree with the 3-way split")
}

func TestEngine_AllFuzzyGroup_OnlyRejections(t *testing.T) {
	records := []RewriteRecord{{ParagraphID: "p1", RewrittenText: "Hello"}}
	obs := []Observation{
		{ParagraphID: "p1", Fingerprint: fp("Hello"), MatchType: MatchFuzzy},
		{ParagraphID: "p1", Fingerprint: fp("Hello"), MatchType: MatchFuzzy},
	}

	findings := runEngine(t, records, obs)
	require.Len(t, findings, 2)
	for _, f := range findings {
		assert.Equal(t, OutcomeFuzzyRejected, f.Outcome)
	}
}

func TestEngine_MissingInSource(t *testing.T) {
	records := []RewriteRecord{{ParagraphID: "p1", RewrittenText: "Hello"}}
	obs := []Observation{{ParagraphID: "p99", Fingerprint: fp("whatever"), MatchType: MatchExact}}

	findings := runEngine(t, records, obs)
	require.Len(t, findings, 1)
	assert.Equal(t, OutcomeMissingInSource, findings[0].Outcome)
	assert.Equal(t, "p99", findings[0].ParagraphID)
}

func TestEngine_MergeMatch(t *testing.T) {
	primary := "Eerste alinea.\n\nIn de praktijk: casus een"
	secondary := "Tweede alinea.\n\nVerdieping: extra stof"
	records := []RewriteRecord{
		{ParagraphID: "p1", RewrittenText: primary},
		{ParagraphID: "p2", RewrittenText: secondary},
	}
	merged := structure.MergeRewrites(primary, secondary)
	obs := []Observation{{
		ParagraphID: "p1",
		Fingerprint: fp(merged),
		MatchType:   MatchExact,
		CompanionID: "p2",
	}}

	findings := runEngine(t, records, obs)
	require.Len(t, findings, 1)
	assert.Equal(t, OutcomeMergeMatch, findings[0].Outcome)
	assert.Contains(t, findings[0].Detail, "p2")
}

func TestEngine_MergeMismatch(t *testing.T) {
	records := []RewriteRecord{
		{ParagraphID: "p1", RewrittenText: "Eerste alinea."},
		{ParagraphID: "p2", RewrittenText: "Tweede alinea."},
	}
	obs := []Observation{{
		ParagraphID: "p1",
		Fingerprint: fp("iets heel anders"),
		MatchType:   MatchExact,
		CompanionID: "p2",
	}}

	findings := runEngine(t, records, obs)
	require.Len(t, findings, 1)
	assert.Equal(t, OutcomeMismatch, findings[0].Outcome)
	assert.Contains(t, findings[0].Detail, "merged")
}

func TestEngine_MergeFallback_CompanionAbsent(t *testing.T) {
	// Companion id points nowhere: no merge attempt, plain mismatch.
	records := []RewriteRecord{{ParagraphID: "p1", RewrittenText: "Eerste alinea."}}
	obs := []Observation{{
		ParagraphID: "p1",
		Fingerprint: fp("iets anders"),
		MatchType:   MatchExact,
		CompanionID: "p404",
	}}

	findings := runEngine(t, records, obs)
	require.Len(t, findings, 1)
	assert.Equal(t, OutcomeMismatch, findings[0].Outcome)
}

func TestEngine_BlankedParagraph_EmptyFingerprintMatches(t *testing.T) {
	records := []RewriteRecord{{ParagraphID: "p1", RewrittenText: ""}}
	obs := []Observation{{ParagraphID: "p1", Fingerprint: textnorm.EmptyFingerprint, MatchType: MatchExact}}

	findings := runEngine(t, records, obs)
	require.Len(t, findings, 1)
	assert.Equal(t, OutcomeExactMatch, findings[0].Outcome)
}

func TestEngine_DeterministicOrder(t *testing.T) {
	records := []RewriteRecord{
		{ParagraphID: "b", RewrittenText: "B"},
		{ParagraphID: "a", RewrittenText: "A"},
		{ParagraphID: "c", RewrittenText: "C"},
	}
	obs := []Observation{
		{ParagraphID: "c", Fingerprint: fp("C"), MatchType: MatchExact},
		{ParagraphID: "a", Fingerprint: fp("A"), MatchType: MatchExact},
		{ParagraphID: "b", Fingerprint: fp("B"), MatchType: MatchExact},
	}

	findings := runEngine(t, records, obs)
	require.Len(t, findings, 3)
	assert.Equal(t, "a", findings[0].ParagraphID)
	assert.Equal(t, "b", findings[1].ParagraphID)
	assert.Equal(t, "c", findings[2].ParagraphID)
}

func TestEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []RewriteRecord{{ParagraphID: "p1", RewrittenText: "Hello"}}
	obs := []Observation{{ParagraphID: "p1", Fingerprint: fp("Hello"), MatchType: MatchExact}}

	_, err := NewEngine(records).Run(ctx, obs)
	assert.ErrorIs(t, err, context.Canceled)
}
