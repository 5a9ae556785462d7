package session

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phenokey/internal/kb"
	"phenokey/internal/ontology"
	"phenokey/internal/scoring"
)

// scenarioKB is the differential from the engine's reference walkthrough:
// Arthrobacter and Brevibacterium split on oxidase, Campylobacter conflicts
// on the Gram stain.
func scenarioKB(t *testing.T) *kb.KB {
	t.Helper()
	ont, err := ontology.New([]ontology.TraitDefinition{
		{ID: "gram_stain", Name: "Gram Stain", Domain: []string{"Positive", "Negative"}},
		{ID: "oxidase", Name: "Oxidase", Domain: []string{"Positive", "Negative"}},
	})
	require.NoError(t, err)
	base, err := kb.New(ont, []kb.GenusRecord{
		{Genus: "Arthrobacter", Traits: map[ontology.Trait]kb.ReferenceValue{
			"gram_stain": kb.Concrete("Positive"), "oxidase": kb.Concrete("Negative"),
		}},
		{Genus: "Brevibacterium", Traits: map[ontology.Trait]kb.ReferenceValue{
			"gram_stain": kb.Concrete("Positive"), "oxidase": kb.Concrete("Positive"),
		}},
		{Genus: "Campylobacter", Traits: map[ontology.Trait]kb.ReferenceValue{
			"gram_stain": kb.Concrete("Negative"), "oxidase": kb.Unknown(),
		}},
	})
	require.NoError(t, err)
	return base
}

func newSession(t *testing.T) *Session {
	t.Helper()
	return NewManager(scenarioKB(t), Options{}).Create()
}

func TestSession_Walkthrough(t *testing.T) {
	sess := newSession(t)

	// Gram positive: A and B tie above C.
	require.NoError(t, sess.Record("gram_stain", "Positive"))
	ranked := sess.Ranking()
	require.Len(t, ranked, 3)
	assert.Equal(t, "Arthrobacter", ranked[0].Genus)
	assert.Equal(t, "Brevibacterium", ranked[1].Genus)
	assert.Equal(t, "Campylobacter", ranked[2].Genus)
	assert.Equal(t, ranked[0].Score, ranked[1].Score)
	assert.Less(t, ranked[2].Score, ranked[1].Score)

	// Oxidase is the test that splits the tied leaders.
	trait, ok := sess.Recommendation()
	require.True(t, ok)
	assert.Equal(t, ontology.Trait("oxidase"), trait)

	// Oxidase negative: A leads strictly, nothing further to test.
	require.NoError(t, sess.Record("oxidase", "Negative"))
	ranked = sess.Ranking()
	assert.Equal(t, "Arthrobacter", ranked[0].Genus)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)

	_, ok = sess.Recommendation()
	assert.False(t, ok, "expected NoFurtherTest once a single candidate survives")
}

func TestSession_RankingIsIdempotent(t *testing.T) {
	sess := newSession(t)
	require.NoError(t, sess.Record("gram_stain", "Positive"))

	first := sess.Ranking()
	second := sess.Ranking()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated Ranking differs (-first +second):\n%s", diff)
	}
}

func TestSession_CorrectionSemantics(t *testing.T) {
	corrected := newSession(t)
	require.NoError(t, corrected.Record("gram_stain", "Negative"))
	require.NoError(t, corrected.Record("oxidase", "Negative"))
	// The Gram result was a mistake; correct it.
	require.NoError(t, corrected.Record("gram_stain", "Positive"))

	fresh := newSession(t)
	require.NoError(t, fresh.Record("gram_stain", "Positive"))
	require.NoError(t, fresh.Record("oxidase", "Negative"))

	// A corrected session ranks exactly as if the mistake never happened.
	got := corrected.Ranking()
	want := fresh.Ranking()
	for i := range want {
		assert.Equal(t, want[i].Genus, got[i].Genus)
		assert.Equal(t, want[i].Score, got[i].Score)
		assert.Equal(t, want[i].Support, got[i].Support)
		assert.Equal(t, want[i].Conflict, got[i].Conflict)
	}

	// The corrected trait keeps its original insertion slot.
	obs := corrected.Observations()
	require.Len(t, obs, 2)
	assert.Equal(t, scoring.Observation{Trait: "gram_stain", Value: "Positive"}, obs[0])
	assert.Equal(t, scoring.Observation{Trait: "oxidase", Value: "Negative"}, obs[1])
}

func TestSession_RecordValidation(t *testing.T) {
	sess := newSession(t)

	err := sess.Record("spore_stain", "Positive")
	var unknownTrait *ontology.UnknownTraitError
	require.ErrorAs(t, err, &unknownTrait)

	err = sess.Record("gram_stain", "positve")
	var invalidValue *ontology.InvalidValueError
	require.ErrorAs(t, err, &invalidValue)

	// Rejected observations leave the session untouched.
	assert.Empty(t, sess.Observations())
	for _, cand := range sess.Ranking() {
		assert.Zero(t, cand.Score)
	}
}

func TestSession_ExplanationOrderAndErrors(t *testing.T) {
	sess := newSession(t)
	require.NoError(t, sess.Record("oxidase", "Negative"))
	require.NoError(t, sess.Record("gram_stain", "Positive"))

	verdicts, err := sess.Explanation("Arthrobacter")
	require.NoError(t, err)
	require.Len(t, verdicts, 2)
	// Insertion order, not ontology order.
	assert.Equal(t, ontology.Trait("oxidase"), verdicts[0].Trait)
	assert.Equal(t, ontology.Trait("gram_stain"), verdicts[1].Trait)
	assert.Equal(t, scoring.Match, verdicts[0].Verdict)
	assert.Equal(t, scoring.Match, verdicts[1].Verdict)

	_, err = sess.Explanation("Yersinia")
	require.ErrorIs(t, err, ErrUnknownGenus)

	_, err = sess.Report("Yersinia")
	require.ErrorIs(t, err, ErrUnknownGenus)
}

func TestSession_Report(t *testing.T) {
	sess := newSession(t)
	require.NoError(t, sess.Record("gram_stain", "Positive"))
	require.NoError(t, sess.Record("oxidase", "Negative"))

	report, err := sess.Report("Arthrobacter")
	require.NoError(t, err)
	assert.Equal(t, "Arthrobacter", report.Genus)
	assert.Equal(t, 100, report.ConfidencePercent)
	assert.Equal(t, "High", report.ConfidenceLevel)
	require.Len(t, report.Verdicts, 2)
}

func TestSession_Reset(t *testing.T) {
	sess := newSession(t)
	require.NoError(t, sess.Record("gram_stain", "Positive"))
	sess.Reset()

	assert.Empty(t, sess.Observations())
	ranked := sess.Ranking()
	// Back to the zero-observation alphabetical tie.
	assert.Equal(t, "Arthrobacter", ranked[0].Genus)
	for _, cand := range ranked {
		assert.Zero(t, cand.Score)
	}
}
