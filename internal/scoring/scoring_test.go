package scoring

import (
	"testing"

	"phenokey/internal/kb"
	"phenokey/internal/ontology"
)

func TestScoreTrait_VerdictRules(t *testing.T) {
	s := NewRuleScorer(0)
	obs := Observation{Trait: "oxidase", Value: "Positive"}

	cases := []struct {
		name       string
		ref        kb.ReferenceValue
		want       Verdict
		wantForced bool
	}{
		{"unknown_is_neutral", kb.Unknown(), Neutral, false},
		{"variable_is_match", kb.Variable(), Match, false},
		{"concrete_equal_is_match", kb.Concrete("Positive"), Match, false},
		{"concrete_unequal_is_conflict", kb.Concrete("Negative"), Conflict, false},
		{"forced_negative_vs_positive", kb.NegativeNotPlausible(), Conflict, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tv := s.ScoreTrait(obs, tc.ref)
			if tv.Verdict != tc.want {
				t.Fatalf("ScoreTrait verdict = %v, want %v", tv.Verdict, tc.want)
			}
			if tv.ForcedNegative != tc.wantForced {
				t.Fatalf("ForcedNegative = %v, want %v", tv.ForcedNegative, tc.wantForced)
			}
		})
	}
}

func TestScoreTrait_ForcedNegativeMatchesObservedNegative(t *testing.T) {
	s := NewRuleScorer(0)
	tv := s.ScoreTrait(Observation{Trait: "growth_on_macconkey", Value: "Negative"}, kb.NegativeNotPlausible())
	if tv.Verdict != Match {
		t.Fatalf("verdict = %v, want Match", tv.Verdict)
	}
	if !tv.ForcedNegative {
		t.Fatal("ForcedNegative = false, want true (distinguishable from a genuine negative)")
	}
}

func TestScoreTrait_VariableMatchesEveryLegalValue(t *testing.T) {
	s := NewRuleScorer(0)
	for _, v := range []string{"Positive", "Negative"} {
		tv := s.ScoreTrait(Observation{Trait: "catalase", Value: v}, kb.Variable())
		if tv.Verdict != Match {
			t.Fatalf("Variable vs %s = %v, want Match", v, tv.Verdict)
		}
	}
}

func TestScoreGenus_Aggregation(t *testing.T) {
	s := NewRuleScorer(2)
	rec := kb.GenusRecord{
		Genus: "Staphylococcus",
		Traits: map[ontology.Trait]kb.ReferenceValue{
			"gram_stain": kb.Concrete("Positive"),
			"oxidase":    kb.Concrete("Negative"),
			"motility":   kb.Unknown(),
			"catalase":   kb.Variable(),
		},
		Notes: "catalase usually positive",
	}
	observations := []Observation{
		{Trait: "gram_stain", Value: "Positive"}, // match
		{Trait: "oxidase", Value: "Positive"},    // conflict
		{Trait: "motility", Value: "Negative"},   // neutral
		{Trait: "catalase", Value: "Positive"},   // match (variable)
	}

	cs := s.ScoreGenus(rec, observations)
	if cs.Support != 2 || cs.Conflict != 1 || cs.Neutral != 1 {
		t.Fatalf("counts = %d/%d/%d, want 2/1/1", cs.Support, cs.Conflict, cs.Neutral)
	}
	if cs.Score != 0 { // 2 - 1*2
		t.Fatalf("Score = %v, want 0", cs.Score)
	}
	if len(cs.Verdicts) != 4 {
		t.Fatalf("len(Verdicts) = %d, want 4", len(cs.Verdicts))
	}
	// Verdicts preserve observation insertion order.
	for i, obs := range observations {
		if cs.Verdicts[i].Trait != obs.Trait {
			t.Fatalf("Verdicts[%d].Trait = %s, want %s", i, cs.Verdicts[i].Trait, obs.Trait)
		}
	}
	if cs.Notes != "catalase usually positive" {
		t.Fatalf("Notes = %q, want record notes", cs.Notes)
	}
}

func TestScoreGenus_NeutralNeverMovesCounts(t *testing.T) {
	s := NewRuleScorer(0)
	rec := kb.GenusRecord{
		Genus:  "Chlamydia",
		Traits: map[ontology.Trait]kb.ReferenceValue{"oxidase": kb.Unknown()},
	}
	for _, v := range []string{"Positive", "Negative"} {
		cs := s.ScoreGenus(rec, []Observation{{Trait: "oxidase", Value: v}})
		if cs.Support != 0 || cs.Conflict != 0 || cs.Neutral != 1 || cs.Score != 0 {
			t.Fatalf("Unknown ref vs %s: %+v, want all-neutral zero score", v, cs)
		}
	}
}

func TestScoreGenus_ZeroObservations(t *testing.T) {
	s := NewRuleScorer(0)
	cs := s.ScoreGenus(kb.GenusRecord{Genus: "Bacillus"}, nil)
	if cs.Score != 0 || len(cs.Verdicts) != 0 {
		t.Fatalf("zero-observation score = %+v, want zero", cs)
	}
}

func TestNewRuleScorer_PenaltyFloor(t *testing.T) {
	if got := NewRuleScorer(0).PenaltyWeight; got != DefaultPenaltyWeight {
		t.Fatalf("PenaltyWeight = %v, want default %v", got, DefaultPenaltyWeight)
	}
	if got := NewRuleScorer(1).PenaltyWeight; got != DefaultPenaltyWeight {
		t.Fatalf("PenaltyWeight(1) = %v, want default %v", got, DefaultPenaltyWeight)
	}
	if got := NewRuleScorer(3).PenaltyWeight; got != 3 {
		t.Fatalf("PenaltyWeight(3) = %v, want 3", got)
	}
}

func TestPenaltyWeight_ConflictOutweighsMatch(t *testing.T) {
	s := NewRuleScorer(0)
	rec := kb.GenusRecord{
		Genus: "Escherichia",
		Traits: map[ontology.Trait]kb.ReferenceValue{
			"gram_stain": kb.Concrete("Negative"),
			"indole":     kb.Concrete("Positive"),
		},
	}
	cs := s.ScoreGenus(rec, []Observation{
		{Trait: "gram_stain", Value: "Positive"}, // conflict
		{Trait: "indole", Value: "Positive"},     // match
	})
	if cs.Score >= 0 {
		t.Fatalf("Score = %v, want negative (one conflict must outweigh one match)", cs.Score)
	}
}
