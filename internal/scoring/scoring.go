// Package scoring decides how well an unknown isolate's observed traits fit
// each genus profile. Scoring is per-trait and independent: one observation
// against one reference cell yields a verdict, and verdicts fold into a
// genus-level compatibility score.
package scoring

import (
	"fmt"

	"phenokey/internal/kb"
	"phenokey/internal/ontology"
)

// Verdict is the outcome of comparing one observation to one reference cell.
type Verdict int

const (
	// Match: the observation is consistent with the reference.
	Match Verdict = iota

	// Conflict: the observation contradicts the reference.
	Conflict

	// Neutral: the reference carries no data, so the observation neither
	// supports nor contradicts the genus.
	Neutral
)

func (v Verdict) String() string {
	switch v {
	case Match:
		return "match"
	case Conflict:
		return "conflict"
	case Neutral:
		return "neutral"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Observation is one user-supplied concrete result for one trait.
type Observation struct {
	Trait ontology.Trait
	Value string
}

// TraitVerdict is one scored observation, kept for explanation output.
type TraitVerdict struct {
	Trait     ontology.Trait
	Observed  string
	Reference kb.ReferenceValue
	Verdict   Verdict

	// ForcedNegative marks a verdict scored against a Negative (Not
	// Plausible) override rather than a genuinely observed negative trait.
	ForcedNegative bool
}

// CandidateScore is one genus's compatibility with the current observations.
type CandidateScore struct {
	Genus string

	// Score is Support - Conflict*penalty. One hard conflict outweighs one
	// match, so a contradicted genus ranks below a merely under-evidenced one.
	Score float64

	Support  int
	Conflict int
	Neutral  int

	// Verdicts holds the per-trait outcomes in observation insertion order.
	Verdicts []TraitVerdict

	// Notes is curator free text from the genus record.
	Notes string
}

// TraitScorer scores observations against reference cells. The engine ships
// a rule-based implementation; a learned calibration model can replace it
// behind the same interface.
type TraitScorer interface {
	ScoreTrait(obs Observation, ref kb.ReferenceValue) TraitVerdict
	ScoreGenus(rec kb.GenusRecord, observations []Observation) CandidateScore
}

// DefaultPenaltyWeight makes a single conflict outweigh a single match.
const DefaultPenaltyWeight = 2.0

// RuleScorer is the rule-based TraitScorer.
type RuleScorer struct {
	// PenaltyWeight multiplies the conflict count in the final score.
	// Must be > 1.
	PenaltyWeight float64
}

// NewRuleScorer returns a RuleScorer, substituting DefaultPenaltyWeight when
// penalty is not > 1.
func NewRuleScorer(penalty float64) *RuleScorer {
	if penalty <= 1 {
		penalty = DefaultPenaltyWeight
	}
	return &RuleScorer{PenaltyWeight: penalty}
}

// ScoreTrait compares one observation to one reference cell.
//
//   - Unknown reference: Neutral. Absence of data never penalizes a genus.
//   - Variable reference: Match. A strain-variable reaction is by definition
//     compatible with either observed outcome.
//   - Negative (Not Plausible): compared as a concrete Negative, with the
//     verdict tagged forced-negative for the explanation layer.
//   - Concrete reference: Match on exact domain-value equality, else
//     Conflict.
func (s *RuleScorer) ScoreTrait(obs Observation, ref kb.ReferenceValue) TraitVerdict {
	tv := TraitVerdict{
		Trait:     obs.Trait,
		Observed:  obs.Value,
		Reference: ref,
	}
	switch ref.Kind {
	case kb.RefUnknown:
		tv.Verdict = Neutral
	case kb.RefVariable:
		tv.Verdict = Match
	case kb.RefNegativeNotPlausible:
		tv.ForcedNegative = true
		if obs.Value == ref.Value {
			tv.Verdict = Match
		} else {
			tv.Verdict = Conflict
		}
	default:
		if obs.Value == ref.Value {
			tv.Verdict = Match
		} else {
			tv.Verdict = Conflict
		}
	}
	return tv
}

// ScoreGenus scores every observation against rec and aggregates. A trait
// the record has no cell for is a KB validation failure upstream; here it is
// scored as Unknown so a partial record can still be explained.
func (s *RuleScorer) ScoreGenus(rec kb.GenusRecord, observations []Observation) CandidateScore {
	cs := CandidateScore{
		Genus:    rec.Genus,
		Verdicts: make([]TraitVerdict, 0, len(observations)),
		Notes:    rec.Notes,
	}
	for _, obs := range observations {
		ref, ok := rec.Reference(obs.Trait)
		if !ok {
			ref = kb.Unknown()
		}
		tv := s.ScoreTrait(obs, ref)
		cs.Verdicts = append(cs.Verdicts, tv)
		switch tv.Verdict {
		case Match:
			cs.Support++
		case Conflict:
			cs.Conflict++
		case Neutral:
			cs.Neutral++
		}
	}
	cs.Score = float64(cs.Support) - float64(cs.Conflict)*s.PenaltyWeight
	return cs
}
