// Package explain renders per-candidate evidence: which observations matched,
// which conflicted, and which were uninformative, plus a plain-language
// summary with a qualitative confidence level.
package explain

import (
	"fmt"
	"strings"

	"phenokey/internal/kb"
	"phenokey/internal/scoring"
)

// Confidence levels, thresholds on the confidence percentage.
const (
	LevelHigh     = "High"
	LevelModerate = "Moderate"
	LevelLow      = "Low"
	LevelVeryLow  = "Very Low"
)

// Report is the rendered explanation for one candidate genus.
type Report struct {
	Genus             string
	Score             float64
	ConfidencePercent int
	ConfidenceLevel   string

	// Verdicts preserves observation insertion order.
	Verdicts []scoring.TraitVerdict

	// Summary is a deterministic one-paragraph reading of the evidence.
	Summary string

	// Notes is curator free text from the genus record.
	Notes string
}

// Builder renders explanations using a scorer so its verdicts always agree
// with the ranking.
type Builder struct {
	scorer scoring.TraitScorer
}

// NewBuilder returns a Builder. A nil scorer gets the default rule-based
// scorer.
func NewBuilder(scorer scoring.TraitScorer) *Builder {
	if scorer == nil {
		scorer = scoring.NewRuleScorer(scoring.DefaultPenaltyWeight)
	}
	return &Builder{scorer: scorer}
}

// Explain returns the per-trait verdicts for one genus in observation
// insertion order.
func (b *Builder) Explain(rec kb.GenusRecord, observations []scoring.Observation) []scoring.TraitVerdict {
	return b.scorer.ScoreGenus(rec, observations).Verdicts
}

// Report renders a full explanation from an already-computed candidate score.
func (b *Builder) Report(cand scoring.CandidateScore) Report {
	percent := ConfidencePercent(cand)
	return Report{
		Genus:             cand.Genus,
		Score:             cand.Score,
		ConfidencePercent: percent,
		ConfidenceLevel:   ConfidenceLevel(percent),
		Verdicts:          cand.Verdicts,
		Summary:           summary(cand),
		Notes:             cand.Notes,
	}
}

// ConfidencePercent normalizes a candidate's score against the best score
// its observation count allows, clamped to 0-100. Zero observations is zero
// confidence.
func ConfidencePercent(cand scoring.CandidateScore) int {
	observed := len(cand.Verdicts)
	if observed == 0 {
		return 0
	}
	percent := int(cand.Score / float64(observed) * 100)
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// ConfidenceLevel maps a percentage onto a qualitative level.
func ConfidenceLevel(percent int) string {
	switch {
	case percent >= 75:
		return LevelHigh
	case percent >= 50:
		return LevelModerate
	case percent >= 25:
		return LevelLow
	default:
		return LevelVeryLow
	}
}

// summary builds the natural-language reading of the evidence. Wording is a
// pure function of the verdicts so repeated calls render identically.
func summary(cand scoring.CandidateScore) string {
	var matched, conflicted []string
	forced := 0
	for _, tv := range cand.Verdicts {
		phrase := fmt.Sprintf("%s %s", string(tv.Trait), strings.ToLower(tv.Observed))
		switch tv.Verdict {
		case scoring.Match:
			if tv.ForcedNegative {
				forced++
			}
			matched = append(matched, phrase)
		case scoring.Conflict:
			conflicted = append(conflicted, phrase)
		}
	}

	if len(matched) == 0 && len(conflicted) == 0 {
		return fmt.Sprintf("No recorded observation discriminates for or against %s.", cand.Genus)
	}

	var sb strings.Builder
	if len(matched) > 0 {
		fmt.Fprintf(&sb, "Based on the observed traits, %s is supported by %s.",
			cand.Genus, joinClauses(matched))
	} else {
		fmt.Fprintf(&sb, "No observed trait supports %s.", cand.Genus)
	}
	if len(conflicted) > 0 {
		fmt.Fprintf(&sb, " It is contradicted by %s.", joinClauses(conflicted))
	}
	if forced > 0 {
		fmt.Fprintf(&sb, " %d supporting reaction(s) rest on a Negative (Not Plausible) override rather than reference data.", forced)
	}
	percent := ConfidencePercent(cand)
	fmt.Fprintf(&sb, " Confidence: %s (%d%%).", ConfidenceLevel(percent), percent)
	return sb.String()
}

func joinClauses(parts []string) string {
	switch len(parts) {
	case 1:
		return parts[0]
	case 2:
		return parts[0] + " and " + parts[1]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + ", and " + parts[len(parts)-1]
	}
}
