// Package ranking drives the scorer across every genus in the KB and returns
// a totally ordered candidate list.
package ranking

import (
	"sort"

	"phenokey/internal/kb"
	"phenokey/internal/scoring"
)

// Ranker scores all genera against the current observations. It holds only
// read-only state and is safe to call repeatedly and concurrently.
type Ranker struct {
	kb     *kb.KB
	scorer scoring.TraitScorer
}

// New returns a Ranker over the given KB using scorer. A nil scorer gets the
// default rule-based scorer.
func New(base *kb.KB, scorer scoring.TraitScorer) *Ranker {
	if scorer == nil {
		scorer = scoring.NewRuleScorer(scoring.DefaultPenaltyWeight)
	}
	return &Ranker{kb: base, scorer: scorer}
}

// Rank scores every genus and sorts descending by score, ties broken by
// higher support, then lower conflict, then alphabetical genus name. The
// order is total and reproducible; with zero observations all genera tie at
// zero and come back alphabetically.
func (r *Ranker) Rank(observations []scoring.Observation) []scoring.CandidateScore {
	records := r.kb.Records()
	out := make([]scoring.CandidateScore, 0, len(records))
	for _, rec := range records {
		out = append(out, r.scorer.ScoreGenus(rec, observations))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Support != b.Support {
			return a.Support > b.Support
		}
		if a.Conflict != b.Conflict {
			return a.Conflict < b.Conflict
		}
		return a.Genus < b.Genus
	})
	return out
}
