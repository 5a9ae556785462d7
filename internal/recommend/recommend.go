// Package recommend picks the unobserved trait that best discriminates among
// the candidates still plausible after the current observations. The choice
// is a greedy information-gain heuristic over the next single test, not a
// search over future observation sequences.
package recommend

import (
	"math"
	"sort"

	"phenokey/internal/kb"
	"phenokey/internal/ontology"
	"phenokey/internal/scoring"
)

// SurvivorPolicy bounds which candidates count as still plausible.
type SurvivorPolicy struct {
	// TopK caps the survivor set at the K best-ranked candidates.
	TopK int `yaml:"top_k"`

	// MinRelativeScore drops candidates scoring below this fraction of the
	// leader's score. Applied only while the leader's score is positive; a
	// non-positive leader means nothing has separated yet and only the TopK
	// bound applies.
	MinRelativeScore float64 `yaml:"min_relative_score"`
}

// DefaultSurvivorPolicy keeps the ten best candidates and requires at least
// half the leader's score once the leader is positive.
func DefaultSurvivorPolicy() SurvivorPolicy {
	return SurvivorPolicy{TopK: 10, MinRelativeScore: 0.5}
}

// Recommender selects next tests over a fixed KB.
type Recommender struct {
	kb     *kb.KB
	policy SurvivorPolicy
}

// New returns a Recommender. A zero policy gets the defaults.
func New(base *kb.KB, policy SurvivorPolicy) *Recommender {
	if policy.TopK <= 0 {
		policy = DefaultSurvivorPolicy()
	}
	return &Recommender{kb: base, policy: policy}
}

// Policy returns the survivor policy in effect.
func (r *Recommender) Policy() SurvivorPolicy { return r.policy }

// Recommend returns the unobserved trait whose reference values split the
// survivors into the most balanced partition, or ok=false (no further test)
// when one or zero candidates survive or no trait discriminates. Candidates
// must already be ranked. Ties break on the lower trait identifier.
func (r *Recommender) Recommend(candidates []scoring.CandidateScore, observations []scoring.Observation) (ontology.Trait, bool) {
	survivors := r.survivors(candidates)
	if len(survivors) <= 1 {
		return "", false
	}

	observed := make(map[ontology.Trait]bool, len(observations))
	for _, obs := range observations {
		observed[obs.Trait] = true
	}

	type split struct {
		trait ontology.Trait
		power float64
	}
	var splits []split
	for _, t := range r.kb.Ontology().Traits() {
		if observed[t] {
			continue
		}
		if power := r.splitPower(t, survivors); power > 0 {
			splits = append(splits, split{trait: t, power: power})
		}
	}
	if len(splits) == 0 {
		return "", false
	}

	sort.Slice(splits, func(i, j int) bool {
		if splits[i].power != splits[j].power {
			return splits[i].power > splits[j].power
		}
		return splits[i].trait < splits[j].trait
	})
	return splits[0].trait, true
}

// survivors applies the policy to an already-ranked candidate list.
func (r *Recommender) survivors(candidates []scoring.CandidateScore) []scoring.CandidateScore {
	if len(candidates) == 0 {
		return nil
	}
	n := len(candidates)
	if r.policy.TopK > 0 && n > r.policy.TopK {
		n = r.policy.TopK
	}
	survivors := candidates[:n]

	leader := survivors[0].Score
	if leader <= 0 || r.policy.MinRelativeScore <= 0 {
		return survivors
	}
	cutoff := leader * r.policy.MinRelativeScore
	kept := survivors
	for i, c := range survivors {
		if c.Score < cutoff {
			kept = survivors[:i]
			break
		}
	}
	return kept
}

// splitPower measures how well a trait partitions the survivors. Survivors
// with a concrete reference (forced negatives count as Negative) are grouped
// by value; Variable and Unknown cells carry no discriminating information.
// The power is the Shannon entropy of the group sizes weighted by the
// fraction of survivors that have a concrete cell at all, so a trait
// splitting everyone beats one splitting a corner of the set. Fewer than two
// non-empty groups means zero power.
func (r *Recommender) splitPower(t ontology.Trait, survivors []scoring.CandidateScore) float64 {
	groups := make(map[string]int)
	classified := 0
	for _, c := range survivors {
		ref, ok := r.kb.Reference(c.Genus, t)
		if !ok {
			continue
		}
		switch ref.Kind {
		case kb.RefConcrete, kb.RefNegativeNotPlausible:
			groups[ref.Value]++
			classified++
		}
	}
	if len(groups) < 2 {
		return 0
	}

	var entropy float64
	for _, n := range groups {
		p := float64(n) / float64(classified)
		entropy -= p * math.Log2(p)
	}
	coverage := float64(classified) / float64(len(survivors))
	return entropy * coverage
}
