// Package session exposes the engine to hosts: a session accumulates the
// observations for one diagnostic case and answers ranking, recommendation,
// and explanation queries against the shared read-only KB. Scores are fully
// recomputed whenever the observation set changes; the tables are small
// enough that recomputation is cheaper than chasing staleness bugs.
package session

import (
	"errors"
	"fmt"
	"sync"

	"phenokey/internal/explain"
	"phenokey/internal/kb"
	"phenokey/internal/logging"
	"phenokey/internal/ontology"
	"phenokey/internal/ranking"
	"phenokey/internal/recommend"
	"phenokey/internal/scoring"
)

// ErrUnknownGenus is returned when an explanation is requested for a genus
// the KB does not hold.
var ErrUnknownGenus = errors.New("genus not in knowledge base")

// ID identifies one diagnostic session.
type ID string

// Session owns the mutable observation set for one diagnostic case. All
// methods are safe for concurrent use, but a session is intended to serve a
// single case; concurrent cases each get their own.
type Session struct {
	id        ID
	kb        *kb.KB
	ranker    *ranking.Ranker
	rec       *recommend.Recommender
	explainer *explain.Builder

	mu     sync.Mutex
	order  []ontology.Trait
	values map[ontology.Trait]string

	// ranking caches the last full recompute; nil after any mutation.
	ranking []scoring.CandidateScore
}

// ID returns the session identifier.
func (s *Session) ID() ID { return s.id }

// Ontology returns the trait ontology behind the shared KB.
func (s *Session) Ontology() *ontology.Ontology { return s.kb.Ontology() }

// Record stores one observation. The trait and value must be in the
// ontology; a violation leaves the session untouched. A trait observed
// before keeps its insertion slot and takes the new value (correction
// semantics), which invalidates every previously computed score.
func (s *Session) Record(trait ontology.Trait, value string) error {
	if err := s.kb.Ontology().Validate(trait, value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.values[trait]; !seen {
		s.order = append(s.order, trait)
	}
	s.values[trait] = value
	s.ranking = nil
	logging.Session("session %s: recorded %s=%s (%d observed)", s.id, trait, value, len(s.order))
	return nil
}

// Observations returns the current observation set in insertion order.
func (s *Session) Observations() []scoring.Observation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observationsLocked()
}

func (s *Session) observationsLocked() []scoring.Observation {
	out := make([]scoring.Observation, 0, len(s.order))
	for _, t := range s.order {
		out = append(out, scoring.Observation{Trait: t, Value: s.values[t]})
	}
	return out
}

// Ranking returns all candidates ordered by compatibility. Repeated calls
// without an intervening Record return identical output.
func (s *Session) Ranking() []scoring.CandidateScore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rankingLocked()
}

func (s *Session) rankingLocked() []scoring.CandidateScore {
	if s.ranking == nil {
		s.ranking = s.ranker.Rank(s.observationsLocked())
		logging.Scoring("session %s: re-ranked %d genera over %d observations",
			s.id, len(s.ranking), len(s.order))
	}
	return s.ranking
}

// Recommendation returns the next test that best splits the surviving
// candidates, or ok=false when no further test would help.
func (s *Session) Recommendation() (ontology.Trait, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	trait, ok := s.rec.Recommend(s.rankingLocked(), s.observationsLocked())
	if ok {
		logging.Recommend("session %s: next test %s", s.id, trait)
	} else {
		logging.Recommend("session %s: no further test", s.id)
	}
	return trait, ok
}

// Explanation returns the per-trait verdicts for one genus in observation
// insertion order.
func (s *Session) Explanation(genus string) ([]scoring.TraitVerdict, error) {
	rec, ok := s.kb.Record(genus)
	if !ok {
		return nil, fmt.Errorf("%q: %w", genus, ErrUnknownGenus)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.explainer.Explain(rec, s.observationsLocked()), nil
}

// Report renders the full explanation (verdicts, confidence, summary) for
// one genus.
func (s *Session) Report(genus string) (explain.Report, error) {
	if _, ok := s.kb.Record(genus); !ok {
		return explain.Report{}, fmt.Errorf("%q: %w", genus, ErrUnknownGenus)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cand := range s.rankingLocked() {
		if cand.Genus == genus {
			return s.explainer.Report(cand), nil
		}
	}
	return explain.Report{}, fmt.Errorf("%q: %w", genus, ErrUnknownGenus)
}

// Reset discards every observation, returning the session to its initial
// state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.values = make(map[ontology.Trait]string)
	s.ranking = nil
	logging.Session("session %s: reset", s.id)
}
