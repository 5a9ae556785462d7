package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"phenokey/internal/explain"
	"phenokey/internal/kb"
	"phenokey/internal/logging"
	"phenokey/internal/ontology"
	"phenokey/internal/ranking"
	"phenokey/internal/recommend"
	"phenokey/internal/scoring"
)

// ErrUnknownSession is returned for session ids the manager does not hold.
var ErrUnknownSession = errors.New("unknown session")

// Options tunes the engine components a manager wires into its sessions.
type Options struct {
	// Scorer overrides the rule-based scorer, e.g. with a learned
	// calibration model. Nil keeps the default.
	Scorer scoring.TraitScorer

	// PenaltyWeight configures the default scorer when Scorer is nil.
	PenaltyWeight float64

	// SurvivorPolicy bounds next-test recommendation.
	SurvivorPolicy recommend.SurvivorPolicy
}

// Manager creates and tracks sessions over one shared read-only KB.
type Manager struct {
	kb        *kb.KB
	ranker    *ranking.Ranker
	rec       *recommend.Recommender
	explainer *explain.Builder

	mu       sync.RWMutex
	sessions map[ID]*Session
}

// NewManager wires the engine components once; every session shares them.
func NewManager(base *kb.KB, opts Options) *Manager {
	scorer := opts.Scorer
	if scorer == nil {
		scorer = scoring.NewRuleScorer(opts.PenaltyWeight)
	}
	return &Manager{
		kb:        base,
		ranker:    ranking.New(base, scorer),
		rec:       recommend.New(base, opts.SurvivorPolicy),
		explainer: explain.NewBuilder(scorer),
		sessions:  make(map[ID]*Session),
	}
}

// KB returns the shared knowledge base.
func (m *Manager) KB() *kb.KB { return m.kb }

// Create opens a new empty session.
func (m *Manager) Create() *Session {
	s := &Session{
		id:        ID(uuid.NewString()),
		kb:        m.kb,
		ranker:    m.ranker,
		rec:       m.rec,
		explainer: m.explainer,
		values:    make(map[ontology.Trait]string),
	}
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	logging.Session("session %s: created", s.id)
	return s
}

// Get resolves a session id.
func (m *Manager) Get(id ID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrUnknownSession)
	}
	return s, nil
}

// Close discards a session. Closing an unknown id is a no-op.
func (m *Manager) Close(id ID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	logging.Session("session %s: closed", id)
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
