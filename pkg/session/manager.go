package session

import (
	"sync"
	"time"

	"foodiebot-be/internal/repository/contract"
	"foodiebot-be/pkg/intent"
	"foodiebot-be/pkg/store"
)

// Manager owns all mutation of conversational state. Mutation for a given
// session id is serialized through a per-id lock; different sessions never
// contend. A repository miss (expired or never-seen id) is handled by
// transparently recreating an empty context, never by failing the caller.
type Manager struct {
	repo contract.SessionRepository

	nonEmptyIncrement int
	emptyDecrement    int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewManager(repo contract.SessionRepository, nonEmptyIncrement, emptyDecrement int) *Manager {
	if nonEmptyIncrement <= 0 {
		nonEmptyIncrement = 5
	}
	if emptyDecrement <= 0 {
		emptyDecrement = 3
	}
	return &Manager{
		repo:              repo,
		nonEmptyIncrement: nonEmptyIncrement,
		emptyDecrement:    emptyDecrement,
		locks:             make(map[string]*sync.Mutex),
	}
}

// GetOrCreate returns the current context for the id, creating an empty one
// when the repository has no entry. The returned value is a snapshot; it is
// safe to read concurrently with later writes to the same id.
func (m *Manager) GetOrCreate(sessionID string) *store.Session {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	return m.loadLocked(sessionID)
}

// ApplyTurn merges the intent into the session per the slot policy, appends
// the turn to history, and persists the result. All-or-nothing: the stored
// state is only replaced by the fully merged copy.
func (m *Manager) ApplyTurn(sessionID string, in intent.Intent) *store.Session {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	current := m.loadLocked(sessionID)
	merged := store.Merge(current, in, time.Now())
	m.repo.Save(merged)
	return merged
}

// RecordOutcome stores the shown set for novelty avoidance and adjusts the
// engagement score based on whether the turn produced results.
func (m *Manager) RecordOutcome(sessionID string, shownIds []string, resultCount int) *store.Session {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	current := m.loadLocked(sessionID)
	updated := store.WithOutcome(current, shownIds, resultCount, m.nonEmptyIncrement, m.emptyDecrement)
	m.repo.Save(updated)
	return updated
}

// Expire evicts the session immediately. Safe to call concurrently with
// ApplyTurn for the same id: the per-id lock orders the two.
func (m *Manager) Expire(sessionID string) {
	lock := m.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	m.repo.Delete(sessionID)
	// The lock entry is retained: handing out a second mutex for the same id
	// would break the one-writer-per-session guarantee for callers already
	// holding the old one.
}

func (m *Manager) loadLocked(sessionID string) *store.Session {
	if session, found := m.repo.Get(sessionID); found {
		return session
	}
	return store.NewSession(sessionID)
}

func (m *Manager) lockFor(sessionID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[sessionID] = lock
	}
	return lock
}
