package contract

import (
	"foodiebot-be/pkg/store"
)

// SessionRepository stores active conversational state. Implementations
// are expected to evict idle sessions after their TTL; callers treat a
// miss as an expired session and recreate the context transparently.
type SessionRepository interface {
	Save(session *store.Session)
	Get(sessionID string) (*store.Session, bool)
	Delete(sessionID string)
}
