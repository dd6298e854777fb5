package redis

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"foodiebot-be/internal/repository/contract"
	"foodiebot-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "foodiebot:session:"

// SessionRepository keeps conversational state in Redis so sessions survive
// process restarts. The contract stays fire-and-forget: storage errors are
// logged and surface to the caller as a cache miss, which the session
// manager handles by recreating an empty context.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

var _ contract.SessionRepository = &SessionRepository{}

func (r *SessionRepository) Save(session *store.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := json.Marshal(session)
	if err != nil {
		log.Printf("[WARN] Failed to marshal session %s: %v", session.ID, err)
		return
	}
	if err := r.client.Set(ctx, keyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		log.Printf("[WARN] Failed to save session %s to redis: %v", session.ID, err)
	}
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := r.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[WARN] Failed to read session %s from redis: %v", sessionID, err)
		}
		return nil, false
	}

	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("[WARN] Corrupt session payload for %s: %v", sessionID, err)
		return nil, false
	}
	return &session, true
}

func (r *SessionRepository) Delete(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := r.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		log.Printf("[WARN] Failed to delete session %s from redis: %v", sessionID, err)
	}
}
