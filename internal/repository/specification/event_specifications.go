package specification

import (
	"time"

	"gorm.io/gorm"
)

// ByEventTypes filters interaction events by type codes.
type ByEventTypes struct {
	Types []string
}

func (s ByEventTypes) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_type IN ?", s.Types)
}

// BySessionID filters interaction events belonging to one session.
type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// Since keeps events created at or after the cutoff.
type Since struct {
	Cutoff time.Time
}

func (s Since) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.Cutoff)
}
