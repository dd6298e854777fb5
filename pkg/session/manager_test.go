package session

import (
	"sync"
	"testing"
	"time"

	"foodiebot-be/internal/repository/memory"
	"foodiebot-be/pkg/intent"
)

func newTestManager() *Manager {
	return NewManager(memory.NewSessionRepository(time.Minute), 5, 3)
}

func TestGetOrCreateRecreatesOnMiss(t *testing.T) {
	m := newTestManager()

	s := m.GetOrCreate("unknown-id")
	if s == nil {
		t.Fatal("got nil session for unseen id")
	}
	if s.ID != "unknown-id" {
		t.Errorf("ID = %q, want unknown-id", s.ID)
	}
	if len(s.Turns) != 0 || s.EngagementScore != 0 {
		t.Errorf("recreated session not empty: %+v", s)
	}
}

func TestApplyTurnPersists(t *testing.T) {
	m := newTestManager()

	m.ApplyTurn("s1", intent.Intent{Mood: "spicy", Source: intent.SourceRule})
	got := m.GetOrCreate("s1")

	if got.Mood != "spicy" {
		t.Errorf("Mood = %q, want spicy", got.Mood)
	}
	if len(got.Turns) != 1 {
		t.Errorf("Turns = %d, want 1", len(got.Turns))
	}
}

func TestExpireThenRecreate(t *testing.T) {
	m := newTestManager()

	m.ApplyTurn("s1", intent.Intent{Mood: "spicy", Source: intent.SourceRule})
	m.Expire("s1")

	got := m.GetOrCreate("s1")
	if got.Mood != "" || len(got.Turns) != 0 {
		t.Errorf("expired session not recreated empty: %+v", got)
	}
}

func TestApplyTurnSerializedPerSession(t *testing.T) {
	m := newTestManager()

	const turns = 50
	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.ApplyTurn("s1", intent.Intent{DietaryTags: []string{"vegan"}, Source: intent.SourceRule})
		}()
	}
	wg.Wait()

	got := m.GetOrCreate("s1")
	if len(got.Turns) != turns {
		t.Errorf("Turns = %d, want %d (lost updates)", len(got.Turns), turns)
	}
	if len(got.DietaryTags) != 1 {
		t.Errorf("DietaryTags = %v, want single deduplicated tag", got.DietaryTags)
	}
}

func TestRecordOutcome(t *testing.T) {
	m := newTestManager()

	m.ApplyTurn("s1", intent.Intent{Mood: "spicy", Source: intent.SourceRule})
	got := m.RecordOutcome("s1", []string{"p1"}, 1)

	if got.EngagementScore != 25 { // 20 mood + 5 non-empty result
		t.Errorf("EngagementScore = %d, want 25", got.EngagementScore)
	}
	if len(got.LastShown) != 1 || got.LastShown[0] != "p1" {
		t.Errorf("LastShown = %v, want [p1]", got.LastShown)
	}
}
