package memory

import (
	"testing"
	"time"

	"foodiebot-be/pkg/store"
)

func TestSessionRepositoryRoundTrip(t *testing.T) {
	repo := NewSessionRepository(time.Minute)

	s := store.NewSession("s1")
	s.Mood = "comfort"
	repo.Save(s)

	got, found := repo.Get("s1")
	if !found {
		t.Fatal("saved session not found")
	}
	if got.Mood != "comfort" {
		t.Errorf("Mood = %q, want comfort", got.Mood)
	}

	repo.Delete("s1")
	if _, found := repo.Get("s1"); found {
		t.Error("deleted session still present")
	}
}

func TestSessionRepositoryExpiry(t *testing.T) {
	repo := NewSessionRepository(20 * time.Millisecond)

	repo.Save(store.NewSession("s1"))
	time.Sleep(50 * time.Millisecond)

	if _, found := repo.Get("s1"); found {
		t.Error("session survived past its TTL")
	}
}

func TestSessionRepositoryMiss(t *testing.T) {
	repo := NewSessionRepository(time.Minute)
	if got, found := repo.Get("nope"); found || got != nil {
		t.Errorf("Get(miss) = (%v, %v), want (nil, false)", got, found)
	}
}
