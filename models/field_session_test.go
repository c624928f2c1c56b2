package models_test

import (
	"testing"
	"time"

	"contentfield/models"
)

func TestSessionRegistryExpiresIdleSessions(t *testing.T) {
	store := &fakeStore{}
	registry := models.NewSessionRegistry(newFakeFetcher(), func(string) models.FieldStore { return store }, 10*time.Minute)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	models.SetRegistryClock(registry, func() time.Time { return now })

	idle := registry.Open("entry-1")
	now = now.Add(5 * time.Minute)
	active := registry.Open("entry-2")

	now = now.Add(6 * time.Minute)
	if _, ok := registry.Get(active.ID); !ok {
		t.Fatal("session used 6m ago should still be live")
	}
	if _, ok := registry.Get(idle.ID); ok {
		t.Error("session idle for 11m should have expired")
	}
	if registry.Len() != 1 {
		t.Errorf("expected 1 live session, got %d", registry.Len())
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	registry := models.NewSessionRegistry(newFakeFetcher(), func(string) models.FieldStore { return &fakeStore{} }, time.Hour)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		session := registry.Open("entry")
		if seen[session.ID] {
			t.Fatalf("duplicate session id %s", session.ID)
		}
		seen[session.ID] = true
	}
}
