package testsupport

import (
	"testing"

	"outreach/internal/artifacts"
	"outreach/internal/config"
	"outreach/internal/session"
)

// MustOpenStore opens a session.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *session.Store {
	t.Helper()

	store, err := session.Open(cfg)
	if err != nil {
		t.Fatalf("session.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustOpenArtifacts opens an artifacts.Store for tests and registers cleanup.
func MustOpenArtifacts(t testing.TB, cfg *config.Config) *artifacts.Store {
	t.Helper()

	store, err := artifacts.Open(cfg)
	if err != nil {
		t.Fatalf("artifacts.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
