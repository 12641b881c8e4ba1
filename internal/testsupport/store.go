package testsupport

import (
	"testing"

	"reelsmith/internal/config"
	"reelsmith/internal/queue"
)

// NewStore opens a queue store against the test config and closes it when
// the test finishes.
func NewStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("open queue store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close queue store: %v", err)
		}
	})
	return store
}
