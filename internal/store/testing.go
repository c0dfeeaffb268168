package store

import "testing"

// NewTestStore creates an in-memory store for tests.
func NewTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := openAt(":memory:")
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
