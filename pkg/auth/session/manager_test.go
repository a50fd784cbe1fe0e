package session

import (
	"context"
	"testing"
	"time"

	redisclient "github.com/jordanvasquez/threadline-backend/pkg/redis"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.values[key] = value.(string)
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	val, ok := m.values[key]
	if !ok {
		return "", redisclient.ErrNotFound
	}
	return val, nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

type staticKeyer struct{}

func (staticKeyer) SessionKey(accessID string) string { return "tl:session:" + accessID }

func newTestManager() (*Manager, *memoryStore) {
	store := newMemoryStore()
	return &Manager{store: store, keyer: staticKeyer{}, ttl: time.Minute}, store
}

func TestRegisterAndHasSession(t *testing.T) {
	mgr, _ := newTestManager()
	ctx := context.Background()

	if err := mgr.Register(ctx, "jti-1", "user-1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	ok, err := mgr.HasSession(ctx, "jti-1")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !ok {
		t.Fatalf("expected live session")
	}
}

func TestHasSessionMissing(t *testing.T) {
	mgr, _ := newTestManager()

	ok, err := mgr.HasSession(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatalf("expected no session")
	}
}

func TestRevokeDropsSession(t *testing.T) {
	mgr, _ := newTestManager()
	ctx := context.Background()

	if err := mgr.Register(ctx, "jti-2", "user-2"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := mgr.Revoke(ctx, "jti-2"); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	ok, err := mgr.HasSession(ctx, "jti-2")
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatalf("expected session to be gone after revoke")
	}
}

func TestRegisterRequiresAccessID(t *testing.T) {
	mgr, _ := newTestManager()
	if err := mgr.Register(context.Background(), "  ", "user"); err == nil {
		t.Fatalf("expected error for blank access id")
	}
}
