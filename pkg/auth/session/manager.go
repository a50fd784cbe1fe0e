package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jordanvasquez/threadline-backend/pkg/config"
	redisclient "github.com/jordanvasquez/threadline-backend/pkg/redis"
)

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(accessID string) string
}

// Manager registers live sessions in Redis keyed by the JWT's jti so logout
// can invalidate a token before its expiry.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// AccessSessionChecker exposes the read-only surface needed by middleware.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.AccessTokenTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("access token ttl must be positive")
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Register records the session for the given access token id.
func (m *Manager) Register(ctx context.Context, accessID, userID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return m.store.Set(ctx, m.keyer.SessionKey(accessID), userID, m.ttl)
}

// HasSession reports whether the access token id still maps to a live session.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if strings.TrimSpace(accessID) == "" {
		return false, nil
	}
	_, err := m.store.Get(ctx, m.keyer.SessionKey(accessID))
	if err != nil {
		if errors.Is(err, redisclient.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Revoke deletes the session tied to the access identifier.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(accessID))
}

// NewAccessID mints a fresh session identifier used as the token jti.
func NewAccessID() string {
	return uuid.NewString()
}
