package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"premam/internal/cache"
)

// SessionIdleTimeout is how long an admin session survives without activity.
// Each validated touch slides the expiry forward.
const SessionIdleTimeout = 30 * time.Minute

const sessionKeyPrefix = "admin_session:"

// Session is the server-side state behind an admin token.
type Session struct {
	CreatorID   uuid.UUID `json:"creator_id"`
	DisplayName string    `json:"display_name"`
}

// SessionStoreInterface defines the interface for admin session storage.
type SessionStoreInterface interface {
	Create(ctx context.Context, session Session) (token string, err error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// SessionStore keeps admin sessions in Redis with a sliding idle TTL.
type SessionStore struct {
	cache *cache.Client
}

// Ensure SessionStore implements SessionStoreInterface
var _ SessionStoreInterface = (*SessionStore)(nil)

// NewSessionStore creates a new session store.
func NewSessionStore(cache *cache.Client) *SessionStore {
	return &SessionStore{cache: cache}
}

// Create issues an opaque token and stores the session under it.
func (s *SessionStore) Create(ctx context.Context, session Session) (string, error) {
	payload, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	token := uuid.New().String()
	if err := s.cache.Set(ctx, sessionKeyPrefix+token, payload, SessionIdleTimeout); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get loads the session for a token and refreshes its idle TTL. A missing or
// expired token returns an error; the caller translates it to Unauthorized.
func (s *SessionStore) Get(ctx context.Context, token string) (*Session, error) {
	key := sessionKeyPrefix + token
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, fmt.Errorf("session not found")
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	// Sliding expiry: activity keeps the session alive.
	_ = s.cache.Expire(ctx, key, SessionIdleTimeout)

	return &session, nil
}

// Delete removes a session (logout).
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+token)
}
