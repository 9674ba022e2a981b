// Package session keeps authenticated sessions in redis. Every login
// produces two parallel records keyed by an opaque token: a token->user_id
// mapping with an absolute TTL and a metadata hash with a shorter sliding
// TTL. Losing either record kills the session.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/novikovva/aviapp/internal/domain"
)

type Session struct {
	UserID       int64
	Role         string
	Username     string
	CreatedAt    time.Time
	LastActivity time.Time
}

type Store struct {
	client     *redis.Client
	prefix     string
	tokenTTL   time.Duration
	sessionTTL time.Duration
}

func NewStore(client *redis.Client, prefix string, tokenTTL, sessionTTL time.Duration) *Store {
	return &Store{
		client:     client,
		prefix:     prefix,
		tokenTTL:   tokenTTL,
		sessionTTL: sessionTTL,
	}
}

// Create mints a token and writes both session records. The two writes
// are not atomic; the token key is written first and is the authoritative
// one, a half-written session is simply invalid on the next Validate.
func (s *Store) Create(ctx context.Context, user *domain.User) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	if err := s.client.SetEx(ctx, s.tokenKey(token), user.ID, s.tokenTTL).Err(); err != nil {
		return "", fmt.Errorf("store auth token: %w", err)
	}

	now := time.Now()
	sessionKey := s.sessionKey(token)
	fields := map[string]any{
		"user_id":       strconv.FormatInt(user.ID, 10),
		"role":          user.Role,
		"username":      user.Username,
		"created_at":    now.Format(time.RFC3339),
		"last_activity": now.Format(time.RFC3339),
	}
	if err := s.client.HSet(ctx, sessionKey, fields).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	if err := s.client.Expire(ctx, sessionKey, s.sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("expire session: %w", err)
	}

	return token, nil
}

// Validate checks the token, refreshes both TTLs and bumps last_activity.
// A missing token key always means the session is dead, even if the
// metadata hash is still around.
func (s *Store) Validate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, domain.ErrSessionExpired
	}

	if _, err := s.client.Get(ctx, s.tokenKey(token)).Result(); err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSessionExpired
		}
		return nil, fmt.Errorf("lookup auth token: %w", err)
	}

	sessionKey := s.sessionKey(token)
	data, err := s.client.HGetAll(ctx, sessionKey).Result()
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if len(data) == 0 {
		// Metadata already evicted: the sliding TTL ran out first.
		return nil, domain.ErrSessionExpired
	}

	now := time.Now()
	if err := s.client.HSet(ctx, sessionKey, "last_activity", now.Format(time.RFC3339)).Err(); err != nil {
		return nil, fmt.Errorf("refresh session: %w", err)
	}
	if err := s.client.Expire(ctx, sessionKey, s.sessionTTL).Err(); err != nil {
		return nil, fmt.Errorf("refresh session ttl: %w", err)
	}
	if err := s.client.Expire(ctx, s.tokenKey(token), s.tokenTTL).Err(); err != nil {
		return nil, fmt.Errorf("refresh token ttl: %w", err)
	}

	sess, err := parseSession(data, now)
	if err != nil {
		// Corrupt metadata cannot be trusted. Drop both records and make
		// the caller log in again instead of failing every request until
		// the TTL evicts the key.
		_ = s.Destroy(ctx, token)
		return nil, domain.ErrSessionExpired
	}
	return sess, nil
}

// Destroy deletes both records. Deleting an already-absent session is
// not an error, so logout is idempotent.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.client.Del(ctx, s.tokenKey(token), s.sessionKey(token)).Err()
}

func (s *Store) tokenKey(token string) string {
	return s.prefix + "auth_token:" + token
}

func (s *Store) sessionKey(token string) string {
	return s.prefix + "session:" + token
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func parseSession(data map[string]string, lastActivity time.Time) (*Session, error) {
	userID, err := strconv.ParseInt(data["user_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed session user_id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339, data["created_at"])
	if err != nil {
		return nil, fmt.Errorf("malformed session created_at: %w", err)
	}
	return &Session{
		UserID:       userID,
		Role:         data["role"],
		Username:     data["username"],
		CreatedAt:    createdAt,
		LastActivity: lastActivity,
	}, nil
}
