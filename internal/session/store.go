// Package session maps opaque cookie tokens to user ids in Redis.
// A token lives for the short session TTL, or the extended remember
// TTL when the user logs in with "remember me". Deleting the key is
// all logout has to do.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

type Store struct {
	client      *redisv9.Client
	ttl         time.Duration
	rememberTTL time.Duration
}

func NewStore(client *redisv9.Client, ttl, rememberTTL time.Duration) *Store {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	if rememberTTL <= 0 {
		rememberTTL = 30 * 24 * time.Hour
	}
	return &Store{
		client:      client,
		ttl:         ttl,
		rememberTTL: rememberTTL,
	}
}

// Create mints a fresh token bound to userID and returns it.
func (s *Store) Create(ctx context.Context, userID uint, remember bool) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generate session token failed: %w", err)
	}

	ttl := s.ttl
	if remember {
		ttl = s.rememberTTL
	}
	if err := s.client.Set(ctx, sessionKey(token), userID, ttl).Err(); err != nil {
		return "", fmt.Errorf("redis set session failed: %w", err)
	}
	return token, nil
}

// Get resolves a token to a user id. The second return value reports
// whether the token is known; an unknown or expired token is not an error.
func (s *Store) Get(ctx context.Context, token string) (uint, bool, error) {
	raw, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err == redisv9.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get session failed: %w", err)
	}

	userID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || userID == 0 {
		return 0, false, nil
	}
	return uint(userID), true, nil
}

// Delete invalidates a token. Deleting a token that no longer exists
// is a no-op.
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("redis delete session failed: %w", err)
	}
	return nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func sessionKey(token string) string {
	return "auth:session:" + token
}
