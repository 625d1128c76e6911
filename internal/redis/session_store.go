package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks issued token IDs in redis so logout can revoke a
// token before its expiry. Keys expire together with the token.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore returns redis-backed store.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) key(userID int64, tokenID string) string {
	return fmt.Sprintf("auth:sessions:%d:%s", userID, tokenID)
}

// Save records a freshly issued token.
func (s *SessionStore) Save(ctx context.Context, userID int64, tokenID string) error {
	return s.client.Set(ctx, s.key(userID, tokenID), 1, s.ttl).Err()
}

// Exists reports whether the token is still live.
func (s *SessionStore) Exists(ctx context.Context, userID int64, tokenID string) (bool, error) {
	if err := s.client.Get(ctx, s.key(userID, tokenID)).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete revokes the token.
func (s *SessionStore) Delete(ctx context.Context, userID int64, tokenID string) error {
	return s.client.Del(ctx, s.key(userID, tokenID)).Err()
}
