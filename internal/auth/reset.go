package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const resetKeyPrefix = "pwreset:"

// ResetTokenStore keeps short-lived password reset tokens in Redis.
type ResetTokenStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewResetTokenStore creates a reset token store with the given token lifetime.
func NewResetTokenStore(rdb *redis.Client, ttl time.Duration) *ResetTokenStore {
	return &ResetTokenStore{rdb: rdb, ttl: ttl}
}

// Issue creates a one-time reset token for the user and stores it with TTL.
func (s *ResetTokenStore) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	token := hex.EncodeToString(buf)
	if err := s.rdb.Set(ctx, resetKeyPrefix+token, userID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}
	return token, nil
}

// Consume validates a reset token and deletes it so it cannot be reused.
// Returns uuid.Nil when the token is unknown or expired.
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	key := resetKeyPrefix + token
	val, err := s.rdb.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("lookup reset token: %w", err)
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse reset token value: %w", err)
	}
	return userID, nil
}
