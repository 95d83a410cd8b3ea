package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"planets-api/internal/shared/redis"

	goredis "github.com/redis/go-redis/v9"
)

// ResetTokenStore holds outstanding password-reset tokens. Tokens expire
// after their TTL and are single-use: Consume removes the token it returns.
type ResetTokenStore interface {
	Save(ctx context.Context, token string, userID int, ttl time.Duration) error
	Consume(ctx context.Context, token string) (int, bool, error)
}

// NewResetToken returns a 32-byte random token, hex encoded.
func NewResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

const resetKeyPrefix = "reset_token:"

type redisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore stores reset tokens in redis with a TTL.
func NewRedisTokenStore(client *redis.Client) ResetTokenStore {
	return &redisTokenStore{client: client}
}

func (s *redisTokenStore) Save(ctx context.Context, token string, userID int, ttl time.Duration) error {
	if err := s.client.Set(ctx, resetKeyPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	return nil
}

func (s *redisTokenStore) Consume(ctx context.Context, token string) (int, bool, error) {
	userID, err := s.client.GetDel(ctx, resetKeyPrefix+token).Int()
	if err != nil {
		if err == goredis.Nil {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to look up reset token: %w", err)
	}
	return userID, true, nil
}

type memoryEntry struct {
	userID    int
	expiresAt time.Time
}

type memoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryEntry
}

// NewMemoryTokenStore is the in-process fallback used when redis is
// disabled. Tokens do not survive a restart.
func NewMemoryTokenStore() ResetTokenStore {
	return &memoryTokenStore{tokens: make(map[string]memoryEntry)}
}

func (s *memoryTokenStore) Save(_ context.Context, token string, userID int, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *memoryTokenStore) Consume(_ context.Context, token string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tokens[token]
	if !ok {
		return 0, false, nil
	}
	delete(s.tokens, token)

	if time.Now().After(entry.expiresAt) {
		return 0, false, nil
	}
	return entry.userID, true, nil
}
