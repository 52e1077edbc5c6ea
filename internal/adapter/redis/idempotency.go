package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyKeyPrefix = "idempotency:order:"
	idempotencyKeyTTL    = 24 * time.Hour
)

type IdempotencyStore struct {
	client *redis.Client
}

func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

func (s *IdempotencyStore) Claim(ctx context.Context, key string) (bool, error) {
	return s.client.SetNX(ctx, idempotencyKeyPrefix+key, 1, idempotencyKeyTTL).Result()
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}
