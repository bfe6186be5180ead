package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps slots as plain Redis strings.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore constructs a RedisStore. Keys are namespaced under "store:".
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "store:"}
}

// Get returns the slot value or ErrSlotNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("store/redis: get %s: %w", key, err)
	}
	return value, nil
}

// Set overwrites the slot without expiry.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("store/redis: set %s: %w", key, err)
	}
	return nil
}

// Delete removes the slot. Missing slots are not an error.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("store/redis: delete %s: %w", key, err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
