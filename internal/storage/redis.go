// AngelaMos | 2026
// redis.go

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSlot stores the document under a single redis key.
type RedisSlot struct {
	client *redis.Client
	key    string
}

func NewRedisSlot(client *redis.Client, key string) *RedisSlot {
	return &RedisSlot{client: client, key: key}
}

func (s *RedisSlot) Load(ctx context.Context) ([]byte, error) {
	doc, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %q: %w", s.key, err)
	}

	return doc, nil
}

func (s *RedisSlot) Save(ctx context.Context, doc []byte) error {
	if err := s.client.Set(ctx, s.key, doc, 0).Err(); err != nil {
		return fmt.Errorf("save slot %q: %w", s.key, err)
	}

	return nil
}
