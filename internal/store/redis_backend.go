package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores each collection document under <prefix>:<collection>.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend constructs a redis-backed store backend.
func NewRedisBackend(client *redis.Client, prefix string) (*RedisBackend, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client must not be nil")
	}
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = "activities"
	}
	return &RedisBackend{client: client, prefix: prefix}, nil
}

// Key returns the redis key holding collection.
func (b *RedisBackend) Key(collection string) string {
	return b.prefix + ":" + collection
}

func (b *RedisBackend) Read(ctx context.Context, collection string) ([]byte, error) {
	key := b.Key(collection)
	payload, err := b.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		if err := b.client.SetNX(ctx, key, emptyCollection, 0).Err(); err != nil {
			return nil, err
		}
		return b.client.Get(ctx, key).Bytes()
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (b *RedisBackend) Write(ctx context.Context, collection string, payload []byte) error {
	return b.client.Set(ctx, b.Key(collection), payload, 0).Err()
}
