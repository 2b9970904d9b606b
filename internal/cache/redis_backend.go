package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultHashKey = "filmcache"

// RedisBackend keeps the table in a single redis hash, one field per key.
type RedisBackend struct {
	client  *redis.Client
	hashKey string
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client, hashKey: defaultHashKey}
}

// Load all entries from the hash
func (b *RedisBackend) Load(ctx context.Context, fn func(key string, raw []byte)) error {
	iter := b.client.HScan(ctx, b.hashKey, 0, "", 100).Iterator()
	for iter.Next(ctx) {
		field := iter.Val()
		if !iter.Next(ctx) {
			break
		}
		fn(field, []byte(iter.Val()))
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cache hash %s: %w", b.hashKey, err)
	}
	return nil
}

func (b *RedisBackend) Save(ctx context.Context, key string, raw []byte) error {
	if err := b.client.HSet(ctx, b.hashKey, key, raw).Err(); err != nil {
		return fmt.Errorf("failed to set cache entry in redis: %w", err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := b.client.HDel(ctx, b.hashKey, key).Err(); err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	return nil
}

// Ping connectivity
func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}
