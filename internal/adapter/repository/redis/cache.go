package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "gobank:"

// Cache implements usecase.Cache using Redis. All keys share a common
// prefix so the keyspace can be cleared without touching other tenants.
type Cache struct {
	client *redis.Client
	prefix string
}

// NewCache creates a new Cache with the default key prefix.
func NewCache(client *redis.Client) *Cache {
	return NewCacheWithPrefix(client, defaultPrefix)
}

// NewCacheWithPrefix creates a new Cache with a custom key prefix.
func NewCacheWithPrefix(client *redis.Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves a value by key. Returns redis.Nil on a miss.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, c.prefix+key).Result()
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
