package redis

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "accounts:client:c1", `[{"ID":"a1"}]`, time.Minute))

	val, err := cache.Get(ctx, "accounts:client:c1")
	require.NoError(t, err)
	require.Equal(t, `[{"ID":"a1"}]`, val)
}

func TestCacheGetMissing(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)

	_, err := cache.Get(context.Background(), "nope")
	require.ErrorIs(t, err, redislib.Nil)
}

func TestCacheDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))
	require.NoError(t, cache.Delete(ctx, "key"))

	_, err := cache.Get(ctx, "key")
	require.ErrorIs(t, err, redislib.Nil)
}

func TestCacheAppliesPrefix(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCacheWithPrefix(client, "test:")
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))

	got, err := mr.Get("test:key")
	require.NoError(t, err)
	require.Equal(t, "value", got)
}

func TestCacheExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "key", "value", time.Second))

	mr.FastForward(2 * time.Second)

	_, err := cache.Get(ctx, "key")
	require.ErrorIs(t, err, redislib.Nil)
}
