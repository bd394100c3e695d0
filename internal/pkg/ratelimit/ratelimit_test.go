package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterAllowUntilQuota(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "assist:anthropic")
		require.NoError(t, err)
		assert.True(t, ok, "call %d should be allowed", i+1)
	}

	ok, err := limiter.Allow(ctx, "assist:anthropic")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLimiterBucketsAreIndependent(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), 1)
	ctx := context.Background()

	ok, _ := limiter.Allow(ctx, "assist:anthropic")
	assert.True(t, ok)
	ok, _ = limiter.Allow(ctx, "assist:anthropic")
	assert.False(t, ok)

	ok, _ = limiter.Allow(ctx, "assist:openai")
	assert.True(t, ok)
}

func TestLimiterZeroLimitDisables(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), 0)
	for i := 0; i < 10; i++ {
		ok, err := limiter.Allow(context.Background(), "assist:anthropic")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestHourKey(t *testing.T) {
	at := time.Date(2026, 8, 31, 14, 59, 0, 0, time.UTC)
	assert.Equal(t, "assist:anthropic:2026083114", HourKey("assist:anthropic", at))

	// next hour rolls the key, resetting the counter
	assert.Equal(t, "assist:anthropic:2026083115", HourKey("assist:anthropic", at.Add(time.Minute)))
}

func TestMemoryStoreTTL(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	n, err := store.Incr(ctx, "k", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, _ = store.Incr(ctx, "k", time.Millisecond)
	assert.Equal(t, int64(2), n)

	time.Sleep(5 * time.Millisecond)

	n, _ = store.Incr(ctx, "k", time.Millisecond)
	assert.Equal(t, int64(1), n, "expired counter should restart")
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client)
	ctx := context.Background()

	n, err := store.Incr(ctx, "assist:gemini:2026083114", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.Incr(ctx, "assist:gemini:2026083114", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// TTL was set on first increment
	assert.Greater(t, mr.TTL("assist:gemini:2026083114"), time.Duration(0))

	mr.FastForward(2 * time.Hour)

	n, err = store.Incr(ctx, "assist:gemini:2026083114", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "expired key restarts the count")
}

func TestLimiterWithRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewLimiter(NewRedisStore(client), 2)
	ctx := context.Background()

	ok, err := limiter.Allow(ctx, "assist:anthropic")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = limiter.Allow(ctx, "assist:anthropic")
	assert.True(t, ok)

	ok, _ = limiter.Allow(ctx, "assist:anthropic")
	assert.False(t, ok)
}
