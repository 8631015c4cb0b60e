package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type store interface {
	SetRateLimit(ctx context.Context, key string, ttl time.Duration) error
	CheckRateLimit(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Take(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

func newRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisClient(mr.Addr(), "", 0, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func exerciseStore(t *testing.T, s store) {
	ctx := context.Background()

	v, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, s.Set(ctx, "k", "v", time.Minute))
	v, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	v, err = s.Take(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
	v, err = s.Take(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "", v, "second take must miss")

	limited, err := s.CheckRateLimit(ctx, "rl")
	require.NoError(t, err)
	assert.False(t, limited)
	require.NoError(t, s.SetRateLimit(ctx, "rl", time.Minute))
	limited, err = s.CheckRateLimit(ctx, "rl")
	require.NoError(t, err)
	assert.True(t, limited)

	require.NoError(t, s.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, s.Del(ctx, "a", "rl"))
	v, _ = s.Get(ctx, "a")
	assert.Equal(t, "", v)
	limited, _ = s.CheckRateLimit(ctx, "rl")
	assert.False(t, limited)
}

func TestRedisClient(t *testing.T) {
	c, _ := newRedis(t)
	exerciseStore(t, c)
}

func TestRedisClient_TTL(t *testing.T) {
	c, mr := newRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "otp", "code", time.Minute))
	mr.FastForward(2 * time.Minute)

	v, err := c.Get(ctx, "otp")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestMemoryCache(t *testing.T) {
	exerciseStore(t, NewMemoryCache())
}

func TestMemoryCache_TTL(t *testing.T) {
	m := NewMemoryCache()
	now := time.Now()
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "otp", "code", time.Minute))
	now = now.Add(2 * time.Minute)

	v, err := m.Take(ctx, "otp")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}
