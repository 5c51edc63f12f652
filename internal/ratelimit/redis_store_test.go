package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pollbase/pkg/logger"
	"pollbase/pkg/redis"
)

func setupRedisStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisStore(client)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	_, store := setupRedisStore(t)
	ctx := context.Background()

	reset := time.Now().Add(time.Minute).UTC().Truncate(time.Second)
	entry := Entry{Count: 2, ResetTime: reset}

	require.NoError(t, store.Set(ctx, "auth:1.2.3.4", entry, time.Minute))

	got, found, err := store.Get(ctx, "auth:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, got.Count)
	assert.True(t, got.ResetTime.Equal(reset))
}

func TestRedisStoreMissingKey(t *testing.T) {
	_, store := setupRedisStore(t)

	_, found, err := store.Get(context.Background(), "auth:nobody")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStoreEntryExpires(t *testing.T) {
	mr, store := setupRedisStore(t)
	ctx := context.Background()

	entry := Entry{Count: 1, ResetTime: time.Now().Add(time.Second)}
	require.NoError(t, store.Set(ctx, "api:1.2.3.4", entry, time.Second))

	mr.FastForward(2 * time.Second)

	_, found, err := store.Get(ctx, "api:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, found, "entry should expire with its TTL")
}

func TestLimiterWithRedisStore(t *testing.T) {
	_, store := setupRedisStore(t)
	l := New(store, logger.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res := l.Check(ctx, "1.2.3.4", ClassPollCreation)
		assert.True(t, res.Allowed, "call %d", i+1)
	}

	res := l.Check(ctx, "1.2.3.4", ClassPollCreation)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
}
