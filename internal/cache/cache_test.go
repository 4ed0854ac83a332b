package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute, nil), mr
}

func TestDisabledCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	c := New(nil, time.Minute, nil)
	assert.False(t, c.Enabled())

	c.Set(ctx, "attention_profiles", []string{"a"})
	var got []string
	assert.False(t, c.Get(ctx, "attention_profiles", &got))
	assert.Empty(t, got)
	c.Forget(ctx, "attention_profiles")

	var nilCache *Cache
	assert.False(t, nilCache.Enabled())
	assert.False(t, nilCache.Get(ctx, "x", &got))
}

type entry struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)
	require.True(t, c.Enabled())

	var got []entry
	assert.False(t, c.Get(ctx, "rooms", &got), "empty cache is a miss")

	c.Set(ctx, "rooms", []entry{{ID: 1, Name: "Hall A"}})
	assert.True(t, mr.Exists(keyPrefix+"rooms"))
	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"rooms"))

	require.True(t, c.Get(ctx, "rooms", &got))
	assert.Equal(t, []entry{{ID: 1, Name: "Hall A"}}, got)

	c.Set(ctx, "services", []entry{})
	c.Forget(ctx, "rooms", "services")
	assert.False(t, mr.Exists(keyPrefix+"rooms"))
	assert.False(t, mr.Exists(keyPrefix+"services"))
	assert.False(t, c.Get(ctx, "rooms", &got))
}

func TestRedisCacheCorruptValueIsMiss(t *testing.T) {
	c, mr := newRedisCache(t)
	require.NoError(t, mr.Set(keyPrefix+"rooms", "{not json"))

	var got []entry
	assert.False(t, c.Get(context.Background(), "rooms", &got))
}

func TestRedisCacheUnavailableIsMiss(t *testing.T) {
	c, mr := newRedisCache(t)
	mr.Close()

	var got []entry
	assert.False(t, c.Get(context.Background(), "rooms", &got))
	c.Set(context.Background(), "rooms", []entry{{ID: 1}})
}
