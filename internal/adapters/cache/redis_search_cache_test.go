package cache

import (
	"context"
	"place-backfill-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisSearchCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSearchCache(client, ttl), mr
}

func TestRedisSearchCacheRoundTrip(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Hour)
	ctx := context.Background()

	rating := 4.5
	want := []domain.Place{
		{PlaceID: "a", Name: "Cafe A", Location: domain.Point{Lat: 1, Lng: 2}, Rating: &rating},
		{PlaceID: "b", Name: "Cafe B"},
	}

	require.NoError(t, c.Put(ctx, "nearby:cafe:1,2:500", want))
	assert.True(t, mr.Exists("backfill:nearby:cafe:1,2:500"))

	got, ok, err := c.Get(ctx, "nearby:cafe:1,2:500")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestRedisSearchCacheMiss(t *testing.T) {
	c, _ := newTestRedisCache(t, time.Hour)

	got, ok, err := c.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRedisSearchCacheEmptyResultIsAHit(t *testing.T) {
	c, _ := newTestRedisCache(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "empty", nil))

	got, ok, err := c.Get(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestRedisSearchCacheExpires(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "k", []domain.Place{{PlaceID: "x"}}))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSearchCacheRejectsEmptyKey(t *testing.T) {
	c, _ := newTestRedisCache(t, time.Hour)

	_, _, err := c.Get(context.Background(), " ")
	assert.Error(t, err)
	assert.Error(t, c.Put(context.Background(), "", nil))
}
