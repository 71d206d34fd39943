package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"place-backfill-service/internal/domain"
	"place-backfill-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultSearchCacheTTL = 24 * time.Hour

// RedisSearchCache stores nearby search results as JSON under a key prefix.
// Entries expire after TTL; a zero TTL keeps them until evicted.
type RedisSearchCache struct {
	Client *redis.Client
	Prefix string
	TTL    time.Duration
}

func NewRedisSearchCache(client *redis.Client, ttl time.Duration) *RedisSearchCache {
	return &RedisSearchCache{Client: client, Prefix: "backfill:", TTL: ttl}
}

// Fetch the cached places for key. A missing key is not an error.
func (r *RedisSearchCache) Get(ctx context.Context, key string) (_ []domain.Place, _ bool, err error) {
	defer obs.Time(ctx, "search.cache.Get")(&err)

	if r.Client == nil {
		return nil, false, errors.New("search cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("search cache: empty key")
	}

	b, err := r.Client.Get(ctx, r.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get search cache key=%q: %w", key, err)
	}

	var places []domain.Place
	if err := json.Unmarshal(b, &places); err != nil {
		return nil, false, fmt.Errorf("get search cache key=%q: decode: %w", key, err)
	}
	if places == nil {
		places = []domain.Place{}
	}

	return places, true, nil
}

// Store places under key, replacing any previous entry.
func (r *RedisSearchCache) Put(ctx context.Context, key string, places []domain.Place) (err error) {
	defer obs.Time(ctx, "search.cache.Put")(&err)

	if r.Client == nil {
		return errors.New("search cache: redis client is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("search cache: empty key")
	}
	if places == nil {
		places = []domain.Place{}
	}

	b, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("put search cache key=%q: encode: %w", key, err)
	}

	if err := r.Client.Set(ctx, r.Prefix+key, b, r.TTL).Err(); err != nil {
		return fmt.Errorf("put search cache key=%q: %w", key, err)
	}

	return nil
}
