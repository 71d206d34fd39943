package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"place-backfill-service/internal/domain"
	"place-backfill-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLSearchCache is a Postgres-backed SearchCache used when no Redis is configured.
// Rows past expires_at are treated as misses and overwritten on the next Put.
type SQLSearchCache struct {
	DB  *sql.DB
	TTL time.Duration
	now func() time.Time
}

func NewSQLSearchCache(db *sql.DB, ttl time.Duration) *SQLSearchCache {
	return &SQLSearchCache{DB: db, TTL: ttl, now: time.Now}
}

// Fetch cached places for key.
func (s *SQLSearchCache) Get(ctx context.Context, key string) (_ []domain.Place, _ bool, err error) {
	defer obs.Time(ctx, "search.cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("search cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("search cache: empty key")
	}

	q := `
	SELECT places
	FROM search_cache
	WHERE cache_key = $1
	  AND (expires_at IS NULL OR expires_at > $2);
	`

	var raw []byte
	err = s.DB.QueryRowContext(ctx, q, key, s.clock()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get search cache: query search_cache table: %w", err)
	}

	var places []domain.Place
	if err := json.Unmarshal(raw, &places); err != nil {
		return nil, false, fmt.Errorf("get search cache: decode key=%q: %w", key, err)
	}
	if places == nil {
		places = []domain.Place{}
	}

	return places, true, nil
}

// Store places for key, replacing any previous entry.
func (s *SQLSearchCache) Put(ctx context.Context, key string, places []domain.Place) (err error) {
	defer obs.Time(ctx, "search.cache.sql.Put")(&err)

	if s.DB == nil {
		return errors.New("search cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert search cache: empty key")
	}
	if places == nil {
		places = []domain.Place{}
	}

	raw, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("insert search cache key=%q: encode: %w", key, err)
	}

	var expiresAt sql.NullTime
	if s.TTL > 0 {
		expiresAt = sql.NullTime{Time: s.clock().Add(s.TTL), Valid: true}
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO search_cache (cache_key, places, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET places = EXCLUDED.places,
		expires_at = EXCLUDED.expires_at;
	`, key, string(raw), expiresAt)
	if err != nil {
		return fmt.Errorf("insert search cache key=%q: %w", key, err)
	}

	return nil
}

func (s *SQLSearchCache) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
