package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS backfill_runs (
		run_id UUID PRIMARY KEY,
		place_type TEXT NOT NULL,
		area_count INTEGER NOT NULL,
		center_point_count INTEGER NOT NULL,
		searched_count INTEGER NOT NULL,
		skipped_count INTEGER NOT NULL,
		place_count INTEGER NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	);
	`

	createPlacesQuery := `
	CREATE TABLE IF NOT EXISTS places (
		run_id UUID NOT NULL REFERENCES backfill_runs(run_id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		place_id TEXT NOT NULL,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		icon TEXT NOT NULL DEFAULT '',
		vicinity TEXT NOT NULL DEFAULT '',
		types TEXT NOT NULL DEFAULT '', -- comma separated
		rating DOUBLE PRECISION,
		PRIMARY KEY (run_id, position)
	);
	`

	createSearchCacheQuery := `
	CREATE TABLE IF NOT EXISTS search_cache (
		cache_key TEXT PRIMARY KEY,
		places JSONB NOT NULL,
		expires_at TIMESTAMPTZ
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_places_place_id
	ON places(place_id);
	`

	statements := []string{
		createRunsQuery,
		createPlacesQuery,
		createSearchCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
