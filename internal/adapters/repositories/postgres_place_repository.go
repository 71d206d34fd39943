package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"place-backfill-service/internal/domain"
	"place-backfill-service/internal/platform/obs"
	"strings"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the PlaceRepository port.
type PostgresPlaceRepository struct{ DB *sql.DB }

func NewPostgresPlaceRepository(db *sql.DB) *PostgresPlaceRepository {
	return &PostgresPlaceRepository{DB: db}
}

// Record (or refresh) the summary row of a backfill run.
func (p *PostgresPlaceRepository) SaveRun(ctx context.Context, report *domain.BackfillReport) (err error) {
	defer obs.Time(ctx, "repo.SaveRun")(&err)

	if p.DB == nil {
		return errors.New("postgres place repository: DB is nil")
	}
	if report == nil {
		return errors.New("save run: report is nil")
	}

	_, err = p.DB.ExecContext(ctx, `
	INSERT INTO backfill_runs (
		run_id,
		place_type,
		area_count,
		center_point_count,
		searched_count,
		skipped_count,
		place_count,
		started_at,
		finished_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (run_id) DO UPDATE
	SET searched_count = EXCLUDED.searched_count,
		skipped_count = EXCLUDED.skipped_count,
		place_count = EXCLUDED.place_count,
		finished_at = EXCLUDED.finished_at;
	`,
		report.RunID.String(),
		report.PlaceType,
		len(report.Areas),
		report.TotalCenterPoints(),
		report.Searched(),
		report.Skipped(),
		len(report.Places),
		report.StartedAt,
		report.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("save run run_id=%s: %w", report.RunID, err)
	}

	return nil
}

// Store places for a run, replacing anything stored for it before.
// Row position preserves aggregate order, duplicates included.
func (p *PostgresPlaceRepository) SavePlaces(ctx context.Context, runID uuid.UUID, places []domain.Place) (err error) {
	defer obs.Time(ctx, "repo.SavePlaces")(&err)

	if p.DB == nil {
		return errors.New("postgres place repository: DB is nil")
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save places: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM places WHERE run_id = $1;`, runID.String()); err != nil {
		return fmt.Errorf("save places: clear run_id=%s: %w", runID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO places (
		run_id,
		position,
		place_id,
		name,
		lat,
		lng,
		icon,
		vicinity,
		types,
		rating
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`)
	if err != nil {
		return fmt.Errorf("save places: db prepare: %w", err)
	}
	defer stmt.Close()

	for i, pl := range places {
		var rating sql.NullFloat64
		if pl.Rating != nil {
			rating = sql.NullFloat64{Float64: *pl.Rating, Valid: true}
		}

		if _, err := stmt.ExecContext(
			ctx,
			runID.String(),
			i+1,
			pl.PlaceID,
			pl.Name,
			pl.Location.Lat,
			pl.Location.Lng,
			pl.Icon,
			pl.Vicinity,
			strings.Join(pl.Types, ","),
			rating,
		); err != nil {
			return fmt.Errorf("save places: insert position=%d place_id=%q: %w", i+1, pl.PlaceID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save places commit: %w", err)
	}

	return nil
}

// Return all places stored for a run in aggregate order.
func (p *PostgresPlaceRepository) ListPlaces(ctx context.Context, runID uuid.UUID) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "repo.ListPlaces")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres place repository: DB is nil")
	}

	query := `
	SELECT
		place_id,
		name,
		lat,
		lng,
		icon,
		vicinity,
		types,
		rating
	FROM places
	WHERE run_id = $1
	ORDER BY position;
	`
	rows, err := p.DB.QueryContext(ctx, query, runID.String())
	if err != nil {
		return nil, fmt.Errorf("list places: query places table: %w", err)
	}
	defer rows.Close()

	places := make([]domain.Place, 0, 64)
	for rows.Next() {
		var pl domain.Place
		var types string
		var rating sql.NullFloat64
		err := rows.Scan(
			&pl.PlaceID,
			&pl.Name,
			&pl.Location.Lat,
			&pl.Location.Lng,
			&pl.Icon,
			&pl.Vicinity,
			&types,
			&rating,
		)
		if err != nil {
			return nil, fmt.Errorf("list places: scan row: %w", err)
		}
		if types != "" {
			pl.Types = strings.Split(types, ",")
		}
		if rating.Valid {
			r := rating.Float64
			pl.Rating = &r
		}
		places = append(places, pl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list places: row iteration: %w", err)
	}

	return places, nil
}
