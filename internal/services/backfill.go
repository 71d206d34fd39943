package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"place-backfill-service/internal/domain"
	"place-backfill-service/internal/platform/obs"
	"place-backfill-service/internal/ports"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultPace is the delay after every center point query.
const DefaultPace = time.Second

type BackfillRequest struct {
	Credential string
	PlaceType  string
	Rectangles []domain.BoundaryRectangle
	MaxRadius  float64
	// MaxCenterPoints caps the searches planned across all rectangles. 0 disables the cap.
	MaxCenterPoints int
	Verbose         bool
	// Dedupe drops repeated place IDs from the aggregate. Off by default:
	// overlapping circles legitimately return the same place more than once.
	Dedupe bool
}

// ScanError is a non-recoverable search failure together with the point that was in flight.
type ScanError struct {
	AreaIndex  int
	PointIndex int
	Center     domain.Point
	Err        error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("backfill: area %d point %d (%s): %v", e.AreaIndex, e.PointIndex, e.Center, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// Backfiller drives nearby searches over the grid of every boundary rectangle.
//
// With Workers <= 1 it runs one query at a time, rectangle by rectangle, and
// sleeps Pace after each query whether it succeeded or was skipped.
// With Workers > 1 queries run concurrently behind a limiter shared by all
// workers; the aggregate still follows grid order.
type Backfiller struct {
	Searcher ports.PlaceSearcher
	Pace     time.Duration
	Workers  int
	// Sleep blocks for the pacing delay. Defaults to time.Sleep.
	Sleep func(time.Duration)
	// Now is the clock used for report timestamps. Defaults to time.Now.
	Now func() time.Time
}

func NewBackfiller(searcher ports.PlaceSearcher) *Backfiller {
	return &Backfiller{
		Searcher: searcher,
		Pace:     DefaultPace,
		Workers:  1,
		Sleep:    time.Sleep,
		Now:      time.Now,
	}
}

// SearchAllAreas runs a backfill and returns only the aggregated places.
// On a terminating error the places gathered so far are returned with it.
func (b *Backfiller) SearchAllAreas(
	ctx context.Context,
	credential string,
	placeType string,
	rects []domain.BoundaryRectangle,
	maxRadius float64,
	verbose bool,
) ([]domain.Place, error) {
	report, err := b.Run(ctx, BackfillRequest{
		Credential: credential,
		PlaceType:  placeType,
		Rectangles: rects,
		MaxRadius:  maxRadius,
		Verbose:    verbose,
	})
	if report == nil {
		return nil, err
	}
	return report.Places, err
}

// Run plans every rectangle and searches around each of its center points.
//
// A search that exhausted its retry budget skips that point only. Any other
// search error stops the run and is returned as a *ScanError alongside the
// partial report. Grid planning errors abort before any query is issued.
func (b *Backfiller) Run(ctx context.Context, req BackfillRequest) (*domain.BackfillReport, error) {
	if b.Searcher == nil {
		return nil, errors.New("backfill: searcher is nil")
	}
	if strings.TrimSpace(req.PlaceType) == "" {
		return nil, errors.New("backfill: place type must be non-empty")
	}

	maxRadius := req.MaxRadius
	if maxRadius == 0 {
		maxRadius = DefaultMaxBackfillRadius
	}

	report := &domain.BackfillReport{
		RunID:     uuid.New(),
		PlaceType: req.PlaceType,
		StartedAt: b.now(),
	}
	ctx = obs.WithRunID(ctx, report.RunID.String())

	areas, err := BuildBackfillAreasCapped(req.Rectangles, maxRadius, req.MaxCenterPoints)
	if err != nil {
		report.FinishedAt = b.now()
		return report, fmt.Errorf("backfill: %w", err)
	}
	report.Areas = areas

	if b.Workers > 1 {
		err = b.runParallel(ctx, req, report)
	} else {
		err = b.runSequential(ctx, req, report)
	}

	if req.Dedupe {
		report.Places = DedupePlaces(report.Places)
	}
	report.FinishedAt = b.now()

	if req.Verbose {
		logPlaces(report.Places)
	}

	return report, err
}

func (b *Backfiller) runSequential(ctx context.Context, req BackfillRequest, report *domain.BackfillReport) error {
	for _, area := range report.Areas {
		if req.Verbose {
			logArea(area)
		}

		for i, center := range area.CenterPoints {
			outcome, err := b.searchPoint(ctx, req, area, i+1, center)
			if err != nil {
				return err
			}

			report.Outcomes = append(report.Outcomes, outcome)
			report.Places = append(report.Places, outcome.Places...)

			b.sleep(b.Pace)
		}
	}
	return nil
}

type pointJob struct {
	area       domain.BackfillArea
	pointIndex int
	center     domain.Point
}

func (b *Backfiller) runParallel(ctx context.Context, req BackfillRequest, report *domain.BackfillReport) error {
	jobs := make([]pointJob, 0, report.TotalCenterPoints())
	for _, area := range report.Areas {
		if req.Verbose {
			logArea(area)
		}
		for i, c := range area.CenterPoints {
			jobs = append(jobs, pointJob{area: area, pointIndex: i + 1, center: c})
		}
	}

	limit := rate.Inf
	if b.Pace > 0 {
		limit = rate.Every(b.Pace)
	}
	limiter := rate.NewLimiter(limit, 1)

	// One slot per job keeps the aggregate in grid order regardless of completion order.
	slots := make([]*domain.PointOutcome, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Workers)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}

		i, job := i, job
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return err
			}

			outcome, err := b.searchPoint(gctx, req, job.area, job.pointIndex, job.center)
			if err != nil {
				return err
			}
			slots[i] = &outcome
			return nil
		})
	}

	err := g.Wait()

	for _, o := range slots {
		if o == nil {
			continue
		}
		report.Outcomes = append(report.Outcomes, *o)
		report.Places = append(report.Places, o.Places...)
	}

	return err
}

// searchPoint issues one nearby search and classifies the result.
// Only a non-skippable failure is returned as an error.
func (b *Backfiller) searchPoint(
	ctx context.Context,
	req BackfillRequest,
	area domain.BackfillArea,
	pointIndex int,
	center domain.Point,
) (domain.PointOutcome, error) {
	radius := area.SearchRadius()

	if req.Verbose {
		log.Printf("nearby search area=%d point=%d center=%s radius=%d", area.Index, pointIndex, center, radius)
	}

	places, err := b.Searcher.NearbySearch(ctx, ports.NearbySearchRequest{
		Credential:   req.Credential,
		Center:       center,
		PlaceType:    req.PlaceType,
		RadiusMeters: radius,
	})

	var outcome domain.PointOutcome
	switch {
	case err == nil:
		outcome = domain.SuccessOutcome(places)
	case errors.Is(err, ports.ErrRetryBudgetExhausted):
		// A different center point may still succeed.
		if req.Verbose {
			log.Printf("nearby search skipped area=%d point=%d center=%s radius=%d err=%v",
				area.Index, pointIndex, center, radius, err)
		}
		outcome = domain.SkippedOutcome(err)
	default:
		return domain.PointOutcome{}, &ScanError{
			AreaIndex:  area.Index,
			PointIndex: pointIndex,
			Center:     center,
			Err:        err,
		}
	}

	outcome.AreaIndex = area.Index
	outcome.PointIndex = pointIndex
	outcome.Center = center
	return outcome, nil
}

func (b *Backfiller) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if b.Sleep != nil {
		b.Sleep(d)
		return
	}
	time.Sleep(d)
}

func (b *Backfiller) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// DedupePlaces keeps the first occurrence of every place ID.
// Places without an ID are never considered duplicates.
func DedupePlaces(places []domain.Place) []domain.Place {
	seen := make(map[string]struct{}, len(places))
	out := make([]domain.Place, 0, len(places))
	for _, p := range places {
		if p.PlaceID != "" {
			if _, ok := seen[p.PlaceID]; ok {
				continue
			}
			seen[p.PlaceID] = struct{}{}
		}
		out = append(out, p)
	}
	return out
}

func logArea(area domain.BackfillArea) {
	log.Printf(
		"backfill area=%d width=%.1fm height=%.1fm center_points=%d radius=%.1fm",
		area.Index, area.Width, area.Height, len(area.CenterPoints), area.Radius,
	)
}

func logPlaces(places []domain.Place) {
	if len(places) == 0 {
		log.Printf("backfill total=0: no results found in nearby responses")
		return
	}

	log.Printf("backfill total=%d", len(places))
	for i, p := range places {
		log.Printf("index=%d name=%q location=%s place_id=%s icon=%s", i+1, p.Name, p.Location, p.PlaceID, p.Icon)
	}
}
