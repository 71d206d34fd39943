package domain

import (
	"time"

	"github.com/google/uuid"
)

// BackfillArea is the sampling plan for one BoundaryRectangle.
// It is derived per run, consumed once by the backfill loop and never persisted.
type BackfillArea struct {
	Index        int
	Rectangle    BoundaryRectangle
	Width        float64 // meters, upper-left -> upper-right
	Height       float64 // meters, upper-right -> lower-right
	CenterPoints []Point
	Radius       float64 // meters
}

// SearchRadius is the radius sent to the place search: truncated toward zero.
func (a BackfillArea) SearchRadius() int { return int(a.Radius) }

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeSkipped
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// PointOutcome is the result of searching around a single center point.
// A skipped point contributes no places and carries the reason it was skipped.
type PointOutcome struct {
	AreaIndex  int
	PointIndex int
	Center     Point
	Kind       OutcomeKind
	Places     []Place
	Reason     error
}

func SuccessOutcome(places []Place) PointOutcome {
	return PointOutcome{Kind: OutcomeSuccess, Places: places}
}

func SkippedOutcome(reason error) PointOutcome {
	return PointOutcome{Kind: OutcomeSkipped, Reason: reason}
}

// BackfillReport aggregates one backfill run.
// Places is append-only and keeps query order; duplicates seen from overlapping
// circles are kept unless deduplication was requested.
type BackfillReport struct {
	RunID      uuid.UUID
	PlaceType  string
	Areas      []BackfillArea
	Outcomes   []PointOutcome
	Places     []Place
	StartedAt  time.Time
	FinishedAt time.Time
}

func (r *BackfillReport) Searched() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Kind == OutcomeSuccess {
			n++
		}
	}
	return n
}

func (r *BackfillReport) Skipped() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Kind == OutcomeSkipped {
			n++
		}
	}
	return n
}

// TotalCenterPoints counts the center points planned across all areas.
func (r *BackfillReport) TotalCenterPoints() int {
	n := 0
	for _, a := range r.Areas {
		n += len(a.CenterPoints)
	}
	return n
}
