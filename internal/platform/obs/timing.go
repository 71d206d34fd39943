package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const (
	RequestIDKey ctxKey = "req_id"
	RunIDKey     ctxKey = "run_id"
)

func WithRequestID(ctx context.Context, reqID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, reqID)
}

// WithRunID tags the context so timings logged below it carry the backfill run.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)
	runID, _ := ctx.Value(RunIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s run_id=%s op=%s dur=%dms err=%v", reqID, runID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s run_id=%s op=%s dur=%dms", reqID, runID, name, dur.Milliseconds())
	}
}
