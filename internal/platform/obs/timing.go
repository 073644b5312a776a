package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID attaches a request ID so timing lines can be correlated.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID returns the request ID on ctx, or "-" when there is none.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		return id
	}
	return "-"
}

// Time logs the duration of an operation when the returned func is deferred.
// Graph searches finish in microseconds, so durations are logged in µs.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dus err=%v", reqID, name, dur.Microseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dus", reqID, name, dur.Microseconds())
	}
}
