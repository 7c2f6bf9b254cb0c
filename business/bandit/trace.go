package bandit

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const TraceIDKey ctxKey = "trace_id"

// NewTraceID returns a fresh run identifier.
func NewTraceID() string {
	return uuid.NewString()
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

func TraceIDFromContext(ctx context.Context) string {
	if v := ctx.Value(TraceIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
