package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const (
	RequestIDKey    contextKey = "request_id"
	RequestIDHeader            = "X-Request-ID"
)

// RequestID returns the id attached by RequestLogging, or "" outside a request.
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(RequestIDKey).(string); ok {
		return rid
	}
	return ""
}

func requestIDFrom(r *http.Request) string {
	if rid := r.Header.Get(RequestIDHeader); rid != "" && len(rid) <= 64 {
		return rid
	}
	return uuid.NewString()
}
