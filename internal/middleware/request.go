package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"eventfinder/pkg/telemetry"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type contextKey string

const (
	RequestIDContextKey contextKey = "request_id"

	RequestIDHeader = "X-Request-ID"
)

// RequestMiddleware tags each request with an id (reusing the caller's
// X-Request-ID when present), opens a span and writes an access log line.
func RequestMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			ctx, span := telemetry.Global().T().Start(r.Context(), "RequestMiddleware")
			defer span.End()

			span.SetAttributes(
				attribute.String("request_id", requestID),
				attribute.String("method", r.Method),
				attribute.String("url", r.URL.String()),
			)

			ctx = context.WithValue(ctx, RequestIDContextKey, requestID)
			metrics := httpsnoop.CaptureMetrics(next, w, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("status", metrics.Code))
			slog.InfoContext(ctx, "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", metrics.Code,
				"bytes", metrics.Written,
				"duration", metrics.Duration,
				"request_id", requestID,
			)
		})
	}
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDContextKey).(string)
	return id, ok
}
