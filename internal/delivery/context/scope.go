// Package context carries per-request values from the HTTP layer down to use cases.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is read from the request and echoed on the response.
const HeaderXRequestID = echo.HeaderXRequestID

type scopeKey int

const (
	requestIDKey scopeKey = iota
	loggerKey
)

// WithRequestScope stores the request id and, when non-nil, the request-scoped logger.
func WithRequestScope(ctx context.Context, requestID string, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	if logger != nil {
		ctx = context.WithValue(ctx, loggerKey, logger)
	}

	return ctx
}

// RequestID returns the id stored by WithRequestScope, or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)

	return id
}

// Logger returns the request-scoped logger, or fallback outside a request.
func Logger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}

	return fallback
}
