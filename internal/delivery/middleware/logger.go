package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"authgate/config"
	deliverycontext "authgate/internal/delivery/context"
	domainerrors "authgate/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// LoggerMiddleware writes one access log line per request.
// Failed requests are always logged; successful ones only in debug mode.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

func NewLoggerMiddleware(logger *slog.Logger, cfg *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  cfg.Env.Debug,
	}
}

// Handle renders any handler error through echo's HTTPErrorHandler before logging,
// so the logged status is the one the caller received.
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		status := c.Response().Status
		level := accessLogLevel(status)
		if level == slog.LevelInfo && !m.debug {
			return nil
		}

		req := c.Request()
		attrs := []slog.Attr{
			slog.String("method", req.Method),
			slog.String("route", c.Path()),
			slog.String("uri", req.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("remote_ip", c.RealIP()),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error_code", errorCode(err)))
		}

		logger := deliverycontext.Logger(req.Context(), m.logger)
		logger.LogAttrs(req.Context(), level, "HTTP request", attrs...)

		return nil
	}
}

func accessLogLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// errorCode names the failure without leaking internal error text into access logs.
func errorCode(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.ErrorCode()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return "HTTP_" + strconv.Itoa(httpErr.Code)
	}

	return "UNHANDLED"
}
