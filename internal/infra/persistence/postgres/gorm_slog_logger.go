package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"authgate/config"
	deliverycontext "authgate/internal/delivery/context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormSlogLogger routes GORM output into slog. Statements run inside a request are
// tagged with its request id; duplicate-key inserts, which the user repository turns
// into signup errors, are logged at warn instead of error.
type gormSlogLogger struct {
	logger *slog.Logger
	level  gormlogger.LogLevel
}

func newGormSlogLogger(baseLogger *slog.Logger, cfg *config.Config) gormlogger.Interface {
	level := gormlogger.Warn
	if cfg != nil && cfg.Env.Debug {
		level = gormlogger.Info
	}

	return &gormSlogLogger{logger: baseLogger, level: level}
}

func (l *gormSlogLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Info, slog.LevelInfo, msg, args...)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Warn, slog.LevelWarn, msg, args...)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, gormlogger.Error, slog.LevelError, msg, args...)
}

func (l *gormSlogLogger) printf(ctx context.Context, threshold gormlogger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.logger == nil || l.level < threshold {
		return
	}

	l.logger.LogAttrs(ctx, level, "GORM "+level.String(), l.withRequest(ctx, slog.String("message", fmt.Sprintf(msg, args...)))...)
}

func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, sqlAndRowsFn func() (string, int64), err error) {
	if l.logger == nil || l.level == gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && errors.Is(err, gorm.ErrRecordNotFound):
		// Lookups by name or email miss routinely.
		return
	case err != nil && isUniqueConstraintViolation(err) && l.level >= gormlogger.Warn:
		attrs := append(l.queryAttrs(ctx, sqlAndRowsFn, elapsed), slog.String("constraint", violatedConstraint(err)))
		l.logger.LogAttrs(ctx, slog.LevelWarn, "GORM duplicate key", attrs...)
	case err != nil && l.level >= gormlogger.Error:
		attrs := append(l.queryAttrs(ctx, sqlAndRowsFn, elapsed), slog.String("error", err.Error()))
		l.logger.LogAttrs(ctx, slog.LevelError, "GORM query failed", attrs...)
	case err == nil && elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		attrs := append(l.queryAttrs(ctx, sqlAndRowsFn, elapsed), slog.Duration("slow_threshold", slowQueryThreshold))
		l.logger.LogAttrs(ctx, slog.LevelWarn, "GORM slow query", attrs...)
	case err == nil && l.level >= gormlogger.Info:
		l.logger.LogAttrs(ctx, slog.LevelInfo, "GORM query", l.queryAttrs(ctx, sqlAndRowsFn, elapsed)...)
	}
}

func (l *gormSlogLogger) queryAttrs(ctx context.Context, sqlAndRowsFn func() (string, int64), elapsed time.Duration) []slog.Attr {
	sql, rows := sqlAndRowsFn()

	return l.withRequest(ctx,
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	)
}

func (l *gormSlogLogger) withRequest(ctx context.Context, attrs ...slog.Attr) []slog.Attr {
	if id := deliverycontext.RequestID(ctx); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}

	return attrs
}
