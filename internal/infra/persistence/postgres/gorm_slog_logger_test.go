package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"authgate/config"
	deliverycontext "authgate/internal/delivery/context"
	"authgate/internal/infra/persistence/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newCapturingGormLogger(debug bool) (gormlogger.Interface, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	return newGormSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), cfg), &buf
}

func insertUserSQL() (string, int64) {
	return `INSERT INTO "users" ("id","name","email","password_hash") VALUES (...)`, 0
}

func TestGormSlogLogger_LogsFailedQuery(t *testing.T) {
	l, buf := newCapturingGormLogger(false)

	l.Trace(context.Background(), time.Now(), insertUserSQL, errors.New("relation \"users\" does not exist"))

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "GORM query failed")
	assert.Contains(t, buf.String(), "does not exist")
}

func TestGormSlogLogger_DuplicateKeyIsWarning(t *testing.T) {
	l, buf := newCapturingGormLogger(false)
	ctx := deliverycontext.WithRequestScope(context.Background(), "req-7", nil)

	l.Trace(ctx, time.Now(), insertUserSQL, &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: model.UsersEmailUniqueConstraint})

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "GORM duplicate key")
	assert.Contains(t, buf.String(), "constraint="+model.UsersEmailUniqueConstraint)
	assert.Contains(t, buf.String(), "request_id=req-7")
	assert.NotContains(t, buf.String(), "level=ERROR")
}

func TestGormSlogLogger_IgnoresRecordNotFound(t *testing.T) {
	l, buf := newCapturingGormLogger(true)

	l.Trace(context.Background(), time.Now(), insertUserSQL, gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestGormSlogLogger_SlowQuery(t *testing.T) {
	l, buf := newCapturingGormLogger(false)

	l.Trace(context.Background(), time.Now().Add(-time.Second), insertUserSQL, nil)

	assert.Contains(t, buf.String(), "GORM slow query")
}

func TestGormSlogLogger_QueriesOnlyInDebug(t *testing.T) {
	quiet, quietBuf := newCapturingGormLogger(false)
	quiet.Trace(context.Background(), time.Now(), insertUserSQL, nil)
	quiet.Info(context.Background(), "pool %s", "ready")
	assert.Empty(t, quietBuf.String())

	verbose, verboseBuf := newCapturingGormLogger(true)
	verbose.Trace(context.Background(), time.Now(), insertUserSQL, nil)
	verbose.Info(context.Background(), "pool %s", "ready")
	assert.Contains(t, verboseBuf.String(), "GORM query")
	assert.Contains(t, verboseBuf.String(), "message=\"pool ready\"")
}

func TestGormSlogLogger_SilentMode(t *testing.T) {
	l, buf := newCapturingGormLogger(true)

	l.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), insertUserSQL, errors.New("boom"))

	assert.Empty(t, buf.String())
}
