package postgres

import (
	"strings"

	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/errors"
	"authgate/internal/infra/persistence/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isCheckConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation
}

// violatedConstraint returns the constraint named by a PostgreSQL error, falling back to the
// message text when the driver error was translated.
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}

	msg := err.Error()
	for _, name := range []string{model.UsersEmailUniqueConstraint, model.UsersNameUniqueConstraint} {
		if strings.Contains(msg, name) {
			return name
		}
	}

	return ""
}

// mapUserInsertError converts an insert failure on users into the matching domain error.
func mapUserInsertError(err error) error {
	switch {
	case isUniqueConstraintViolation(err):
		if violatedConstraint(err) == model.UsersEmailUniqueConstraint {
			return domainerrors.ErrEmailAlreadyInUse
		}

		// The name constraint, or a duplicate we cannot attribute.
		return domainerrors.ErrUserAlreadyExists
	case isCheckConstraintViolation(err):
		return domainerrors.NewDatabaseExecuteError(err, "users check constraint violated")
	default:
		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}
}
