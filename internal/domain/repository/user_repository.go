// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"authgate/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the credential store operations.
//
// Create must enforce uniqueness of Name and Email itself and report a violation as
// domainerrors.ErrUserAlreadyExists or domainerrors.ErrEmailAlreadyInUse, so the
// application-level pre-checks are never the only guard.
type UserRepository interface {
	// FindByName retrieves a single user by their exact name.
	FindByName(ctx context.Context, name string) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user and fills in the generated ID and timestamps.
	Create(ctx context.Context, user *entity.User) error
}
