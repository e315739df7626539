// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Name and Email are each unique across all users.
// Users are created once at signup and never modified afterwards.
type User struct {
	ID           uuid.UUID // Assigned by the store at creation; immutable.
	Name         string    // Sign-in identifier, case-sensitive as stored.
	Email        string    // Contact email, required at signup only.
	PasswordHash string    // bcrypt hash of the password, salt embedded. Never the plaintext.
	CreatedAt    time.Time
}
