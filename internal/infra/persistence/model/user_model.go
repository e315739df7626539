// Package model holds the GORM persistence models.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Unique constraint names on the users table. The repository maps violations of
// these back to the matching duplicate-identity error.
const (
	UsersNameUniqueConstraint  = "users_name_key"
	UsersEmailUniqueConstraint = "users_email_key"
)

// UserModel mirrors the 'users' table. PostgreSQL generates the UUID primary key.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name         string    `gorm:"type:varchar(255);not null;uniqueIndex:users_name_key"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:users_email_key"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
