package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of an issued bearer token.
type Claims struct {
	UserID uuid.UUID `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	// GenerateToken signs a token for userID that expires after the configured TTL.
	GenerateToken(userID uuid.UUID) (string, error)

	// ValidateToken verifies the signature and expiry of tokenString and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)

	// TokenTTL returns the lifetime of issued tokens.
	TokenTTL() time.Duration
}
