// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SigninInput defines the data required to sign in.
type SigninInput struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Output DTOs ---

// TokenOutput carries the bearer token issued by signup and signin.
type TokenOutput struct {
	Token string `json:"token"`
}

// CredentialUsecase defines account registration and sign-in.
// This is the contract that the delivery layer depends on.
type CredentialUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*TokenOutput, error)
	Signin(ctx context.Context, input *SigninInput) (*TokenOutput, error)
}
