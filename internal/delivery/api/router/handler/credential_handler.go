// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"time"

	"authgate/internal/delivery/api/middleware"
	"authgate/internal/delivery/api/response"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CredentialHandler serves signup, signin and token inspection.
type CredentialHandler struct {
	uc usecase.CredentialUsecase
}

// NewCredentialHandler is the constructor for CredentialHandler, injected by Fx.
func NewCredentialHandler(uc usecase.CredentialUsecase) *CredentialHandler {
	return &CredentialHandler{uc: uc}
}

// MeResponse describes the bearer token presented to /me.
type MeResponse struct {
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Signup handles account registration.
func (h *CredentialHandler) Signup(c echo.Context) error {
	input := new(usecase.SignupInput)
	if err := bindAndValidate(c, input); err != nil {
		return err
	}

	output, err := h.uc.Signup(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// Signin handles credential verification.
func (h *CredentialHandler) Signin(c echo.Context) error {
	input := new(usecase.SigninInput)
	if err := bindAndValidate(c, input); err != nil {
		return err
	}

	output, err := h.uc.Signin(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output)
}

// Me reports the subject and expiry of the caller's token.
func (h *CredentialHandler) Me(c echo.Context) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	out := MeResponse{UserID: claims.UserID.String()}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.UTC()
	}

	return response.Success(c, http.StatusOK, out)
}

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

func bindAndValidate(c echo.Context, input any) error {
	if err := c.Bind(input); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}
	if err := c.Validate(input); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	return nil
}
