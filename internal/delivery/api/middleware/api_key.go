package middleware

import (
	"crypto/subtle"

	"authgate/config"
	domainerrors "authgate/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// HeaderAPIKey carries the shared client key.
const HeaderAPIKey = "x-api-key"

// APIKeyMiddleware admits only requests presenting the configured API key.
type APIKeyMiddleware struct {
	apiKey []byte
}

// NewAPIKeyMiddleware is the constructor for APIKeyMiddleware.
func NewAPIKeyMiddleware(cfg *config.Config) *APIKeyMiddleware {
	return &APIKeyMiddleware{apiKey: []byte(cfg.APIKey)}
}

// Require rejects the request with 403 before any handler runs.
func (m *APIKeyMiddleware) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		presented := []byte(c.Request().Header.Get(HeaderAPIKey))
		if len(m.apiKey) == 0 || subtle.ConstantTimeCompare(presented, m.apiKey) != 1 {
			return domainerrors.ErrForbidden
		}

		return next(c)
	}
}
