// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"authgate/internal/delivery/api/middleware"
	"authgate/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CredentialHandler *handler.CredentialHandler
	APIKeyMiddleware  *middleware.APIKeyMiddleware
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	credentialHandler *handler.CredentialHandler
	apiKeyMiddleware  *middleware.APIKeyMiddleware
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		credentialHandler: params.CredentialHandler,
		apiKeyMiddleware:  params.APIKeyMiddleware,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Every auth route requires the API key.
	authGroup := e.Group("/api/auth", r.apiKeyMiddleware.Require)
	{
		authGroup.POST("/signup", r.credentialHandler.Signup)
		authGroup.POST("/signin", r.credentialHandler.Signin)
		authGroup.GET("/me", r.credentialHandler.Me, r.authMiddleware.Authenticate)
	}
}
