package response

import (
	domainerrors "authgate/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// Success writes data as the JSON body.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Error writes the {"message": ...} error body.
func Error(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, domainerrors.ErrorResponse{Message: message})
}

// AppError writes appErr with its own status and message.
func AppError(c echo.Context, appErr domainerrors.AppError) error {
	return Error(c, appErr.HTTPCode(), appErr.Message())
}
