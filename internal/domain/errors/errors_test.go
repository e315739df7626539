package errors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBaseError_WrapMessageKeepsIdentity(t *testing.T) {
	err := ErrUserAlreadyExists.WrapMessage("name taken")

	assert.True(t, errors.Is(err, ErrUserAlreadyExists))
	assert.Contains(t, err.Error(), "name taken")

	var appErr AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
	assert.Equal(t, "User already exists", appErr.Message())
}

func TestInvalidCredentials_SingleMessage(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrInvalidCredentials.HTTPCode())
	assert.Equal(t, "Invalid credentials", ErrInvalidCredentials.Message())
}

func TestDatabaseExecuteError_HidesDriverDetail(t *testing.T) {
	driverErr := errors.New("pq: connection refused")
	err := NewDatabaseExecuteError(driverErr, "failed to create user")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "Server error", err.Message())
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, driverErr))
}
