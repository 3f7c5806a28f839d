package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		want int
	}{
		{"auth", NewAuthError("authentication required", nil), http.StatusUnauthorized},
		{"unauthorized", NewUnauthorizedError("invalid or expired token", nil), http.StatusForbidden},
		{"not found", NewNotFoundError("post not found", nil), http.StatusNotFound},
		{"validation", NewValidationError("validation failed", nil), http.StatusBadRequest},
		{"bad request", NewBadRequestError("invalid id", nil), http.StatusBadRequest},
		{"conflict", NewConflictError("email already registered", nil), http.StatusBadRequest},
		{"database", NewDatabaseError("query failed", nil), http.StatusInternalServerError},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError},
		{"unknown", NewAppError(UnknownError, "what", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.err.StatusCode())
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDatabaseError("query failed", cause)
	require.ErrorIs(t, err, cause)
}

func TestFromError(t *testing.T) {
	appErr := NewNotFoundError("post not found", nil)

	got, ok := FromError(appErr)
	require.True(t, ok)
	require.Equal(t, appErr, got)

	// An AppError wrapped deeper in a chain is still found.
	wrapped := fmt.Errorf("handling request: %w", appErr)
	got, ok = FromError(wrapped)
	require.True(t, ok)
	require.Equal(t, NotFoundError, got.Type)

	_, ok = FromError(errors.New("plain error"))
	require.False(t, ok)

	_, ok = FromError(nil)
	require.False(t, ok)
}

func TestTypeChecks(t *testing.T) {
	require.True(t, IsNotFound(NewNotFoundError("x", nil)))
	require.False(t, IsNotFound(NewAuthError("x", nil)))
	require.True(t, IsAuthError(NewAuthError("x", nil)))
	require.True(t, IsUnauthorizedError(NewUnauthorizedError("x", nil)))
	require.True(t, IsValidationError(NewValidationError("x", nil)))
	require.True(t, IsConflictError(NewConflictError("x", nil)))
	require.False(t, IsConflictError(errors.New("plain")))
}

func TestToResponse(t *testing.T) {
	err := NewValidationError("validation failed", nil).
		WithDetails("name: this field is required", "password: must be at least 8 characters")

	resp := err.ToResponse()
	require.Equal(t, "validation failed", resp.Error)
	require.Len(t, resp.Details, 2)

	// Underlying causes stay out of the client-facing response.
	withCause := NewDatabaseError("query failed", errors.New("dsn: secret")).ToResponse()
	require.Equal(t, "query failed", withCause.Error)
	require.NotContains(t, withCause.Error, "secret")
}
