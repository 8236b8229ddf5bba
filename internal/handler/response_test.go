package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-system/internal/model"
	"auth-system/pkg/apierror"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apierror.Validation("validation failed", map[string]string{"email": "cannot be blank"}), http.StatusBadRequest, "validation failed"},
		{"duplicate email", model.ErrDuplicateEmail, http.StatusBadRequest, "user already exists"},
		{"invalid credentials", model.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"unauthorized", model.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"wrapped expired token", fmt.Errorf("%w: %w", model.ErrUnauthorized, model.ErrTokenExpired), http.StatusUnauthorized, "unauthorized"},
		{"bare invalid token", model.ErrTokenInvalid, http.StatusUnauthorized, "unauthorized"},
		{"user gone", model.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"internal", errors.New("dial tcp 10.0.0.1:5432: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body model.APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
			assert.NotContains(t, rec.Body.String(), "10.0.0.1")
		})
	}
}

func TestWriteError_FieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil), apierror.Validation("validation failed", map[string]string{
		"password": "the length must be no less than 6",
		"email":    "must be a valid email address",
	}))

	var body model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []model.FieldError{
		{Field: "email", Message: "must be a valid email address"},
		{Field: "password", Message: "the length must be no less than 6"},
	}, body.Errors)
}

func TestWriteError_NonValidationOmitsErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodPost, "/", nil), model.ErrDuplicateEmail)

	assert.NotContains(t, rec.Body.String(), `"errors"`)
}
