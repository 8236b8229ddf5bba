package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"auth-system/internal/model"
	"auth-system/internal/requestid"
	"auth-system/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, model.APIResponse{Success: true, Data: data})
}

func writeJSON(w http.ResponseWriter, status int, body model.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError is the single place where errors become HTTP responses. Anything
// it does not recognize is logged and reported as a bare 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	body := model.APIResponse{
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		for _, name := range apiErr.FieldNames() {
			body.Errors = append(body.Errors, model.FieldError{Field: name, Message: apiErr.Fields[name]})
		}
	} else if errors.Is(err, model.ErrDuplicateEmail) {
		status = http.StatusBadRequest
		body.Code = "USER_EXISTS"
		body.Message = "user already exists"
	} else if errors.Is(err, model.ErrInvalidCredentials) {
		status = http.StatusUnauthorized
		body.Code = "INVALID_CREDENTIALS"
		body.Message = "invalid credentials"
	} else if errors.Is(err, model.ErrUnauthorized) ||
		errors.Is(err, model.ErrTokenInvalid) ||
		errors.Is(err, model.ErrTokenExpired) {
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "unauthorized"
	} else if errors.Is(err, model.ErrUserNotFound) {
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "user not found"
	} else {
		slog.ErrorContext(r.Context(), "unhandled error",
			"request_id", requestid.From(r.Context()),
			"error", err.Error(),
		)
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	}
	writeJSON(w, status, body)
}
