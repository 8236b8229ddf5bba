package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"auth-system/internal/middleware"
	"auth-system/internal/model"
	"auth-system/internal/service"
	"auth-system/pkg/apierror"
)

const maxBodyBytes = 1 << 20

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload model.RegisterRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		WriteError(w, r, err)
		return
	}

	result, err := h.service.Register(r.Context(), payload)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, result)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		WriteError(w, r, err)
		return
	}

	result, err := h.service.Login(r.Context(), payload)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

// User expects middleware.RequireAuth to have resolved the caller.
func (h *AuthHandler) User(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, r, model.ErrUnauthorized)
		return
	}

	writeSuccess(w, http.StatusOK, model.CurrentUser{User: user})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apierror.New("BAD_REQUEST", "request body too large", "", http.StatusRequestEntityTooLarge)
		}
		if errors.Is(err, io.EOF) {
			return apierror.New("BAD_REQUEST", "request body is required", "", http.StatusBadRequest)
		}
		return apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest)
	}
	return nil
}
