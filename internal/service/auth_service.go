package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"auth-system/internal/event"
	"auth-system/internal/model"
	"auth-system/internal/requestid"
	"auth-system/pkg/apierror"
)

const (
	OperationRegister = "register"
	OperationLogin    = "login"
	OperationResolve  = "resolve_identity"

	OutcomeSuccess            = "success"
	OutcomeValidationError    = "validation_error"
	OutcomeDuplicateEmail     = "duplicate_email"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeUnauthorized       = "unauthorized"
	OutcomeNotFound           = "not_found"
	OutcomeError              = "error"
)

// Recorder counts auth operations by outcome.
type Recorder interface {
	RecordAuth(operation string, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordAuth(string, string) {}

type AuthService struct {
	store    *CredentialStore
	tokens   *TokenService
	bus      event.Bus
	recorder Recorder
	logger   *slog.Logger
}

func NewAuthService(store *CredentialStore, tokens *TokenService, bus event.Bus, recorder Recorder, logger *slog.Logger) *AuthService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{store: store, tokens: tokens, bus: bus, recorder: recorder, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResult, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		s.recorder.RecordAuth(OperationRegister, OutcomeValidationError)
		return model.AuthResult{}, validationError(err)
	}

	user, err := s.store.Create(ctx, model.NewUser{Name: req.Name, Email: req.Email, Password: req.Password})
	if errors.Is(err, model.ErrDuplicateEmail) {
		s.recorder.RecordAuth(OperationRegister, OutcomeDuplicateEmail)
		return model.AuthResult{}, err
	}
	if err != nil {
		s.recorder.RecordAuth(OperationRegister, OutcomeError)
		return model.AuthResult{}, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.recorder.RecordAuth(OperationRegister, OutcomeError)
		return model.AuthResult{}, err
	}

	s.recorder.RecordAuth(OperationRegister, OutcomeSuccess)
	s.publish(ctx, event.TypeUserRegistered, user.ID, user.Email)
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)

	return model.AuthResult{User: user, Token: token}, nil
}

// Login never reveals whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResult, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		s.recorder.RecordAuth(OperationLogin, OutcomeValidationError)
		return model.AuthResult{}, validationError(err)
	}

	user, ok, err := s.store.ValidateCredentials(ctx, req.Email, req.Password)
	if err != nil {
		s.recorder.RecordAuth(OperationLogin, OutcomeError)
		return model.AuthResult{}, fmt.Errorf("login: %w", err)
	}
	if !ok {
		s.recorder.RecordAuth(OperationLogin, OutcomeInvalidCredentials)
		s.publish(ctx, event.TypeLoginFailed, 0, model.NormalizeEmail(req.Email))
		return model.AuthResult{}, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.recorder.RecordAuth(OperationLogin, OutcomeError)
		return model.AuthResult{}, err
	}

	s.recorder.RecordAuth(OperationLogin, OutcomeSuccess)
	s.publish(ctx, event.TypeLoginSucceeded, user.ID, user.Email)

	return model.AuthResult{User: user, Token: token}, nil
}

// ResolveIdentity takes the raw Authorization header value. Only the user id
// from the token is trusted; name and email come from the store.
func (s *AuthService) ResolveIdentity(ctx context.Context, authorization string) (model.PublicUser, error) {
	token, ok := BearerToken(authorization)
	if !ok {
		s.recorder.RecordAuth(OperationResolve, OutcomeUnauthorized)
		return model.PublicUser{}, model.ErrUnauthorized
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.recorder.RecordAuth(OperationResolve, OutcomeUnauthorized)
		s.publish(ctx, event.TypeIdentityResolveError, 0, "")
		s.logger.DebugContext(ctx, "token rejected", "reason", err)
		return model.PublicUser{}, fmt.Errorf("%w: %w", model.ErrUnauthorized, err)
	}

	user, err := s.store.GetByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrUserNotFound) {
		s.recorder.RecordAuth(OperationResolve, OutcomeNotFound)
		return model.PublicUser{}, err
	}
	if err != nil {
		s.recorder.RecordAuth(OperationResolve, OutcomeError)
		return model.PublicUser{}, fmt.Errorf("resolve identity: %w", err)
	}

	s.recorder.RecordAuth(OperationResolve, OutcomeSuccess)
	s.publish(ctx, event.TypeIdentityResolved, user.ID, user.Email)

	return user, nil
}

// BearerToken extracts the token from "Bearer <token>". The scheme is
// matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

func (s *AuthService) publish(ctx context.Context, typ event.Type, userID int64, email string) {
	if s.bus == nil {
		return
	}

	s.bus.Publish(event.Event{
		Type:      typ,
		UserID:    userID,
		Email:     email,
		RequestID: requestid.From(ctx),
	})
}

func validationError(err error) error {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return apierror.Validation("validation failed", map[string]string{"request": err.Error()})
	}

	fields := make(map[string]string, len(fieldErrs))
	for name, fieldErr := range fieldErrs {
		fields[name] = fieldErr.Error()
	}
	return apierror.Validation("validation failed", fields)
}
