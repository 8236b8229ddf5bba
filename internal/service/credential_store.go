package service

import (
	"context"
	"errors"
	"fmt"

	"auth-system/internal/model"
	"auth-system/internal/repository"
)

// CredentialStore is the only component that sees password hashes. Every
// method returns the redacted model.PublicUser.
type CredentialStore struct {
	repo      repository.UserRepository
	hasher    PasswordHasher
	dummyHash string
}

func NewCredentialStore(repo repository.UserRepository, hasher PasswordHasher) (*CredentialStore, error) {
	// Compared against when the email is unknown so both failure paths pay
	// for one hash verification.
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("prepare credential store: %w", err)
	}

	return &CredentialStore{repo: repo, hasher: hasher, dummyHash: dummy}, nil
}

func (s *CredentialStore) GetByID(ctx context.Context, id int64) (model.PublicUser, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.PublicUser{}, err
	}
	return u.Public(), nil
}

func (s *CredentialStore) GetByEmail(ctx context.Context, email string) (model.PublicUser, error) {
	u, err := s.repo.FindByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		return model.PublicUser{}, err
	}
	return u.Public(), nil
}

// Create checks for an existing email before hashing. The repository still
// reports a concurrent duplicate as model.ErrDuplicateEmail.
func (s *CredentialStore) Create(ctx context.Context, candidate model.NewUser) (model.PublicUser, error) {
	email := model.NormalizeEmail(candidate.Email)

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return model.PublicUser{}, model.ErrDuplicateEmail
	case !errors.Is(err, model.ErrUserNotFound):
		return model.PublicUser{}, err
	}

	hash, err := s.hasher.Hash(candidate.Password)
	if err != nil {
		return model.PublicUser{}, err
	}

	created, err := s.repo.Insert(ctx, model.User{
		Name:         candidate.Name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return model.PublicUser{}, err
	}

	return created.Public(), nil
}

// ValidateCredentials returns ok=false for both an unknown email and a wrong
// password. err is reserved for store or hash failures.
func (s *CredentialStore) ValidateCredentials(ctx context.Context, email string, password string) (model.PublicUser, bool, error) {
	u, err := s.repo.FindByEmail(ctx, model.NormalizeEmail(email))
	if errors.Is(err, model.ErrUserNotFound) {
		_, _ = s.hasher.Verify(password, s.dummyHash)
		return model.PublicUser{}, false, nil
	}
	if err != nil {
		return model.PublicUser{}, false, err
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return model.PublicUser{}, false, err
	}
	if !ok {
		return model.PublicUser{}, false, nil
	}

	return u.Public(), true, nil
}
