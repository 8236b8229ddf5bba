package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"auth-system/internal/model"
)

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports a mismatch as (false, nil). A non-nil error means the
	// stored hash itself is unusable.
	Verify(plaintext string, hash string) (bool, error)
}

// BcryptHasher salts every hash and compares in constant time.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", model.ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify never matches a plaintext longer than model.MaxPasswordBytes. bcrypt
// only reads the first 72 bytes, so such an input would otherwise match the
// hash of its own prefix. The comparison still runs to keep timing uniform.
func (h *BcryptHasher) Verify(plaintext string, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if len(plaintext) > model.MaxPasswordBytes {
		if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, fmt.Errorf("verify password: %w", err)
		}
		return false, nil
	}
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("verify password: %w", err)
}
