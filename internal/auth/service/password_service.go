package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/posadmin/internal/errors"
)

// passwordService implements PasswordService using Argon2id hashing.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordService creates a PasswordService using Argon2id with the
// interactive policy, which balances sign-in latency against hardness.
func NewPasswordService() (PasswordService, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	return &passwordService{hasher: hasher}, nil
}

// HashPassword hashes a plain text password using Argon2id.
func (p *passwordService) HashPassword(plainPassword string) (string, error) {
	hashedPassword, err := p.hasher.Hash([]byte(plainPassword))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashedPassword, nil
}

// ComparePassword performs a constant-time comparison between a plain password and its hash.
func (p *passwordService) ComparePassword(plainPassword string, hashedPassword string) bool {
	ok, err := p.hasher.Verify([]byte(plainPassword), hashedPassword)
	if err != nil {
		return false
	}
	return ok
}
