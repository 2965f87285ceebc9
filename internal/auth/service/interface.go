// Package service provides technical services for authentication operations.
//
// This package implements the access token codec, credential hashing, and the
// startup loader for the token signing secret.
package service

import (
	"context"
	"time"

	authDomain "github.com/allisson/posadmin/internal/auth/domain"
)

// TokenCodec signs and verifies compact bearer tokens carrying identity claims.
// Implementations must be stateless and safe for concurrent use; the signing
// secret is fixed at construction time.
type TokenCodec interface {
	// Issue serializes the identity plus a fixed expiry horizon and signs it
	// with the process-wide secret, returning the opaque token string and its
	// expiry instant. CPU-bound, no side effects.
	Issue(identity authDomain.Identity) (token string, expiresAt time.Time, err error)

	// Verify checks signature integrity and expiry and returns the embedded
	// identity. Any structural, signature, or expiry mismatch yields
	// domain.ErrInvalidToken; the cause is never distinguished to the caller.
	Verify(token string) (*authDomain.Identity, error)
}

// PasswordService defines operations for credential hashing and validation.
// Implementations must use an industry-standard slow hash (e.g., argon2).
type PasswordService interface {
	// HashPassword hashes a plain text password for storage.
	HashPassword(plainPassword string) (hashedPassword string, err error)

	// ComparePassword compares a plain text password against a stored hash.
	// Constant-time; returns false on any mismatch or malformed hash.
	ComparePassword(plainPassword string, hashedPassword string) bool
}

// SigningKeyLoader resolves the token signing secret at startup. The secret is
// process-wide configuration; failing to load it is fatal and the server must
// not serve traffic without it.
type SigningKeyLoader interface {
	// Load returns the signing secret, decrypting it through the configured
	// KMS keeper when a ciphertext and key URI are provided.
	Load(ctx context.Context) ([]byte, error)
}
