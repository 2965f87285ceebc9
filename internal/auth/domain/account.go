// Package domain defines authentication and authorization domain models.
//
// Accounts belong to exactly one role. A role carries a default set of
// capabilities; an account may additionally hold per-account capability
// overrides. The effective permissions of an account are the union of both,
// so overrides can only widen what a role grants, never narrow it.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account represents a staff account of the administrative back-end.
// Accounts authenticate with a username and password and are soft-deleted
// rather than removed, so issued tokens can be invalidated by deletion.
type Account struct {
	ID        uuid.UUID  // Unique identifier (UUIDv7)
	Username  string     // Unique sign-in handle
	Password  string     //nolint:gosec // Argon2id hash, never plaintext
	RoleID    uuid.UUID  // Role the account belongs to
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete marker (nil if active)
}

// IsDeleted reports whether the account has been soft-deleted.
func (a *Account) IsDeleted() bool {
	return a.DeletedAt != nil
}

// CreateAccountInput contains the parameters for provisioning a new account.
type CreateAccountInput struct {
	Username string    // Unique sign-in handle
	Password string    // Plain password, hashed before storage
	RoleID   uuid.UUID // Role the account is assigned to
}

// SignInInput contains the credentials presented at sign-in.
type SignInInput struct {
	Username string
	Password string
}

// SignInOutput contains the issued bearer token and its expiry.
type SignInOutput struct {
	Token     string
	ExpiresAt time.Time
}
