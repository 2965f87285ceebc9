package domain

import (
	"github.com/allisson/posadmin/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrAccountNotFound indicates an account with the specified ID or username was not found.
	ErrAccountNotFound = errors.Wrap(errors.ErrNotFound, "account not found")

	// ErrRoleNotFound indicates a role with the specified ID or name was not found.
	ErrRoleNotFound = errors.Wrap(errors.ErrNotFound, "role not found")

	// ErrCapabilityNotFound indicates a capability with the specified ID or name was not found.
	ErrCapabilityNotFound = errors.Wrap(errors.ErrNotFound, "capability not found")

	// ErrGrantNotFound indicates the capability grant to remove does not exist.
	ErrGrantNotFound = errors.Wrap(errors.ErrNotFound, "capability grant not found")

	// ErrAccountAlreadyExists indicates an account with the same username already exists.
	ErrAccountAlreadyExists = errors.Wrap(errors.ErrConflict, "account already exists")

	// ErrRoleAlreadyExists indicates a role with the same name already exists.
	ErrRoleAlreadyExists = errors.Wrap(errors.ErrConflict, "role already exists")

	// ErrCapabilityAlreadyExists indicates a capability with the same name already exists.
	ErrCapabilityAlreadyExists = errors.Wrap(errors.ErrConflict, "capability already exists")

	// ErrGrantAlreadyExists indicates the capability grant is already in place.
	ErrGrantAlreadyExists = errors.Wrap(errors.ErrConflict, "capability grant already exists")

	// ErrInvalidToken indicates the bearer token is structurally invalid, has a bad
	// signature, or is expired. The cause is intentionally not distinguished so the
	// response cannot be used as an oracle.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid or expired token")

	// ErrInvalidCredentials indicates the username/password pair did not match.
	// Unknown usernames and wrong passwords yield the same error to prevent
	// account enumeration.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrAccountNotLive indicates the authenticated account no longer exists or has
	// been soft-deleted since its token was issued.
	ErrAccountNotLive = errors.Wrap(errors.ErrUnauthorized, "account is no longer active")

	// ErrCapabilityRequired indicates a live, authenticated account lacks every
	// capability the endpoint requires.
	ErrCapabilityRequired = errors.Wrap(errors.ErrForbidden, "missing required capability")
)
