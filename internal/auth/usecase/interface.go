// Package usecase implements the authentication and authorization business
// logic: credential sign-in, token verification, account liveness checks, and
// effective capability resolution, plus the provisioning operations for
// accounts, roles, capabilities, and grants.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/posadmin/internal/auth/domain"
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	IsLive(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Account, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedAt time.Time) error
}

// RoleRepository defines the interface for role persistence operations.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Role, error)
}

// CapabilityRepository defines the interface for capability persistence operations.
type CapabilityRepository interface {
	Create(ctx context.Context, capability *domain.Capability) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Capability, error)
	GetByName(ctx context.Context, name string) (*domain.Capability, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Capability, error)
}

// GrantRepository defines the interface for capability grant persistence
// operations, covering role-default grants and per-account overrides.
type GrantRepository interface {
	GrantRoleCapability(ctx context.Context, roleID, capabilityID uuid.UUID) error
	ListRoleCapabilities(ctx context.Context, roleID uuid.UUID) ([]*domain.Capability, error)
	GrantAccountCapability(ctx context.Context, accountID, capabilityID uuid.UUID) error
	RevokeAccountCapability(ctx context.Context, accountID, capabilityID uuid.UUID) error
	ListAccountCapabilities(ctx context.Context, accountID uuid.UUID) ([]*domain.Capability, error)
}

// SessionUseCase defines the interface for sign-in and token verification.
type SessionUseCase interface {
	// SignIn validates credentials and issues a signed bearer token. Unknown
	// usernames, deleted accounts, and wrong passwords all yield
	// domain.ErrInvalidCredentials.
	SignIn(ctx context.Context, input domain.SignInInput) (*domain.SignInOutput, error)

	// Authenticate verifies a bearer token and returns the identity it carries.
	// Any failure yields domain.ErrInvalidToken.
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}

// AuthorizerUseCase defines the interface for per-request authorization checks.
type AuthorizerUseCase interface {
	// CheckLive re-validates that the account behind a verified token still
	// exists and is not soft-deleted. Returns domain.ErrAccountNotLive when it
	// does not; infrastructure failures are reported as-is.
	CheckLive(ctx context.Context, accountID uuid.UUID) error

	// Resolve computes the effective capability set for an account: the union
	// of its role's default grants and its per-account overrides, excluding
	// soft-deleted capabilities.
	Resolve(ctx context.Context, accountID uuid.UUID) (domain.CapabilitySet, error)
}

// AccountUseCase defines the interface for provisioning operations.
type AccountUseCase interface {
	CreateAccount(ctx context.Context, input domain.CreateAccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	ListAccounts(ctx context.Context, offset, limit int) ([]*domain.Account, error)

	CreateRole(ctx context.Context, name string) (*domain.Role, error)
	ListRoles(ctx context.Context, offset, limit int) ([]*domain.Role, error)

	CreateCapability(ctx context.Context, name string) (*domain.Capability, error)
	ListCapabilities(ctx context.Context, offset, limit int) ([]*domain.Capability, error)

	GrantRoleCapability(ctx context.Context, roleName, capabilityName string) error
	GrantAccountCapability(ctx context.Context, accountID uuid.UUID, capabilityName string) error
	RevokeAccountCapability(ctx context.Context, accountID uuid.UUID, capabilityName string) error
}
