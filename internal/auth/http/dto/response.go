package dto

import (
	"time"

	authDomain "github.com/allisson/posadmin/internal/auth/domain"
)

// SignInResponse contains the issued bearer token and its expiry.
// SECURITY: The token is only returned once and must be saved securely.
type SignInResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MeResponse represents the authenticated identity and its effective
// capability names.
type MeResponse struct {
	AccountID    string   `json:"account_id"`
	Username     string   `json:"username"`
	Capabilities []string `json:"capabilities"`
}

// AccountResponse represents an account in API responses (excludes the
// password hash).
type AccountResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	RoleID    string    `json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapAccountToResponse converts a domain account to an API response.
func MapAccountToResponse(account *authDomain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID.String(),
		Username:  account.Username,
		RoleID:    account.RoleID.String(),
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

// ListAccountsResponse represents a paginated list of accounts in API responses.
type ListAccountsResponse struct {
	Data []AccountResponse `json:"data"`
}

// MapAccountsToListResponse converts a slice of domain accounts to a list API response.
func MapAccountsToListResponse(accounts []*authDomain.Account) ListAccountsResponse {
	accountResponses := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		accountResponses = append(accountResponses, MapAccountToResponse(account))
	}
	return ListAccountsResponse{
		Data: accountResponses,
	}
}

// RoleResponse represents a role in API responses.
type RoleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ListRolesResponse represents a paginated list of roles in API responses.
type ListRolesResponse struct {
	Data []RoleResponse `json:"data"`
}

// MapRolesToListResponse converts a slice of domain roles to a list API response.
func MapRolesToListResponse(roles []*authDomain.Role) ListRolesResponse {
	roleResponses := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		roleResponses = append(roleResponses, RoleResponse{
			ID:        role.ID.String(),
			Name:      role.Name,
			CreatedAt: role.CreatedAt,
		})
	}
	return ListRolesResponse{
		Data: roleResponses,
	}
}

// CapabilityResponse represents a capability in API responses.
type CapabilityResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ListCapabilitiesResponse represents a paginated list of capabilities in API responses.
type ListCapabilitiesResponse struct {
	Data []CapabilityResponse `json:"data"`
}

// MapCapabilitiesToListResponse converts a slice of domain capabilities to a list API response.
func MapCapabilitiesToListResponse(capabilities []*authDomain.Capability) ListCapabilitiesResponse {
	capabilityResponses := make([]CapabilityResponse, 0, len(capabilities))
	for _, capability := range capabilities {
		capabilityResponses = append(capabilityResponses, CapabilityResponse{
			ID:        capability.ID.String(),
			Name:      capability.Name,
			CreatedAt: capability.CreatedAt,
		})
	}
	return ListCapabilitiesResponse{
		Data: capabilityResponses,
	}
}
