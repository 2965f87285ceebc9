// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"
	"github.com/jellydator/validation/is"

	customValidation "github.com/allisson/posadmin/internal/validation"
)

// SignInRequest contains the credentials presented at sign-in.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks if the sign-in request is valid.
func (r *SignInRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, 128),
		),
	)
}

// CreateAccountRequest contains the parameters for provisioning an account.
type CreateAccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	RoleID   string `json:"role_id"`
}

// Validate checks if the create account request is valid.
func (r *CreateAccountRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(8, 128),
		),
		validation.Field(&r.RoleID,
			validation.Required,
			is.UUID,
		),
	)
}

// GrantCapabilityRequest contains the capability name for a per-account grant.
type GrantCapabilityRequest struct {
	Capability string `json:"capability"`
}

// Validate checks if the grant capability request is valid.
func (r *GrantCapabilityRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Capability,
			validation.Required,
			customValidation.CapabilityName,
			validation.Length(1, 255),
		),
	)
}
