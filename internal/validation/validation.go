// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/posadmin/internal/errors"
)

var (
	// capabilityNameRegex matches capability display names such as "manage-accounts"
	// or "view-reports": lowercase words separated by single dashes.
	capabilityNameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string contains at least one non-whitespace character.
var NotBlank = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_not_blank_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_not_blank", "cannot be blank")
	}
	return nil
})

// CapabilityName validates that a string is a well-formed capability display name.
var CapabilityName = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_capability_name_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if !capabilityNameRegex.MatchString(s) {
		return validation.NewError(
			"validation_capability_name",
			"must contain lowercase words separated by dashes",
		)
	}
	return nil
})
