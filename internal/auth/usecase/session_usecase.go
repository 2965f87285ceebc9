package usecase

import (
	"context"

	validation "github.com/jellydator/validation"

	"github.com/allisson/posadmin/internal/auth/domain"
	"github.com/allisson/posadmin/internal/auth/service"

	apperrors "github.com/allisson/posadmin/internal/errors"
	appValidation "github.com/allisson/posadmin/internal/validation"
)

// SessionUseCaseImpl handles sign-in and token verification.
type SessionUseCaseImpl struct {
	accountRepo     AccountRepository
	passwordService service.PasswordService
	tokenCodec      service.TokenCodec
}

// NewSessionUseCase creates a new SessionUseCaseImpl
func NewSessionUseCase(
	accountRepo AccountRepository,
	passwordService service.PasswordService,
	tokenCodec service.TokenCodec,
) *SessionUseCaseImpl {
	return &SessionUseCaseImpl{
		accountRepo:     accountRepo,
		passwordService: passwordService,
		tokenCodec:      tokenCodec,
	}
}

// validateSignInInput validates the sign-in credentials shape
func (uc *SessionUseCaseImpl) validateSignInInput(input domain.SignInInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("username must be between 1 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(1, 128).Error("password must be between 1 and 128 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// SignIn validates credentials against the stored hash and issues a token.
// Unknown usernames and wrong passwords collapse into the same error so the
// response cannot be used to enumerate accounts.
func (uc *SessionUseCaseImpl) SignIn(ctx context.Context, input domain.SignInInput) (*domain.SignInOutput, error) {
	if err := uc.validateSignInInput(input); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !uc.passwordService.ComparePassword(input.Password, account.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	identity := domain.Identity{
		AccountID: account.ID,
		Username:  account.Username,
	}

	token, expiresAt, err := uc.tokenCodec.Issue(identity)
	if err != nil {
		return nil, err
	}

	return &domain.SignInOutput{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate verifies a bearer token and returns the identity claims it carries.
func (uc *SessionUseCaseImpl) Authenticate(ctx context.Context, token string) (*domain.Identity, error) {
	return uc.tokenCodec.Verify(token)
}
