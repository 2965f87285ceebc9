package usecase

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/posadmin/internal/auth/domain"
	"github.com/allisson/posadmin/internal/auth/service"
	"github.com/allisson/posadmin/internal/database"

	apperrors "github.com/allisson/posadmin/internal/errors"
	appValidation "github.com/allisson/posadmin/internal/validation"
)

// AccountUseCaseImpl handles provisioning of accounts, roles, capabilities,
// and capability grants.
type AccountUseCaseImpl struct {
	txManager       database.TxManager
	accountRepo     AccountRepository
	roleRepo        RoleRepository
	capabilityRepo  CapabilityRepository
	grantRepo       GrantRepository
	passwordService service.PasswordService
}

// NewAccountUseCase creates a new AccountUseCaseImpl
func NewAccountUseCase(
	txManager database.TxManager,
	accountRepo AccountRepository,
	roleRepo RoleRepository,
	capabilityRepo CapabilityRepository,
	grantRepo GrantRepository,
	passwordService service.PasswordService,
) *AccountUseCaseImpl {
	return &AccountUseCaseImpl{
		txManager:       txManager,
		accountRepo:     accountRepo,
		roleRepo:        roleRepo,
		capabilityRepo:  capabilityRepo,
		grantRepo:       grantRepo,
		passwordService: passwordService,
	}
}

// validateCreateAccountInput validates the account provisioning input
func (uc *AccountUseCaseImpl) validateCreateAccountInput(input domain.CreateAccountInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("username must be between 1 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		),
		validation.Field(&input.RoleID,
			validation.Required.Error("role_id is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// validateName validates a role or capability display name
func (uc *AccountUseCaseImpl) validateName(name string) error {
	err := validation.Validate(name,
		validation.Required.Error("name is required"),
		appValidation.CapabilityName,
		validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
	)
	return appValidation.WrapValidationError(err)
}

// CreateAccount provisions a new account after checking the target role exists.
// The role lookup and insert run in one transaction so a concurrently removed
// role cannot leave an orphan account.
func (uc *AccountUseCaseImpl) CreateAccount(ctx context.Context, input domain.CreateAccountInput) (*domain.Account, error) {
	if err := uc.validateCreateAccountInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:       uuid.Must(uuid.NewV7()),
		Username: input.Username,
		Password: hashedPassword,
		RoleID:   input.RoleID,
	}

	err = uc.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := uc.roleRepo.GetByID(txCtx, input.RoleID); err != nil {
			return err
		}
		return uc.accountRepo.Create(txCtx, account)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteAccount soft-deletes an account. Tokens already issued for it stop
// working at the liveness check on their next request.
func (uc *AccountUseCaseImpl) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return uc.accountRepo.SoftDelete(ctx, id, time.Now().UTC())
}

// GetAccount retrieves an account by ID
func (uc *AccountUseCaseImpl) GetAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccounts retrieves live accounts with pagination
func (uc *AccountUseCaseImpl) ListAccounts(ctx context.Context, offset, limit int) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx, offset, limit)
}

// CreateRole provisions a new role
func (uc *AccountUseCaseImpl) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	if err := uc.validateName(name); err != nil {
		return nil, err
	}

	role := &domain.Role{
		ID:   uuid.Must(uuid.NewV7()),
		Name: name,
	}

	if err := uc.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}

	return role, nil
}

// ListRoles retrieves live roles with pagination
func (uc *AccountUseCaseImpl) ListRoles(ctx context.Context, offset, limit int) ([]*domain.Role, error) {
	return uc.roleRepo.List(ctx, offset, limit)
}

// CreateCapability provisions a new capability
func (uc *AccountUseCaseImpl) CreateCapability(ctx context.Context, name string) (*domain.Capability, error) {
	if err := uc.validateName(name); err != nil {
		return nil, err
	}

	capability := &domain.Capability{
		ID:   uuid.Must(uuid.NewV7()),
		Name: name,
	}

	if err := uc.capabilityRepo.Create(ctx, capability); err != nil {
		return nil, err
	}

	return capability, nil
}

// ListCapabilities retrieves live capabilities with pagination
func (uc *AccountUseCaseImpl) ListCapabilities(ctx context.Context, offset, limit int) ([]*domain.Capability, error) {
	return uc.capabilityRepo.List(ctx, offset, limit)
}

// GrantRoleCapability adds a capability to a role's default grant set.
// Granting an already-granted capability is a conflict, not a silent no-op.
func (uc *AccountUseCaseImpl) GrantRoleCapability(ctx context.Context, roleName, capabilityName string) error {
	return uc.txManager.WithTx(ctx, func(txCtx context.Context) error {
		role, err := uc.roleRepo.GetByName(txCtx, roleName)
		if err != nil {
			return err
		}

		capability, err := uc.capabilityRepo.GetByName(txCtx, capabilityName)
		if err != nil {
			return err
		}

		return uc.grantRepo.GrantRoleCapability(txCtx, role.ID, capability.ID)
	})
}

// GrantAccountCapability adds a per-account capability override. Overrides
// only ever widen the account's effective set; there is no negative grant.
func (uc *AccountUseCaseImpl) GrantAccountCapability(ctx context.Context, accountID uuid.UUID, capabilityName string) error {
	return uc.txManager.WithTx(ctx, func(txCtx context.Context) error {
		account, err := uc.accountRepo.GetByID(txCtx, accountID)
		if err != nil {
			return err
		}
		if account.IsDeleted() {
			return domain.ErrAccountNotFound
		}

		capability, err := uc.capabilityRepo.GetByName(txCtx, capabilityName)
		if err != nil {
			return err
		}

		return uc.grantRepo.GrantAccountCapability(txCtx, account.ID, capability.ID)
	})
}

// RevokeAccountCapability removes a per-account capability override. Only
// overrides can be revoked this way; role-default grants are untouched.
func (uc *AccountUseCaseImpl) RevokeAccountCapability(ctx context.Context, accountID uuid.UUID, capabilityName string) error {
	capability, err := uc.capabilityRepo.GetByName(ctx, capabilityName)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return domain.ErrGrantNotFound
		}
		return err
	}

	return uc.grantRepo.RevokeAccountCapability(ctx, accountID, capability.ID)
}
