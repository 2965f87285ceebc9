package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/posadmin/internal/auth/domain"
	usecaseMocks "github.com/allisson/posadmin/internal/auth/usecase/mocks"

	apperrors "github.com/allisson/posadmin/internal/errors"
)

func TestAuthorizerUseCase_CheckLive(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())

	t.Run("live account passes", func(t *testing.T) {
		accountRepo := &usecaseMocks.MockAccountRepository{}
		grantRepo := &usecaseMocks.MockGrantRepository{}
		uc := NewAuthorizerUseCase(accountRepo, grantRepo)

		accountRepo.On("IsLive", ctx, accountID).Return(true, nil)

		assert.NoError(t, uc.CheckLive(ctx, accountID))
	})

	t.Run("deleted account is rejected", func(t *testing.T) {
		accountRepo := &usecaseMocks.MockAccountRepository{}
		grantRepo := &usecaseMocks.MockGrantRepository{}
		uc := NewAuthorizerUseCase(accountRepo, grantRepo)

		accountRepo.On("IsLive", ctx, accountID).Return(false, nil)

		err := uc.CheckLive(ctx, accountID)
		assert.ErrorIs(t, err, domain.ErrAccountNotLive)
	})

	t.Run("infrastructure failure is not an authentication denial", func(t *testing.T) {
		accountRepo := &usecaseMocks.MockAccountRepository{}
		grantRepo := &usecaseMocks.MockGrantRepository{}
		uc := NewAuthorizerUseCase(accountRepo, grantRepo)

		accountRepo.On("IsLive", ctx, accountID).Return(false, apperrors.New("connection refused"))

		err := uc.CheckLive(ctx, accountID)
		assert.Error(t, err)
		assert.False(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	})
}

func TestAuthorizerUseCase_Resolve(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())
	roleID := uuid.Must(uuid.NewV7())

	account := &domain.Account{
		ID:       accountID,
		Username: "manager",
		RoleID:   roleID,
	}

	t.Run("union of role grants and overrides", func(t *testing.T) {
		accountRepo := &usecaseMocks.MockAccountRepository{}
		grantRepo := &usecaseMocks.MockGrantRepository{}
		uc := NewAuthorizerUseCase(accountRepo, grantRepo)

		accountRepo.On("GetByID", ctx, accountID).Return(account, nil)
		grantRepo.On("ListRoleCapabilities", mock.Anything, roleID).
			Return([]*domain.Capability{
				{ID: uuid.Must(uuid.NewV7()), Name: "view-reports"},
				{ID: uuid.Must(uuid.NewV7()), Name: "manage-sales"},
			}, nil)
		grantRepo.On("ListAccountCapabilities", mock.Anything, accountID).
			Return([]*domain.Capability{
				{ID: uuid.Must(uuid.NewV7()), Name: "manage-accounts"},
				{ID: uuid.Must(uuid.NewV7()), Name: "view-reports"},
			}, nil)

		set, err := uc.Resolve(ctx, accountID)
		require.NoError(t, err)
		assert.Equal(t, []string{"manage-accounts", "manage-sales", "view-reports"}, set.Names())
	})

	t.Run("soft-deleted capabilities are excluded", func(t *testing.T) {
		accountRepo := &usecaseMocks.MockAccountRepository{}
		grantRepo := &usecaseMocks.MockGrantRepository{}
		uc := NewAuthorizerUseCase(accountRepo, grantRepo)

		deletedAt := time.Now().UTC()
		accountRepo.On("GetByID", ctx, accountID).Return(account, nil)
		grantRepo.On("ListRoleCapabilities", mock.Anything, roleID).
			Return([]*domain.Capability{
				{ID: uuid.Must(uuid.NewV7()), Name: "view-reports"},
				{ID: uuid.Must(uuid.NewV7()), Name: "manage-sales", DeletedAt: &deletedAt},
			}, nil)
		grantRepo.On("ListAccountCapabilities", mock.Anything, accountID).
			Return([]*domain.Capability{}, nil)

		set, err := uc.Resolve(ctx, accountID)
		require.NoError(t, err)
		assert.Equal(t, []string{"view-reports"}, set.Names())
	})

	t.Run("resolving twice yields the same set", func(t *testing.T) {
		accountRepo := &usecaseMocks.MockAccountRepository{}
		grantRepo := &usecaseMocks.MockGrantRepository{}
		uc := NewAuthorizerUseCase(accountRepo, grantRepo)

		accountRepo.On("GetByID", ctx, accountID).Return(account, nil)
		grantRepo.On("ListRoleCapabilities", mock.Anything, roleID).
			Return([]*domain.Capability{
				{ID: uuid.Must(uuid.NewV7()), Name: "view-reports"},
				{ID: uuid.Must(uuid.NewV7()), Name: "manage-sales"},
			}, nil)
		grantRepo.On("ListAccountCapabilities", mock.Anything, accountID).
			Return([]*domain.Capability{
				{ID: uuid.Must(uuid.NewV7()), Name: "manage-accounts"},
			}, nil)

		first, err := uc.Resolve(ctx, accountID)
		require.NoError(t, err)
		second, err := uc.Resolve(ctx, accountID)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, first.Names(), second.Names())
	})

	t.Run("account with no grants resolves to an empty set", func(t *testing.T) {
		accountRepo := &usecaseMocks.MockAccountRepository{}
		grantRepo := &usecaseMocks.MockGrantRepository{}
		uc := NewAuthorizerUseCase(accountRepo, grantRepo)

		accountRepo.On("GetByID", ctx, accountID).Return(account, nil)
		grantRepo.On("ListRoleCapabilities", mock.Anything, roleID).Return([]*domain.Capability{}, nil)
		grantRepo.On("ListAccountCapabilities", mock.Anything, accountID).Return([]*domain.Capability{}, nil)

		set, err := uc.Resolve(ctx, accountID)
		require.NoError(t, err)
		assert.Empty(t, set)
	})

	t.Run("deleted account cannot be resolved", func(t *testing.T) {
		accountRepo := &usecaseMocks.MockAccountRepository{}
		grantRepo := &usecaseMocks.MockGrantRepository{}
		uc := NewAuthorizerUseCase(accountRepo, grantRepo)

		deletedAt := time.Now().UTC()
		deleted := &domain.Account{ID: accountID, RoleID: roleID, DeletedAt: &deletedAt}
		accountRepo.On("GetByID", ctx, accountID).Return(deleted, nil)

		_, err := uc.Resolve(ctx, accountID)
		assert.ErrorIs(t, err, domain.ErrAccountNotLive)
		grantRepo.AssertNotCalled(t, "ListRoleCapabilities")
	})

	t.Run("grant fetch failure is propagated", func(t *testing.T) {
		accountRepo := &usecaseMocks.MockAccountRepository{}
		grantRepo := &usecaseMocks.MockGrantRepository{}
		uc := NewAuthorizerUseCase(accountRepo, grantRepo)

		accountRepo.On("GetByID", ctx, accountID).Return(account, nil)
		grantRepo.On("ListRoleCapabilities", mock.Anything, roleID).
			Return(nil, apperrors.New("connection refused"))
		grantRepo.On("ListAccountCapabilities", mock.Anything, accountID).
			Return([]*domain.Capability{}, nil).Maybe()

		_, err := uc.Resolve(ctx, accountID)
		assert.Error(t, err)
		assert.False(t, apperrors.Is(err, apperrors.ErrForbidden))
	})
}
