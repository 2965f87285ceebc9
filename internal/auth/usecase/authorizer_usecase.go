package usecase

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/posadmin/internal/auth/domain"

	apperrors "github.com/allisson/posadmin/internal/errors"
)

// AuthorizerUseCaseImpl handles account liveness checks and effective
// capability resolution.
type AuthorizerUseCaseImpl struct {
	accountRepo AccountRepository
	grantRepo   GrantRepository
}

// NewAuthorizerUseCase creates a new AuthorizerUseCaseImpl
func NewAuthorizerUseCase(accountRepo AccountRepository, grantRepo GrantRepository) *AuthorizerUseCaseImpl {
	return &AuthorizerUseCaseImpl{
		accountRepo: accountRepo,
		grantRepo:   grantRepo,
	}
}

// CheckLive re-validates that the account still exists and is not soft-deleted.
// A missing or deleted account yields domain.ErrAccountNotLive; infrastructure
// failures are propagated unchanged so they surface as server errors, never as
// an authentication denial.
func (uc *AuthorizerUseCaseImpl) CheckLive(ctx context.Context, accountID uuid.UUID) error {
	live, err := uc.accountRepo.IsLive(ctx, accountID)
	if err != nil {
		return err
	}
	if !live {
		return domain.ErrAccountNotLive
	}
	return nil
}

// Resolve computes the effective capability set for an account as the union of
// its role's default grants and its per-account overrides. The two grant lists
// are fetched concurrently; soft-deleted capabilities are dropped when the set
// is built.
func (uc *AuthorizerUseCaseImpl) Resolve(ctx context.Context, accountID uuid.UUID) (domain.CapabilitySet, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrAccountNotLive
		}
		return nil, err
	}
	if account.IsDeleted() {
		return nil, domain.ErrAccountNotLive
	}

	var roleCapabilities, accountCapabilities []*domain.Capability

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roleCapabilities, err = uc.grantRepo.ListRoleCapabilities(gctx, account.RoleID)
		return err
	})
	g.Go(func() error {
		var err error
		accountCapabilities, err = uc.grantRepo.ListAccountCapabilities(gctx, accountID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]*domain.Capability, 0, len(roleCapabilities)+len(accountCapabilities))
	all = append(all, roleCapabilities...)
	all = append(all, accountCapabilities...)

	return domain.NewCapabilitySet(all...), nil
}
