package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/posadmin/internal/auth/domain"
	usecaseMocks "github.com/allisson/posadmin/internal/auth/usecase/mocks"
	"github.com/allisson/posadmin/internal/metrics"
)

func TestSessionUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("SignIn passes through results", func(t *testing.T) {
		next := &usecaseMocks.MockSessionUseCase{}
		decorated := NewSessionUseCaseWithMetrics(next, metrics.NewNoOpBusinessMetrics())

		input := domain.SignInInput{Username: "manager", Password: "my-password"}
		output := &domain.SignInOutput{Token: "signed-token", ExpiresAt: time.Now().UTC()}
		next.On("SignIn", ctx, input).Return(output, nil)

		got, err := decorated.SignIn(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, output, got)
	})

	t.Run("Authenticate passes through errors", func(t *testing.T) {
		next := &usecaseMocks.MockSessionUseCase{}
		decorated := NewSessionUseCaseWithMetrics(next, metrics.NewNoOpBusinessMetrics())

		next.On("Authenticate", ctx, "bad-token").Return(nil, domain.ErrInvalidToken)

		_, err := decorated.Authenticate(ctx, "bad-token")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
	})
}

func TestAuthorizerUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.Must(uuid.NewV7())

	t.Run("CheckLive passes through results", func(t *testing.T) {
		next := &usecaseMocks.MockAuthorizerUseCase{}
		decorated := NewAuthorizerUseCaseWithMetrics(next, metrics.NewNoOpBusinessMetrics())

		next.On("CheckLive", ctx, accountID).Return(nil)

		assert.NoError(t, decorated.CheckLive(ctx, accountID))
	})

	t.Run("Resolve passes through results", func(t *testing.T) {
		next := &usecaseMocks.MockAuthorizerUseCase{}
		decorated := NewAuthorizerUseCaseWithMetrics(next, metrics.NewNoOpBusinessMetrics())

		set := domain.NewCapabilitySet(&domain.Capability{ID: uuid.Must(uuid.NewV7()), Name: "view-reports"})
		next.On("Resolve", ctx, accountID).Return(set, nil)

		got, err := decorated.Resolve(ctx, accountID)
		require.NoError(t, err)
		assert.Equal(t, set, got)
	})
}
