package commands

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/posadmin/internal/auth/domain"
	authMocks "github.com/allisson/posadmin/internal/auth/usecase/mocks"
)

func TestRunCreateRole(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	roleID := uuid.Must(uuid.NewV7())

	t.Run("text-output", func(t *testing.T) {
		accountUseCase := &authMocks.MockAccountUseCase{}
		accountUseCase.On("CreateRole", ctx, "store-manager").
			Return(&authDomain.Role{ID: roleID, Name: "store-manager"}, nil)

		var out bytes.Buffer
		err := RunCreateRole(ctx, accountUseCase, logger, IOTuple{Writer: &out}, "store-manager", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), roleID.String())
		require.Contains(t, out.String(), "store-manager")
		accountUseCase.AssertExpectations(t)
	})

	t.Run("duplicate-role", func(t *testing.T) {
		accountUseCase := &authMocks.MockAccountUseCase{}
		accountUseCase.On("CreateRole", ctx, "store-manager").
			Return(nil, authDomain.ErrRoleAlreadyExists)

		var out bytes.Buffer
		err := RunCreateRole(ctx, accountUseCase, logger, IOTuple{Writer: &out}, "store-manager", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create role")
	})
}
