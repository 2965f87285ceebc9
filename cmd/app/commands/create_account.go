package commands

import (
	"context"
	"fmt"
	"log/slog"

	authDomain "github.com/allisson/posadmin/internal/auth/domain"
	authUseCase "github.com/allisson/posadmin/internal/auth/usecase"
)

// RunCreateAccount provisions a new staff account bound to an existing role.
// The role is referenced by name and resolved before the account is created.
// Outputs the new account ID in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateAccount(
	ctx context.Context,
	accountUseCase authUseCase.AccountUseCase,
	roleRepository authUseCase.RoleRepository,
	logger *slog.Logger,
	io IOTuple,
	username string,
	password string,
	roleName string,
	format string,
) error {
	logger.Info("creating new account",
		slog.String("username", username),
		slog.String("role", roleName),
	)

	role, err := roleRepository.GetByName(ctx, roleName)
	if err != nil {
		return fmt.Errorf("failed to resolve role %q: %w", roleName, err)
	}

	account, err := accountUseCase.CreateAccount(ctx, authDomain.CreateAccountInput{
		Username: username,
		Password: password,
		RoleID:   role.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	if format == "json" {
		outputJSON(map[string]string{
			"account_id": account.ID.String(),
			"username":   account.Username,
			"role":       roleName,
		}, io.Writer)
	} else {
		outputKeyValue(io.Writer, "account_id", account.ID.String())
		outputKeyValue(io.Writer, "username", account.Username)
		outputKeyValue(io.Writer, "role", roleName)
	}

	logger.Info("account created successfully",
		slog.String("account_id", account.ID.String()),
		slog.String("username", username),
	)

	return nil
}
