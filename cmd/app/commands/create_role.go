package commands

import (
	"context"
	"fmt"
	"log/slog"

	authUseCase "github.com/allisson/posadmin/internal/auth/usecase"
)

// RunCreateRole creates a new role. Outputs the new role ID in either text or
// JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateRole(
	ctx context.Context,
	accountUseCase authUseCase.AccountUseCase,
	logger *slog.Logger,
	io IOTuple,
	name string,
	format string,
) error {
	logger.Info("creating new role", slog.String("name", name))

	role, err := accountUseCase.CreateRole(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	if format == "json" {
		outputJSON(map[string]string{
			"role_id": role.ID.String(),
			"name":    role.Name,
		}, io.Writer)
	} else {
		outputKeyValue(io.Writer, "role_id", role.ID.String())
		outputKeyValue(io.Writer, "name", role.Name)
	}

	logger.Info("role created successfully", slog.String("role_id", role.ID.String()))

	return nil
}
