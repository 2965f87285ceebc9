package commands

import (
	"context"
	"fmt"
	"log/slog"

	authUseCase "github.com/allisson/posadmin/internal/auth/usecase"
)

// RunGrantRoleCapability adds a capability to a role's default grant set.
// Both the role and the capability are referenced by name.
//
// Requirements: Database must be migrated and accessible.
func RunGrantRoleCapability(
	ctx context.Context,
	accountUseCase authUseCase.AccountUseCase,
	logger *slog.Logger,
	io IOTuple,
	roleName string,
	capabilityName string,
) error {
	logger.Info("granting capability to role",
		slog.String("role", roleName),
		slog.String("capability", capabilityName),
	)

	if err := accountUseCase.GrantRoleCapability(ctx, roleName, capabilityName); err != nil {
		return fmt.Errorf("failed to grant capability: %w", err)
	}

	_, _ = fmt.Fprintf(io.Writer, "granted capability %q to role %q\n", capabilityName, roleName)

	logger.Info("capability granted successfully")

	return nil
}
