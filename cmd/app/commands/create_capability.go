package commands

import (
	"context"
	"fmt"
	"log/slog"

	authUseCase "github.com/allisson/posadmin/internal/auth/usecase"
)

// RunCreateCapability registers a new named capability. Outputs the new
// capability ID in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateCapability(
	ctx context.Context,
	accountUseCase authUseCase.AccountUseCase,
	logger *slog.Logger,
	io IOTuple,
	name string,
	format string,
) error {
	logger.Info("creating new capability", slog.String("name", name))

	capability, err := accountUseCase.CreateCapability(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to create capability: %w", err)
	}

	if format == "json" {
		outputJSON(map[string]string{
			"capability_id": capability.ID.String(),
			"name":          capability.Name,
		}, io.Writer)
	} else {
		outputKeyValue(io.Writer, "capability_id", capability.ID.String())
		outputKeyValue(io.Writer, "name", capability.Name)
	}

	logger.Info("capability created successfully",
		slog.String("capability_id", capability.ID.String()))

	return nil
}
