package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/posadmin/internal/auth/domain"
	"github.com/allisson/posadmin/internal/database"

	apperrors "github.com/allisson/posadmin/internal/errors"
)

// PostgreSQLGrantRepository handles capability grant persistence for PostgreSQL.
// It covers both role-default grants and per-account overrides.
type PostgreSQLGrantRepository struct {
	db *sql.DB
}

// NewPostgreSQLGrantRepository creates a new PostgreSQLGrantRepository
func NewPostgreSQLGrantRepository(db *sql.DB) *PostgreSQLGrantRepository {
	return &PostgreSQLGrantRepository{
		db: db,
	}
}

// GrantRoleCapability associates a capability with a role
func (r *PostgreSQLGrantRepository) GrantRoleCapability(ctx context.Context, roleID, capabilityID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO role_capabilities (role_id, capability_id, created_at)
			  VALUES ($1, $2, NOW())`

	_, err := querier.ExecContext(ctx, query, roleID, capabilityID)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrGrantAlreadyExists
		}
		return apperrors.Wrap(err, "failed to grant role capability")
	}
	return nil
}

// ListRoleCapabilities retrieves all capabilities granted to a role.
// Soft-deleted capabilities are excluded.
func (r *PostgreSQLGrantRepository) ListRoleCapabilities(ctx context.Context, roleID uuid.UUID) ([]*domain.Capability, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT c.id, c.name, c.created_at, c.updated_at, c.deleted_at
			  FROM role_capabilities rc
			  JOIN capabilities c ON c.id = rc.capability_id
			  WHERE rc.role_id = $1 AND c.deleted_at IS NULL`

	rows, err := querier.QueryContext(ctx, query, roleID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list role capabilities")
	}
	defer rows.Close()

	return collectCapabilityRows(rows)
}

// GrantAccountCapability associates a capability with a single account
func (r *PostgreSQLGrantRepository) GrantAccountCapability(ctx context.Context, accountID, capabilityID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO account_capabilities (account_id, capability_id, created_at)
			  VALUES ($1, $2, NOW())`

	_, err := querier.ExecContext(ctx, query, accountID, capabilityID)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrGrantAlreadyExists
		}
		return apperrors.Wrap(err, "failed to grant account capability")
	}
	return nil
}

// RevokeAccountCapability removes a per-account capability override
func (r *PostgreSQLGrantRepository) RevokeAccountCapability(ctx context.Context, accountID, capabilityID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM account_capabilities
			  WHERE account_id = $1 AND capability_id = $2`

	result, err := querier.ExecContext(ctx, query, accountID, capabilityID)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke account capability")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return domain.ErrGrantNotFound
	}

	return nil
}

// ListAccountCapabilities retrieves all capabilities granted directly to an account.
// Soft-deleted capabilities are excluded.
func (r *PostgreSQLGrantRepository) ListAccountCapabilities(ctx context.Context, accountID uuid.UUID) ([]*domain.Capability, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT c.id, c.name, c.created_at, c.updated_at, c.deleted_at
			  FROM account_capabilities ac
			  JOIN capabilities c ON c.id = ac.capability_id
			  WHERE ac.account_id = $1 AND c.deleted_at IS NULL`

	rows, err := querier.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list account capabilities")
	}
	defer rows.Close()

	return collectCapabilityRows(rows)
}
