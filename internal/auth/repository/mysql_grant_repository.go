package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/posadmin/internal/auth/domain"
	"github.com/allisson/posadmin/internal/database"

	apperrors "github.com/allisson/posadmin/internal/errors"
)

// MySQLGrantRepository handles capability grant persistence for MySQL.
// It covers both role-default grants and per-account overrides.
type MySQLGrantRepository struct {
	db *sql.DB
}

// NewMySQLGrantRepository creates a new MySQLGrantRepository
func NewMySQLGrantRepository(db *sql.DB) *MySQLGrantRepository {
	return &MySQLGrantRepository{
		db: db,
	}
}

// GrantRoleCapability associates a capability with a role
func (r *MySQLGrantRepository) GrantRoleCapability(ctx context.Context, roleID, capabilityID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO role_capabilities (role_id, capability_id, created_at)
			  VALUES (?, ?, NOW())`

	roleIDBytes, capabilityIDBytes, err := marshalGrantIDs(roleID, capabilityID)
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(ctx, query, roleIDBytes, capabilityIDBytes)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrGrantAlreadyExists
		}
		return apperrors.Wrap(err, "failed to grant role capability")
	}
	return nil
}

// ListRoleCapabilities retrieves all capabilities granted to a role.
// Soft-deleted capabilities are excluded.
func (r *MySQLGrantRepository) ListRoleCapabilities(ctx context.Context, roleID uuid.UUID) ([]*domain.Capability, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT c.id, c.name, c.created_at, c.updated_at, c.deleted_at
			  FROM role_capabilities rc
			  JOIN capabilities c ON c.id = rc.capability_id
			  WHERE rc.role_id = ? AND c.deleted_at IS NULL`

	roleIDBytes, err := roleID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, roleIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list role capabilities")
	}
	defer rows.Close()

	return collectMySQLCapabilityRows(rows)
}

// GrantAccountCapability associates a capability with a single account
func (r *MySQLGrantRepository) GrantAccountCapability(ctx context.Context, accountID, capabilityID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO account_capabilities (account_id, capability_id, created_at)
			  VALUES (?, ?, NOW())`

	accountIDBytes, capabilityIDBytes, err := marshalGrantIDs(accountID, capabilityID)
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(ctx, query, accountIDBytes, capabilityIDBytes)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrGrantAlreadyExists
		}
		return apperrors.Wrap(err, "failed to grant account capability")
	}
	return nil
}

// RevokeAccountCapability removes a per-account capability override
func (r *MySQLGrantRepository) RevokeAccountCapability(ctx context.Context, accountID, capabilityID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM account_capabilities
			  WHERE account_id = ? AND capability_id = ?`

	accountIDBytes, capabilityIDBytes, err := marshalGrantIDs(accountID, capabilityID)
	if err != nil {
		return err
	}

	result, err := querier.ExecContext(ctx, query, accountIDBytes, capabilityIDBytes)
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
func (r *MySQLGrantRepository) ListAccountCapabilities(ctx context.Context, accountID uuid.UUID) ([]*domain.Capability, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT c.id, c.name, c.created_at, c.updated_at, c.deleted_at
			  FROM account_capabilities ac
			  JOIN capabilities c ON c.id = ac.capability_id
			  WHERE ac.account_id = ? AND c.deleted_at IS NULL`

	accountIDBytes, err := accountID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, accountIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list account capabilities")
	}
	defer rows.Close()

	return collectMySQLCapabilityRows(rows)
}

// marshalGrantIDs converts a pair of UUIDs to bytes for MySQL BINARY(16) columns
func marshalGrantIDs(first, second uuid.UUID) ([]byte, []byte, error) {
	firstBytes, err := first.MarshalBinary()
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	secondBytes, err := second.MarshalBinary()
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	return firstBytes, secondBytes, nil
}
