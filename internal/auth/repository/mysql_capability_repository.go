package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/posadmin/internal/auth/domain"
	"github.com/allisson/posadmin/internal/database"

	apperrors "github.com/allisson/posadmin/internal/errors"
)

// MySQLCapabilityRepository handles capability persistence for MySQL
type MySQLCapabilityRepository struct {
	db *sql.DB
}

// NewMySQLCapabilityRepository creates a new MySQLCapabilityRepository
func NewMySQLCapabilityRepository(db *sql.DB) *MySQLCapabilityRepository {
	return &MySQLCapabilityRepository{
		db: db,
	}
}

// Create inserts a new capability
func (r *MySQLCapabilityRepository) Create(ctx context.Context, capability *domain.Capability) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO capabilities (id, name, created_at, updated_at)
			  VALUES (?, ?, NOW(), NOW())`

	idBytes, err := capability.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, idBytes, capability.Name)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrCapabilityAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create capability")
	}
	return nil
}

// GetByID retrieves a live capability by ID
func (r *MySQLCapabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Capability, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at, deleted_at
			  FROM capabilities WHERE id = ? AND deleted_at IS NULL`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	capability, err := scanMySQLCapability(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCapabilityNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get capability by id")
	}

	return capability, nil
}

// GetByName retrieves a live capability by name
func (r *MySQLCapabilityRepository) GetByName(ctx context.Context, name string) (*domain.Capability, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at, deleted_at
			  FROM capabilities WHERE name = ? AND deleted_at IS NULL`

	capability, err := scanMySQLCapability(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCapabilityNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get capability by name")
	}

	return capability, nil
}

// List retrieves live capabilities with pagination, ordered by name
func (r *MySQLCapabilityRepository) List(ctx context.Context, offset, limit int) ([]*domain.Capability, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at, deleted_at
			  FROM capabilities WHERE deleted_at IS NULL
			  ORDER BY name ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list capabilities")
	}
	defer rows.Close()

	return collectMySQLCapabilityRows(rows)
}

// scanMySQLCapability scans a capability row, converting the BINARY(16) id back to a UUID
func scanMySQLCapability(row rowScanner) (*domain.Capability, error) {
	var capability domain.Capability
	var idBytes []byte

	if err := row.Scan(
		&idBytes, &capability.Name, &capability.CreatedAt, &capability.UpdatedAt, &capability.DeletedAt,
	); err != nil {
		return nil, err
	}

	if err := capability.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &capability, nil
}

// collectMySQLCapabilityRows scans all rows into capability entities
func collectMySQLCapabilityRows(rows *sql.Rows) ([]*domain.Capability, error) {
	var capabilities []*domain.Capability
	for rows.Next() {
		capability, err := scanMySQLCapability(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan capability")
		}
		capabilities = append(capabilities, capability)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate capabilities")
	}
	return capabilities, nil
}
