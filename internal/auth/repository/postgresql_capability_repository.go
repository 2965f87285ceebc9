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

// PostgreSQLCapabilityRepository handles capability persistence for PostgreSQL
type PostgreSQLCapabilityRepository struct {
	db *sql.DB
}

// NewPostgreSQLCapabilityRepository creates a new PostgreSQLCapabilityRepository
func NewPostgreSQLCapabilityRepository(db *sql.DB) *PostgreSQLCapabilityRepository {
	return &PostgreSQLCapabilityRepository{
		db: db,
	}
}

// Create inserts a new capability
func (r *PostgreSQLCapabilityRepository) Create(ctx context.Context, capability *domain.Capability) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO capabilities (id, name, created_at, updated_at)
			  VALUES ($1, $2, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, capability.ID, capability.Name)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrCapabilityAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create capability")
	}
	return nil
}

// GetByID retrieves a live capability by ID
func (r *PostgreSQLCapabilityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Capability, error) {
	var capability domain.Capability
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at, deleted_at
			  FROM capabilities WHERE id = $1 AND deleted_at IS NULL`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&capability.ID, &capability.Name, &capability.CreatedAt, &capability.UpdatedAt, &capability.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCapabilityNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get capability by id")
	}

	return &capability, nil
}

// GetByName retrieves a live capability by name
func (r *PostgreSQLCapabilityRepository) GetByName(ctx context.Context, name string) (*domain.Capability, error) {
	var capability domain.Capability
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at, deleted_at
			  FROM capabilities WHERE name = $1 AND deleted_at IS NULL`

	err := querier.QueryRowContext(ctx, query, name).Scan(
		&capability.ID, &capability.Name, &capability.CreatedAt, &capability.UpdatedAt, &capability.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCapabilityNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get capability by name")
	}

	return &capability, nil
}

// List retrieves live capabilities with pagination, ordered by name
func (r *PostgreSQLCapabilityRepository) List(ctx context.Context, offset, limit int) ([]*domain.Capability, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at, deleted_at
			  FROM capabilities WHERE deleted_at IS NULL
			  ORDER BY name ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list capabilities")
	}
	defer rows.Close()

	capabilities, err := collectCapabilityRows(rows)
	if err != nil {
		return nil, err
	}

	return capabilities, nil
}

// collectCapabilityRows scans all rows into capability entities
func collectCapabilityRows(rows *sql.Rows) ([]*domain.Capability, error) {
	var capabilities []*domain.Capability
	for rows.Next() {
		var capability domain.Capability
		if err := rows.Scan(
			&capability.ID, &capability.Name, &capability.CreatedAt, &capability.UpdatedAt, &capability.DeletedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan capability")
		}
		capabilities = append(capabilities, &capability)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate capabilities")
	}
	return capabilities, nil
}
