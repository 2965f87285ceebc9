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

// PostgreSQLRoleRepository handles role persistence for PostgreSQL
type PostgreSQLRoleRepository struct {
	db *sql.DB
}

// NewPostgreSQLRoleRepository creates a new PostgreSQLRoleRepository
func NewPostgreSQLRoleRepository(db *sql.DB) *PostgreSQLRoleRepository {
	return &PostgreSQLRoleRepository{
		db: db,
	}
}

// Create inserts a new role
func (r *PostgreSQLRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO roles (id, name, created_at, updated_at)
			  VALUES ($1, $2, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, role.ID, role.Name)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// GetByID retrieves a live role by ID
func (r *PostgreSQLRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	var role domain.Role
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at, deleted_at
			  FROM roles WHERE id = $1 AND deleted_at IS NULL`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt, &role.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role by id")
	}

	return &role, nil
}

// GetByName retrieves a live role by name
func (r *PostgreSQLRoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at, deleted_at
			  FROM roles WHERE name = $1 AND deleted_at IS NULL`

	err := querier.QueryRowContext(ctx, query, name).Scan(
		&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt, &role.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role by name")
	}

	return &role, nil
}

// List retrieves live roles with pagination, ordered by name
func (r *PostgreSQLRoleRepository) List(ctx context.Context, offset, limit int) ([]*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at, deleted_at
			  FROM roles WHERE deleted_at IS NULL
			  ORDER BY name ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer rows.Close()

	var roles []*domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt, &role.DeletedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		roles = append(roles, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}

	return roles, nil
}
