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

// MySQLRoleRepository handles role persistence for MySQL
type MySQLRoleRepository struct {
	db *sql.DB
}

// NewMySQLRoleRepository creates a new MySQLRoleRepository
func NewMySQLRoleRepository(db *sql.DB) *MySQLRoleRepository {
	return &MySQLRoleRepository{
		db: db,
	}
}

// Create inserts a new role
func (r *MySQLRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO roles (id, name, created_at, updated_at)
			  VALUES (?, ?, NOW(), NOW())`

	idBytes, err := role.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, idBytes, role.Name)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrRoleAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create role")
	}
	return nil
}

// GetByID retrieves a live role by ID
func (r *MySQLRoleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at, deleted_at
			  FROM roles WHERE id = ? AND deleted_at IS NULL`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	role, err := scanMySQLRole(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role by id")
	}

	return role, nil
}

// GetByName retrieves a live role by name
func (r *MySQLRoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at, deleted_at
			  FROM roles WHERE name = ? AND deleted_at IS NULL`

	role, err := scanMySQLRole(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get role by name")
	}

	return role, nil
}

// List retrieves live roles with pagination, ordered by name
func (r *MySQLRoleRepository) List(ctx context.Context, offset, limit int) ([]*domain.Role, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at, deleted_at
			  FROM roles WHERE deleted_at IS NULL
			  ORDER BY name ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list roles")
	}
	defer rows.Close()

	var roles []*domain.Role
	for rows.Next() {
		role, err := scanMySQLRole(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan role")
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate roles")
	}

	return roles, nil
}

// scanMySQLRole scans a role row, converting the BINARY(16) id back to a UUID
func scanMySQLRole(row rowScanner) (*domain.Role, error) {
	var role domain.Role
	var idBytes []byte

	if err := row.Scan(&idBytes, &role.Name, &role.CreatedAt, &role.UpdatedAt, &role.DeletedAt); err != nil {
		return nil, err
	}

	if err := role.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &role, nil
}
