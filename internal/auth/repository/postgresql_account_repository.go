// Package repository provides data persistence implementations for
// authentication and authorization entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/posadmin/internal/auth/domain"
	"github.com/allisson/posadmin/internal/database"

	apperrors "github.com/allisson/posadmin/internal/errors"
)

// PostgreSQLAccountRepository handles account persistence for PostgreSQL
type PostgreSQLAccountRepository struct {
	db *sql.DB
}

// NewPostgreSQLAccountRepository creates a new PostgreSQLAccountRepository
func NewPostgreSQLAccountRepository(db *sql.DB) *PostgreSQLAccountRepository {
	return &PostgreSQLAccountRepository{
		db: db,
	}
}

// Create inserts a new account
func (r *PostgreSQLAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO accounts (id, username, password, role_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())`

	_, err := querier.ExecContext(ctx, query, account.ID, account.Username, account.Password, account.RoleID)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// GetByID retrieves an account by ID, including soft-deleted accounts
func (r *PostgreSQLAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, password, role_id, created_at, updated_at, deleted_at
			  FROM accounts WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&account.ID, &account.Username, &account.Password, &account.RoleID,
		&account.CreatedAt, &account.UpdatedAt, &account.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account by id")
	}

	return &account, nil
}

// GetByUsername retrieves a live account by username
func (r *PostgreSQLAccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var account domain.Account
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, password, role_id, created_at, updated_at, deleted_at
			  FROM accounts WHERE username = $1 AND deleted_at IS NULL`

	err := querier.QueryRowContext(ctx, query, username).Scan(
		&account.ID, &account.Username, &account.Password, &account.RoleID,
		&account.CreatedAt, &account.UpdatedAt, &account.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account by username")
	}

	return &account, nil
}

// IsLive reports whether the account exists and is not soft-deleted
func (r *PostgreSQLAccountRepository) IsLive(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1 AND deleted_at IS NULL)`

	err := querier.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check account liveness")
	}

	return exists, nil
}

// List retrieves live accounts with pagination, newest first
func (r *PostgreSQLAccountRepository) List(ctx context.Context, offset, limit int) ([]*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, password, role_id, created_at, updated_at, deleted_at
			  FROM accounts WHERE deleted_at IS NULL
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list accounts")
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID, &account.Username, &account.Password, &account.RoleID,
			&account.CreatedAt, &account.UpdatedAt, &account.DeletedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan account")
		}
		accounts = append(accounts, &account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate accounts")
	}

	return accounts, nil
}

// SoftDelete marks an account as deleted without removing the row
func (r *PostgreSQLAccountRepository) SoftDelete(ctx context.Context, id uuid.UUID, deletedAt time.Time) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE accounts
			  SET deleted_at = $1, updated_at = NOW()
			  WHERE id = $2 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, deletedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to soft delete account")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
