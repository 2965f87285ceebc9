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

// MySQLAccountRepository handles account persistence for MySQL
type MySQLAccountRepository struct {
	db *sql.DB
}

// NewMySQLAccountRepository creates a new MySQLAccountRepository
func NewMySQLAccountRepository(db *sql.DB) *MySQLAccountRepository {
	return &MySQLAccountRepository{
		db: db,
	}
}

// Create inserts a new account
func (r *MySQLAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO accounts (id, username, password, role_id, created_at, updated_at)
			  VALUES (?, ?, ?, ?, NOW(), NOW())`

	// Convert UUIDs to bytes for MySQL BINARY(16)
	idBytes, err := account.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	roleIDBytes, err := account.RoleID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(ctx, query, idBytes, account.Username, account.Password, roleIDBytes)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrAccountAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create account")
	}
	return nil
}

// GetByID retrieves an account by ID, including soft-deleted accounts
func (r *MySQLAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, password, role_id, created_at, updated_at, deleted_at
			  FROM accounts WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	account, err := scanMySQLAccount(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account by id")
	}

	return account, nil
}

// GetByUsername retrieves a live account by username
func (r *MySQLAccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, password, role_id, created_at, updated_at, deleted_at
			  FROM accounts WHERE username = ? AND deleted_at IS NULL`

	account, err := scanMySQLAccount(querier.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get account by username")
	}

	return account, nil
}

// IsLive reports whether the account exists and is not soft-deleted
func (r *MySQLAccountRepository) IsLive(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	querier := database.GetTx(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = ? AND deleted_at IS NULL)`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return false, apperrors.Wrap(err, "failed to marshal UUID")
	}

	if err := querier.QueryRowContext(ctx, query, idBytes).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check account liveness")
	}

	return exists, nil
}

// List retrieves live accounts with pagination, newest first
func (r *MySQLAccountRepository) List(ctx context.Context, offset, limit int) ([]*domain.Account, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, username, password, role_id, created_at, updated_at, deleted_at
			  FROM accounts WHERE deleted_at IS NULL
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list accounts")
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanMySQLAccount(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan account")
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate accounts")
	}

	return accounts, nil
}

// SoftDelete marks an account as deleted without removing the row
func (r *MySQLAccountRepository) SoftDelete(ctx context.Context, id uuid.UUID, deletedAt time.Time) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE accounts
			  SET deleted_at = ?, updated_at = NOW()
			  WHERE id = ? AND deleted_at IS NULL`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, deletedAt, idBytes)
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

// rowScanner abstracts sql.Row and sql.Rows for shared scan helpers
type rowScanner interface {
	Scan(dest ...any) error
}

// scanMySQLAccount scans an account row, converting BINARY(16) columns back to UUIDs
func scanMySQLAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	var idBytes, roleIDBytes []byte

	if err := row.Scan(
		&idBytes, &account.Username, &account.Password, &roleIDBytes,
		&account.CreatedAt, &account.UpdatedAt, &account.DeletedAt,
	); err != nil {
		return nil, err
	}

	if err := account.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := account.RoleID.UnmarshalBinary(roleIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &account, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
