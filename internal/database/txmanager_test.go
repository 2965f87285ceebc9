package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxManager_WithTx(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE accounts").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		manager := NewTxManager(db)
		err = manager.WithTx(context.Background(), func(ctx context.Context) error {
			querier := GetTx(ctx, db)
			_, execErr := querier.ExecContext(ctx, "UPDATE accounts SET username = $1", "cashier")
			return execErr
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		manager := NewTxManager(db)
		err = manager.WithTx(context.Background(), func(ctx context.Context) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns begin error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("begin failed"))

		manager := NewTxManager(db)
		err = manager.WithTx(context.Background(), func(ctx context.Context) error {
			return nil
		})

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetTx(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("returns db when no transaction in context", func(t *testing.T) {
		querier := GetTx(context.Background(), db)
		assert.Equal(t, db, querier)
	})
}
