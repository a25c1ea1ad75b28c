package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestTxManager_WithTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := NewTxManager(db, zap.NewNop())

	t.Run("commits and exposes the transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE profiles").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := m.WithTransaction(context.Background(), func(ctx context.Context) error {
			exec := ExecutorFrom(ctx, db)
			assert.NotEqual(t, Executor(db), exec)

			// nested calls join the outer transaction
			return m.WithTransaction(ctx, func(ctx context.Context) error {
				_, err := ExecutorFrom(ctx, db).ExecContext(ctx, "UPDATE profiles SET last_used = 1")
				return err
			})
		})
		require.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := m.WithTransaction(context.Background(), func(ctx context.Context) error { return boom })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.Panics(t, func() {
			_ = m.WithTransaction(context.Background(), func(ctx context.Context) error { panic("boom") })
		})
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecutorFrom_WithoutTransaction(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, Executor(db), ExecutorFrom(context.Background(), db))
}
