package postgres

import (
	"context"
	"testing"
	"time"

	"tripwallet/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactor_Begin_SetsLockTimeout(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	transactor := NewTransactor(mock, 3*time.Second)

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL lock_timeout").
		WillReturnResult(pgxmock.NewResult("SET", 0))
	mock.ExpectCommit()

	tx, err := transactor.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_Begin_NoTimeout(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	transactor := NewTransactor(mock, 0)

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := transactor.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWrapError_LockTimeoutIsRetryable(t *testing.T) {
	err := wrapError("lock wallet", &pgconn.PgError{Code: "55P03"})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SYS_002", appErr.Code)
	assert.True(t, appErr.Retryable)
}

func TestWrapError_DeadlockIsRetryable(t *testing.T) {
	err := wrapError("transfer", &pgconn.PgError{Code: "40P01"})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SYS_002", appErr.Code)
	assert.True(t, appErr.Retryable)
}

func TestWrapError_BalanceCheckViolation(t *testing.T) {
	err := wrapError("debit wallet", &pgconn.PgError{
		Code:           "23514",
		ConstraintName: "wallets_balance_non_negative",
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "WAL_001", appErr.Code)
	assert.False(t, appErr.Retryable)
}
