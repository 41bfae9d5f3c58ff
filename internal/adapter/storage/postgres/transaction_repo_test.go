package postgres

import (
	"context"
	"testing"
	"time"

	"tripwallet/internal/core/domain"
	"tripwallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction(walletID uuid.UUID, amount int64) *domain.Transaction {
	now := time.Now().UTC().Truncate(time.Microsecond)
	txType := domain.TransactionTypeCredit
	if amount < 0 {
		txType = domain.TransactionTypeDebit
	}
	return &domain.Transaction{
		ID:        uuid.New(),
		WalletID:  walletID,
		Amount:    decimal.NewFromInt(amount),
		Type:      txType,
		Category:  domain.CategoryWalletFunding,
		Status:    domain.TransactionStatusCompleted,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func transactionColumns() []string {
	return []string{"id", "wallet_id", "amount", "transaction_type", "transaction_category", "status", "details", "created_at", "updated_at"}
}

func transactionRow(t *domain.Transaction) *pgxmock.Rows {
	return pgxmock.NewRows(transactionColumns()).AddRow(
		t.ID, t.WalletID, t.Amount, t.Type, t.Category, t.Status, t.Details,
		t.CreatedAt, t.UpdatedAt,
	)
}

func TestTransactionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction(uuid.New(), 100)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(txn.ID, txn.WalletID, txn.Amount, txn.Type, txn.Category, txn.Status,
			txn.Details, txn.CreatedAt, txn.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Create(context.Background(), dbTx, txn)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction(uuid.New(), -40)

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE id").
		WithArgs(txn.ID).
		WillReturnRows(transactionRow(txn))

	result, err := repo.GetByID(context.Background(), txn.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.TransactionTypeDebit, result.Type)
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(-40)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_UpdateStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE transactions SET status").
		WithArgs(domain.TransactionStatusCompleted, pgxmock.AnyArg(), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateStatus(context.Background(), dbTx, id, domain.TransactionStatusCompleted)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_UpdateStatus_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE transactions SET status").
		WithArgs(domain.TransactionStatusFailed, pgxmock.AnyArg(), id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.UpdateStatus(context.Background(), dbTx, id, domain.TransactionStatusFailed)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "WAL_004", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_ListByWallet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	walletID := uuid.New()
	t1 := newTestTransaction(walletID, 100)
	t2 := newTestTransaction(walletID, -30)

	rows := pgxmock.NewRows(transactionColumns()).
		AddRow(t1.ID, t1.WalletID, t1.Amount, t1.Type, t1.Category, t1.Status, t1.Details, t1.CreatedAt, t1.UpdatedAt).
		AddRow(t2.ID, t2.WalletID, t2.Amount, t2.Type, t2.Category, t2.Status, t2.Details, t2.CreatedAt, t2.UpdatedAt)

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE wallet_id .+ ORDER BY created_at ASC").
		WithArgs(walletID, 50, 0).
		WillReturnRows(rows)

	result, err := repo.ListByWallet(context.Background(), walletID, 0, 50)
	require.NoError(t, err)
	assert.Len(t, result, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_ListByWallet_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	walletID := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE wallet_id").
		WithArgs(walletID, 50, 0).
		WillReturnRows(pgxmock.NewRows(transactionColumns()))

	result, err := repo.ListByWallet(context.Background(), walletID, 0, 50)
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_SumByWalletAndType(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	walletID := uuid.New()

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(walletID, domain.TransactionTypeCredit).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.NewFromInt(150)))

	sum, err := repo.SumByWalletAndType(context.Background(), walletID, domain.TransactionTypeCredit)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(150)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_SumByWalletAndType_NoRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	walletID := uuid.New()

	// COALESCE keeps the empty-log case a plain zero, never NULL.
	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(walletID, domain.TransactionTypeDebit).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.Zero))

	sum, err := repo.SumByWalletAndType(context.Background(), walletID, domain.TransactionTypeDebit)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_SummaryByWallet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	walletID := uuid.New()

	rows := pgxmock.NewRows([]string{"total_credits", "total_debits"}).
		AddRow(decimal.NewFromInt(150), decimal.NewFromInt(-40))

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE wallet_id").
		WithArgs(walletID).
		WillReturnRows(rows)

	summary, err := repo.SummaryByWallet(context.Background(), walletID)
	require.NoError(t, err)
	assert.True(t, summary.TotalCredits.Equal(decimal.NewFromInt(150)))
	assert.True(t, summary.TotalDebits.Equal(decimal.NewFromInt(-40)))
	assert.True(t, summary.CurrentBalance.Equal(decimal.NewFromInt(110)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_SummaryByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	userID := uuid.New()

	rows := pgxmock.NewRows([]string{"total_credits", "total_debits"}).
		AddRow(decimal.Zero, decimal.Zero)

	mock.ExpectQuery("SELECT .+ FROM transactions t").
		WithArgs(userID).
		WillReturnRows(rows)

	summary, err := repo.SummaryByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, summary.CurrentBalance.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
