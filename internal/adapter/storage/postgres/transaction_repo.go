package postgres

import (
	"context"
	"errors"
	"time"

	"tripwallet/internal/core/domain"
	"tripwallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionRepo implements ports.TransactionRepository over the append-only
// transaction log.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create appends a transaction within a database transaction. Rows are never
// updated afterwards except through UpdateStatus.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (id, wallet_id, amount, transaction_type, transaction_category, status, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.WalletID, t.Amount, t.Type, t.Category, t.Status, t.Details,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return wrapError("insert transaction", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID. Returns nil, nil when absent.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT id, wallet_id, amount, transaction_type, transaction_category, status, details, created_at, updated_at
		FROM transactions WHERE id = $1`

	t := &domain.Transaction{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.WalletID, &t.Amount, &t.Type, &t.Category, &t.Status, &t.Details,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapError("get transaction by id", err)
	}
	return t, nil
}

// UpdateStatus transitions a transaction's status within a database transaction.
func (r *TransactionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus) error {
	query := `UPDATE transactions SET status = $1, updated_at = $2 WHERE id = $3`

	tag, err := tx.Exec(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return wrapError("update transaction status", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound("transaction")
	}
	return nil
}

// ListByWallet fetches a stable page of a wallet's transactions, oldest
// first. An empty page is a valid result; wallet existence is the caller's
// concern.
func (r *TransactionRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, offset, limit int) ([]domain.Transaction, error) {
	query := `SELECT id, wallet_id, amount, transaction_type, transaction_category, status, details, created_at, updated_at
		FROM transactions WHERE wallet_id = $1
		ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`

	return r.queryTransactions(ctx, query, walletID, limit, offset)
}

// ListByUser fetches a stable page of transactions across all the user's wallets.
func (r *TransactionRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Transaction, error) {
	query := `SELECT t.id, t.wallet_id, t.amount, t.transaction_type, t.transaction_category, t.status, t.details, t.created_at, t.updated_at
		FROM transactions t
		JOIN wallets w ON w.id = t.wallet_id
		WHERE w.user_id = $1
		ORDER BY t.created_at ASC, t.id ASC LIMIT $2 OFFSET $3`

	return r.queryTransactions(ctx, query, userID, limit, offset)
}

// SumByWalletAndType sums signed amounts of one type; zero when no rows match.
func (r *TransactionRepo) SumByWalletAndType(ctx context.Context, walletID uuid.UUID, txType domain.TransactionType) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE wallet_id = $1 AND transaction_type = $2`

	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, walletID, txType).Scan(&sum); err != nil {
		return decimal.Zero, wrapError("sum transactions", err)
	}
	return sum, nil
}

// SummaryByWallet aggregates a wallet's credits and debits in one query.
// Debits are stored negative, so the current balance is credits + debits.
func (r *TransactionRepo) SummaryByWallet(ctx context.Context, walletID uuid.UUID) (*domain.WalletSummary, error) {
	query := `SELECT
		COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'credit'), 0) AS total_credits,
		COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'debit'), 0) AS total_debits
		FROM transactions WHERE wallet_id = $1`

	return r.scanSummary(r.pool.QueryRow(ctx, query, walletID))
}

// SummaryByUser aggregates across all wallets owned by the user. A user with
// no wallets gets a zeroed summary, not an error.
func (r *TransactionRepo) SummaryByUser(ctx context.Context, userID uuid.UUID) (*domain.WalletSummary, error) {
	query := `SELECT
		COALESCE(SUM(t.amount) FILTER (WHERE t.transaction_type = 'credit'), 0) AS total_credits,
		COALESCE(SUM(t.amount) FILTER (WHERE t.transaction_type = 'debit'), 0) AS total_debits
		FROM transactions t
		JOIN wallets w ON w.id = t.wallet_id
		WHERE w.user_id = $1`

	return r.scanSummary(r.pool.QueryRow(ctx, query, userID))
}

func (r *TransactionRepo) scanSummary(row pgx.Row) (*domain.WalletSummary, error) {
	s := &domain.WalletSummary{}
	if err := row.Scan(&s.TotalCredits, &s.TotalDebits); err != nil {
		return nil, wrapError("scan summary", err)
	}
	s.CurrentBalance = s.TotalCredits.Add(s.TotalDebits)
	return s, nil
}

func (r *TransactionRepo) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapError("list transactions", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t := domain.Transaction{}
		err := rows.Scan(
			&t.ID, &t.WalletID, &t.Amount, &t.Type, &t.Category, &t.Status, &t.Details,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, wrapError("scan transaction row", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate transaction rows", err)
	}
	return txns, nil
}
