package ports

import (
	"context"

	"tripwallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Exists is the identity check consumed by the ledger core.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// LockByID takes a row lock on the user inside tx. Operations that
	// read-check-write the user's points history serialize on this lock.
	LockByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error)
}

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx run inside an atomic unit under a row lock.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Wallet, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	// AdjustBalance applies balance += delta and returns the updated wallet.
	// The wallet row must already be locked via GetByIDForUpdate; a CHECK
	// constraint rejects any update that would leave the balance negative.
	AdjustBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, delta decimal.Decimal) (*domain.Wallet, error)
}

// TransactionRepository defines persistence for the append-only transaction log.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	// UpdateStatus is the only permitted mutation of an existing row.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus) error
	ListByWallet(ctx context.Context, walletID uuid.UUID, offset, limit int) ([]domain.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Transaction, error)
	SumByWalletAndType(ctx context.Context, walletID uuid.UUID, txType domain.TransactionType) (decimal.Decimal, error)
	SummaryByWallet(ctx context.Context, walletID uuid.UUID) (*domain.WalletSummary, error)
	SummaryByUser(ctx context.Context, userID uuid.UUID) (*domain.WalletSummary, error)
}

// PointsRepository defines persistence for the append-only points ledger.
type PointsRepository interface {
	Append(ctx context.Context, tx pgx.Tx, pt *domain.PointsTransaction) error
	// SumByUser computes the derived balance outside any atomic unit.
	SumByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// SumByUserLocked computes the balance inside tx, after the owning user
	// row has been locked, so the check-then-append cannot race.
	SumByUserLocked(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.PointsTransaction, error)
}

// TourRepository defines persistence for tours and their bookings.
type TourRepository interface {
	Create(ctx context.Context, tour *domain.Tour) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error)
	List(ctx context.Context, offset, limit int) ([]domain.Tour, error)
	CreateBooking(ctx context.Context, tx pgx.Tx, booking *domain.TourBooking) error
	ListBookingsByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.TourBooking, error)
}

// DBTransactor provides database transaction management. Every atomic unit in
// the ledger (balance change + log append) runs between Begin and Commit.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
