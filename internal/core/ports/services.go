package ports

import (
	"context"
	"time"

	"tripwallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(userID uuid.UUID, email string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// PointsBalanceCache is a best-effort read-through cache for derived points
// balances. The ledger remains the source of truth; a stale or unavailable
// cache must never affect correctness.
type PointsBalanceCache interface {
	Get(ctx context.Context, userID uuid.UUID) (int64, bool, error)
	Set(ctx context.Context, userID uuid.UUID, balance int64, ttl time.Duration) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// AwardPolicy maps an activity type to the points it earns. Injected so the
// award schedule is configuration, not ledger logic.
type AwardPolicy func(activityType string) int64

// --- Service Ports (Business Logic) ---

// WalletService is the ledger write path: wallet lifecycle plus the
// funding/transfer engine. Every balance change and its transaction record
// commit as one atomic unit.
type WalletService interface {
	OpenWallet(ctx context.Context, userID uuid.UUID, currency string) (*domain.Wallet, error)
	GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error)
	ListWallets(ctx context.Context, userID uuid.UUID) ([]domain.Wallet, error)
	Fund(ctx context.Context, req FundRequest) (*FundResult, error)
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
	UpdateTransactionStatus(ctx context.Context, transactionID uuid.UUID, status domain.TransactionStatus) (*domain.Transaction, error)
}

// FundRequest holds validated input for funding a wallet.
type FundRequest struct {
	WalletID uuid.UUID
	Amount   decimal.Decimal
	Source   string // e.g. "card", "mobile_money"; recorded on the transaction
}

// FundResult is the committed outcome of a funding operation.
type FundResult struct {
	Wallet      *domain.Wallet
	Transaction *domain.Transaction
}

// TransferRequest holds validated input for a wallet-to-wallet transfer.
type TransferRequest struct {
	FromWalletID uuid.UUID
	ToWalletID   uuid.UUID
	Amount       decimal.Decimal
}

// TransferResult holds both post-transfer wallets.
type TransferResult struct {
	From *domain.Wallet
	To   *domain.Wallet
}

// PointsService is the loyalty-points ledger: append-only earn/redeem events
// with the balance always derived from the full history.
type PointsService interface {
	Earn(ctx context.Context, req EarnRequest) (*EarnResult, error)
	Redeem(ctx context.Context, req RedeemRequest) (*RedeemResult, error)
	Balance(ctx context.Context, userID uuid.UUID) (int64, error)
	History(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.PointsTransaction, error)
}

// EarnRequest records a point-earning activity. The awarded amount comes from
// the injected AwardPolicy, not the caller.
type EarnRequest struct {
	UserID       uuid.UUID
	ActivityType string
	Details      *string
}

// EarnResult is the appended record plus the new derived balance.
type EarnResult struct {
	Transaction *domain.PointsTransaction
	Balance     int64
}

// RedeemRequest spends points on a reward.
type RedeemRequest struct {
	UserID     uuid.UUID
	Points     int64
	RewardType string
}

// RedeemResult is the appended record plus the remaining balance.
type RedeemResult struct {
	Transaction *domain.PointsTransaction
	Balance     int64
}

// BookingService books tours: one atomic unit debits the paying wallet,
// records the booking and awards the booking points.
type BookingService interface {
	BookTour(ctx context.Context, req BookTourRequest) (*BookTourResult, error)
	ListTours(ctx context.Context, offset, limit int) ([]domain.Tour, error)
	ListBookings(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.TourBooking, error)
}

// BookTourRequest holds validated input for booking a tour.
type BookTourRequest struct {
	UserID   uuid.UUID
	WalletID uuid.UUID
	TourID   uuid.UUID
}

// BookTourResult is the committed outcome of a booking.
type BookTourResult struct {
	Booking      *domain.TourBooking
	Wallet       *domain.Wallet
	PointsEarned int64
}

// ReportingService is the read-only query engine over the two ledgers.
type ReportingService interface {
	WalletSummary(ctx context.Context, walletID uuid.UUID) (*domain.WalletSummary, error)
	UserSummary(ctx context.Context, userID uuid.UUID) (*domain.WalletSummary, error)
	WalletTransactions(ctx context.Context, walletID uuid.UUID, offset, limit int) ([]domain.Transaction, error)
	UserTransactions(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Transaction, error)
	Transaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
}

// AuthService defines user registration and login.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, time.Time, error) // token, expiry, error
}

// RegisterRequest holds input for user registration.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}
