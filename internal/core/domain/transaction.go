package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies the direction or origin of a balance change.
type TransactionType string

const (
	TransactionTypeCredit         TransactionType = "credit"
	TransactionTypeDebit          TransactionType = "debit"
	TransactionTypeFunding        TransactionType = "funding"
	TransactionTypePointsRedeemed TransactionType = "points_redeemed"
)

// TransactionCategory groups transactions by business activity.
type TransactionCategory string

const (
	CategoryWalletFunding TransactionCategory = "wallet_funding"
	CategoryPointUsage    TransactionCategory = "point_usage"
	CategoryTourBooking   TransactionCategory = "tour_booking"
	// CategoryWalletTransfer tags both legs of a wallet-to-wallet transfer.
	CategoryWalletTransfer TransactionCategory = "wallet_transfer"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is an immutable record of a single balance-affecting event on a
// wallet. Amounts are signed: credits positive, debits negative, so a wallet's
// balance always equals the sum of its transaction amounts. Only the status
// may change after creation.
type Transaction struct {
	ID        uuid.UUID           `json:"id"`
	WalletID  uuid.UUID           `json:"wallet_id"`
	Amount    decimal.Decimal     `json:"amount"`
	Type      TransactionType     `json:"transaction_type"`
	Category  TransactionCategory `json:"transaction_category"`
	Status    TransactionStatus   `json:"status"`
	Details   *string             `json:"details,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// IsCredit reports whether the transaction increases the wallet balance.
func (t *Transaction) IsCredit() bool {
	return t.Amount.IsPositive()
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s TransactionStatus) bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed:
		return true
	}
	return false
}

// WalletSummary aggregates a wallet's (or user's) transaction history.
// TotalDebits is a sum of negative amounts, so CurrentBalance is simply the
// sum of the two totals.
type WalletSummary struct {
	TotalCredits   decimal.Decimal `json:"total_credits"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}
