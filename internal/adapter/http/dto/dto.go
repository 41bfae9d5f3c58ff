package dto

import (
	"time"

	"tripwallet/internal/core/domain"
)

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse is the response body for successful registration.
type RegisterResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// OpenWalletRequest is the request body for opening a wallet.
type OpenWalletRequest struct {
	Currency string `json:"currency" binding:"omitempty,len=3"`
}

// FundRequest is the request body for funding a wallet. Amount travels as a
// decimal string so clients never lose precision to binary floats.
type FundRequest struct {
	Amount string `json:"amount" binding:"required,decimal_amount"`
	Source string `json:"source" binding:"omitempty,max=100"`
}

// TransferRequest is the request body for a wallet-to-wallet transfer.
type TransferRequest struct {
	ToWalletID string `json:"to_wallet_id" binding:"required,uuid"`
	Amount     string `json:"amount" binding:"required,decimal_amount"`
}

// UpdateStatusRequest is the request body for a transaction status change.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// EarnRequest is the request body for recording a point-earning activity.
type EarnRequest struct {
	ActivityType string  `json:"activity_type" binding:"required,max=100"`
	Details      *string `json:"details,omitempty"`
}

// RedeemRequest is the request body for spending points.
type RedeemRequest struct {
	Points     int64  `json:"points" binding:"required,gt=0"`
	RewardType string `json:"reward_type" binding:"omitempty,max=100"`
}

// BookTourRequest is the request body for booking a tour.
type BookTourRequest struct {
	WalletID string `json:"wallet_id" binding:"required,uuid"`
}

// WalletResponse is the wire form of a wallet.
type WalletResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Balance   string `json:"balance"`
	Currency  string `json:"currency"`
	CreatedAt string `json:"created_at"`
}

// TransactionResponse is the wire form of a wallet transaction.
type TransactionResponse struct {
	ID        string  `json:"id"`
	WalletID  string  `json:"wallet_id"`
	Amount    string  `json:"amount"`
	Type      string  `json:"transaction_type"`
	Category  string  `json:"transaction_category"`
	Status    string  `json:"status"`
	Details   *string `json:"details,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// FundResponse is the response for a funding operation.
type FundResponse struct {
	Wallet      WalletResponse      `json:"wallet"`
	Transaction TransactionResponse `json:"transaction"`
}

// TransferResponse is the response for a transfer: both post-transfer wallets.
type TransferResponse struct {
	From WalletResponse `json:"from"`
	To   WalletResponse `json:"to"`
}

// SummaryResponse is the response for wallet or user summaries.
type SummaryResponse struct {
	TotalCredits   string `json:"total_credits"`
	TotalDebits    string `json:"total_debits"`
	CurrentBalance string `json:"current_balance"`
}

// PointsTransactionResponse is the wire form of a points event.
type PointsTransactionResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	ActivityType string  `json:"activity_type"`
	Details      *string `json:"details,omitempty"`
	Points       int64   `json:"points"`
	CreatedAt    string  `json:"created_at"`
}

// PointsBalanceResponse is the response for a points balance query.
type PointsBalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

// PointsMutationResponse is the response for earn/redeem operations.
type PointsMutationResponse struct {
	Transaction PointsTransactionResponse `json:"transaction"`
	Balance     int64                     `json:"balance"`
}

// TourResponse is the wire form of a tour.
type TourResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Vendor     string `json:"vendor"`
	DistanceKm string `json:"distance_km"`
	Price      string `json:"price"`
}

// BookingResponse is the wire form of a tour booking.
type BookingResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	TourID     string `json:"tour_id"`
	AmountPaid string `json:"amount_paid"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

// BookTourResponse is the response for a completed booking.
type BookTourResponse struct {
	Booking      BookingResponse `json:"booking"`
	Wallet       WalletResponse  `json:"wallet"`
	PointsEarned int64           `json:"points_earned"`
}

// --- Converters ---

// FromWallet converts a domain wallet to its wire form.
func FromWallet(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:        w.ID.String(),
		UserID:    w.UserID.String(),
		Balance:   w.Balance.String(),
		Currency:  w.Currency,
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
	}
}

// FromWallets converts a slice of domain wallets.
func FromWallets(wallets []domain.Wallet) []WalletResponse {
	out := make([]WalletResponse, 0, len(wallets))
	for i := range wallets {
		out = append(out, FromWallet(&wallets[i]))
	}
	return out
}

// FromTransaction converts a domain transaction to its wire form.
func FromTransaction(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID.String(),
		WalletID:  t.WalletID.String(),
		Amount:    t.Amount.String(),
		Type:      string(t.Type),
		Category:  string(t.Category),
		Status:    string(t.Status),
		Details:   t.Details,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

// FromTransactions converts a slice of domain transactions.
func FromTransactions(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, FromTransaction(&txns[i]))
	}
	return out
}

// FromSummary converts a domain summary to its wire form.
func FromSummary(s *domain.WalletSummary) SummaryResponse {
	return SummaryResponse{
		TotalCredits:   s.TotalCredits.String(),
		TotalDebits:    s.TotalDebits.String(),
		CurrentBalance: s.CurrentBalance.String(),
	}
}

// FromPointsTransaction converts a domain points event to its wire form.
func FromPointsTransaction(p *domain.PointsTransaction) PointsTransactionResponse {
	return PointsTransactionResponse{
		ID:           p.ID.String(),
		UserID:       p.UserID.String(),
		ActivityType: p.ActivityType,
		Details:      p.Details,
		Points:       p.Points,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}

// FromPointsTransactions converts a slice of domain points events.
func FromPointsTransactions(pts []domain.PointsTransaction) []PointsTransactionResponse {
	out := make([]PointsTransactionResponse, 0, len(pts))
	for i := range pts {
		out = append(out, FromPointsTransaction(&pts[i]))
	}
	return out
}

// FromTour converts a domain tour to its wire form.
func FromTour(t *domain.Tour) TourResponse {
	return TourResponse{
		ID:         t.ID.String(),
		Name:       t.Name,
		Location:   t.Location,
		Vendor:     t.Vendor,
		DistanceKm: t.DistanceKm.String(),
		Price:      t.Price.String(),
	}
}

// FromTours converts a slice of domain tours.
func FromTours(tours []domain.Tour) []TourResponse {
	out := make([]TourResponse, 0, len(tours))
	for i := range tours {
		out = append(out, FromTour(&tours[i]))
	}
	return out
}

// FromBooking converts a domain booking to its wire form.
func FromBooking(b *domain.TourBooking) BookingResponse {
	return BookingResponse{
		ID:         b.ID.String(),
		UserID:     b.UserID.String(),
		TourID:     b.TourID.String(),
		AmountPaid: b.AmountPaid.String(),
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}

// FromBookings converts a slice of domain bookings.
func FromBookings(bookings []domain.TourBooking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, FromBooking(&bookings[i]))
	}
	return out
}
