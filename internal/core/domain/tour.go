package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tour is a bookable trip. Price is debited from the paying wallet when the
// tour is booked.
type Tour struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Location   string          `json:"location"`
	Vendor     string          `json:"vendor"`
	DistanceKm decimal.Decimal `json:"distance_km"`
	Price      decimal.Decimal `json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TourBooking records a user paying for a tour from one of their wallets.
// The wallet debit itself lives in the transaction log; this row links the
// payment to the tour.
type TourBooking struct {
	ID         uuid.UUID         `json:"id"`
	UserID     uuid.UUID         `json:"user_id"`
	TourID     uuid.UUID         `json:"tour_id"`
	AmountPaid decimal.Decimal   `json:"amount_paid"`
	Status     TransactionStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}
