package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity labels recorded on points transactions. ActivityType is free-form;
// these are the values the core itself emits.
const (
	ActivityBooking = "booking"
	ActivityRedeem  = "redeem"
)

// PointsTransaction is an immutable record of a single loyalty-point event.
// Points are signed: positive for earns, negative for redemptions. A user's
// balance is always the sum over their history, never a stored field, so the
// total can never diverge from the events that explain it.
type PointsTransaction struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	ActivityType string    `json:"activity_type"`
	Details      *string   `json:"details,omitempty"`
	Points       int64     `json:"points"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsRedemption reports whether the record spends points.
func (p *PointsTransaction) IsRedemption() bool {
	return p.Points < 0
}
