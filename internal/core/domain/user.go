package domain

import (
	"time"

	"github.com/google/uuid"
)

// User owns wallets and a loyalty-points history. It is the foreign-key
// anchor for both ledgers.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
