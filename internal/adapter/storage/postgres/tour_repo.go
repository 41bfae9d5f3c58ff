package postgres

import (
	"context"
	"errors"

	"tripwallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TourRepo implements ports.TourRepository.
type TourRepo struct {
	pool Pool
}

// NewTourRepo creates a new TourRepo.
func NewTourRepo(pool Pool) *TourRepo {
	return &TourRepo{pool: pool}
}

// Create inserts a new tour.
func (r *TourRepo) Create(ctx context.Context, t *domain.Tour) error {
	query := `INSERT INTO tours (id, name, location, vendor, distance_km, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.Name, t.Location, t.Vendor, t.DistanceKm, t.Price,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return wrapError("insert tour", err)
	}
	return nil
}

// GetByID fetches a tour by UUID. Returns nil, nil when absent.
func (r *TourRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error) {
	query := `SELECT id, name, location, vendor, distance_km, price, created_at, updated_at
		FROM tours WHERE id = $1`

	t := &domain.Tour{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Location, &t.Vendor, &t.DistanceKm, &t.Price,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapError("get tour by id", err)
	}
	return t, nil
}

// List fetches a page of tours, oldest first.
func (r *TourRepo) List(ctx context.Context, offset, limit int) ([]domain.Tour, error) {
	query := `SELECT id, name, location, vendor, distance_km, price, created_at, updated_at
		FROM tours ORDER BY created_at ASC, id ASC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, wrapError("list tours", err)
	}
	defer rows.Close()

	var tours []domain.Tour
	for rows.Next() {
		t := domain.Tour{}
		err := rows.Scan(&t.ID, &t.Name, &t.Location, &t.Vendor, &t.DistanceKm, &t.Price, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, wrapError("scan tour row", err)
		}
		tours = append(tours, t)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate tour rows", err)
	}
	return tours, nil
}

// CreateBooking inserts a tour booking within a database transaction,
// alongside the wallet debit it belongs to.
func (r *TourRepo) CreateBooking(ctx context.Context, tx pgx.Tx, b *domain.TourBooking) error {
	query := `INSERT INTO tour_transactions (id, user_id, tour_id, amount_paid, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query,
		b.ID, b.UserID, b.TourID, b.AmountPaid, b.Status, b.CreatedAt,
	)
	if err != nil {
		return wrapError("insert tour booking", err)
	}
	return nil
}

// ListBookingsByUser fetches a page of the user's bookings, oldest first.
func (r *TourRepo) ListBookingsByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.TourBooking, error) {
	query := `SELECT id, user_id, tour_id, amount_paid, status, created_at
		FROM tour_transactions WHERE user_id = $1
		ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, wrapError("list tour bookings", err)
	}
	defer rows.Close()

	var bookings []domain.TourBooking
	for rows.Next() {
		b := domain.TourBooking{}
		err := rows.Scan(&b.ID, &b.UserID, &b.TourID, &b.AmountPaid, &b.Status, &b.CreatedAt)
		if err != nil {
			return nil, wrapError("scan booking row", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate booking rows", err)
	}
	return bookings, nil
}
