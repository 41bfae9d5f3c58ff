package postgres

import (
	"context"

	"tripwallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PointsRepo implements ports.PointsRepository over the append-only points
// ledger. There is no stored balance column anywhere; every balance is a sum.
type PointsRepo struct {
	pool Pool
}

// NewPointsRepo creates a new PointsRepo.
func NewPointsRepo(pool Pool) *PointsRepo {
	return &PointsRepo{pool: pool}
}

// Append inserts a points event within a database transaction.
func (r *PointsRepo) Append(ctx context.Context, tx pgx.Tx, pt *domain.PointsTransaction) error {
	query := `INSERT INTO points_transactions (id, user_id, activity_type, details, points, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		pt.ID, pt.UserID, pt.ActivityType, pt.Details, pt.Points,
		pt.CreatedAt, pt.UpdatedAt,
	)
	if err != nil {
		return wrapError("insert points transaction", err)
	}
	return nil
}

// SumByUser computes the derived balance outside any atomic unit.
func (r *PointsRepo) SumByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.sum(ctx, r.pool, userID)
}

// SumByUserLocked computes the balance inside tx. The caller must hold the
// user row lock so the sum cannot change before the accompanying append.
func (r *PointsRepo) SumByUserLocked(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (int64, error) {
	return r.sum(ctx, tx, userID)
}

// ListByUser fetches a stable page of the user's points history, oldest first.
func (r *PointsRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.PointsTransaction, error) {
	query := `SELECT id, user_id, activity_type, details, points, created_at, updated_at
		FROM points_transactions WHERE user_id = $1
		ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, wrapError("list points transactions", err)
	}
	defer rows.Close()

	var pts []domain.PointsTransaction
	for rows.Next() {
		pt := domain.PointsTransaction{}
		err := rows.Scan(&pt.ID, &pt.UserID, &pt.ActivityType, &pt.Details, &pt.Points, &pt.CreatedAt, &pt.UpdatedAt)
		if err != nil {
			return nil, wrapError("scan points row", err)
		}
		pts = append(pts, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("iterate points rows", err)
	}
	return pts, nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *PointsRepo) sum(ctx context.Context, q queryRower, userID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE(SUM(points), 0) FROM points_transactions WHERE user_id = $1`

	var total int64
	if err := q.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, wrapError("sum points", err)
	}
	return total, nil
}
