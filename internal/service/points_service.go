package service

import (
	"context"
	"fmt"
	"time"

	"tripwallet/internal/core/domain"
	"tripwallet/internal/core/ports"
	"tripwallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const pointsBalanceTTL = 5 * time.Minute

// PointsServiceImpl implements ports.PointsService over the append-only
// points ledger. Balances are always derived sums; the Redis entry is only a
// read accelerator and gets invalidated after every committed write.
type PointsServiceImpl struct {
	pointsRepo ports.PointsRepository
	userRepo   ports.UserRepository
	cache      ports.PointsBalanceCache
	policy     ports.AwardPolicy
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewPointsService creates a new PointsServiceImpl.
func NewPointsService(
	pointsRepo ports.PointsRepository,
	userRepo ports.UserRepository,
	cache ports.PointsBalanceCache,
	policy ports.AwardPolicy,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *PointsServiceImpl {
	return &PointsServiceImpl{
		pointsRepo: pointsRepo,
		userRepo:   userRepo,
		cache:      cache,
		policy:     policy,
		transactor: transactor,
		log:        log,
	}
}

// Earn appends a positive points event for an activity. The award amount
// comes from the configured policy, never from the caller.
func (s *PointsServiceImpl) Earn(ctx context.Context, req ports.EarnRequest) (*ports.EarnResult, error) {
	if req.ActivityType == "" {
		return nil, apperror.Validation("activity type is required")
	}

	award := s.policy(req.ActivityType)
	if award <= 0 {
		return nil, apperror.ErrInvalidOperation(fmt.Sprintf("activity %q earns no points", req.ActivityType))
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	locked, err := s.userRepo.LockByID(ctx, dbTx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, apperror.ErrNotFound("user")
	}

	balance, err := s.pointsRepo.SumByUserLocked(ctx, dbTx, req.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	pt := &domain.PointsTransaction{
		ID:           uuid.New(),
		UserID:       req.UserID,
		ActivityType: req.ActivityType,
		Details:      req.Details,
		Points:       award,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.pointsRepo.Append(ctx, dbTx, pt); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.invalidateBalance(ctx, req.UserID)

	s.log.Info().
		Str("user_id", req.UserID.String()).
		Str("activity", req.ActivityType).
		Int64("points", award).
		Msg("points earned")

	return &ports.EarnResult{Transaction: pt, Balance: balance + award}, nil
}

// Redeem spends points. The balance check and the append happen under the
// user row lock, so concurrent redemptions can never overspend.
func (s *PointsServiceImpl) Redeem(ctx context.Context, req ports.RedeemRequest) (*ports.RedeemResult, error) {
	if req.Points <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	locked, err := s.userRepo.LockByID(ctx, dbTx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, apperror.ErrNotFound("user")
	}

	balance, err := s.pointsRepo.SumByUserLocked(ctx, dbTx, req.UserID)
	if err != nil {
		return nil, err
	}
	if balance < req.Points {
		return nil, apperror.ErrInsufficientPoints()
	}

	now := time.Now().UTC()
	var details *string
	if req.RewardType != "" {
		details = &req.RewardType
	}
	pt := &domain.PointsTransaction{
		ID:           uuid.New(),
		UserID:       req.UserID,
		ActivityType: domain.ActivityRedeem,
		Details:      details,
		Points:       -req.Points,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.pointsRepo.Append(ctx, dbTx, pt); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.invalidateBalance(ctx, req.UserID)

	s.log.Info().
		Str("user_id", req.UserID.String()).
		Int64("points", req.Points).
		Msg("points redeemed")

	return &ports.RedeemResult{Transaction: pt, Balance: balance - req.Points}, nil
}

// Balance returns the derived points balance, read through the cache.
func (s *PointsServiceImpl) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	if cached, ok, err := s.cache.Get(ctx, userID); err == nil && ok {
		return cached, nil
	} else if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID.String()).Msg("points cache read failed, falling through to DB")
	}

	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("check user: %w", err))
	}
	if !exists {
		return 0, apperror.ErrNotFound("user")
	}

	balance, err := s.pointsRepo.SumByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Set(ctx, userID, balance, pointsBalanceTTL); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID.String()).Msg("points cache write failed")
	}

	return balance, nil
}

// History returns a stable page of the user's points events, oldest first.
func (s *PointsServiceImpl) History(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.PointsTransaction, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check user: %w", err))
	}
	if !exists {
		return nil, apperror.ErrNotFound("user")
	}
	return s.pointsRepo.ListByUser(ctx, userID, offset, limit)
}

func (s *PointsServiceImpl) invalidateBalance(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID.String()).Msg("points cache invalidation failed")
	}
}
