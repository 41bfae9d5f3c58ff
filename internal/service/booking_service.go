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

// BookingServiceImpl implements ports.BookingService. A booking is a single
// atomic unit: wallet debit, debit transaction, booking record and the
// booking points award commit or roll back together.
type BookingServiceImpl struct {
	tourRepo   ports.TourRepository
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	pointsRepo ports.PointsRepository
	userRepo   ports.UserRepository
	cache      ports.PointsBalanceCache
	policy     ports.AwardPolicy
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewBookingService creates a new BookingServiceImpl.
func NewBookingService(
	tourRepo ports.TourRepository,
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	pointsRepo ports.PointsRepository,
	userRepo ports.UserRepository,
	cache ports.PointsBalanceCache,
	policy ports.AwardPolicy,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *BookingServiceImpl {
	return &BookingServiceImpl{
		tourRepo:   tourRepo,
		walletRepo: walletRepo,
		txRepo:     txRepo,
		pointsRepo: pointsRepo,
		userRepo:   userRepo,
		cache:      cache,
		policy:     policy,
		transactor: transactor,
		log:        log,
	}
}

// BookTour books a tour, paying from the given wallet.
func (s *BookingServiceImpl) BookTour(ctx context.Context, req ports.BookTourRequest) (*ports.BookTourResult, error) {
	tour, err := s.tourRepo.GetByID(ctx, req.TourID)
	if err != nil {
		return nil, err
	}
	if tour == nil {
		return nil, apperror.ErrNotFound("tour")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Wallet lock first, then the user row for the points append. Every
	// writer that takes both follows the same order.
	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, req.WalletID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	if wallet.UserID != req.UserID {
		return nil, apperror.ErrInvalidOperation("wallet does not belong to user")
	}
	if !wallet.CanDebit(tour.Price) {
		return nil, apperror.ErrInsufficientFunds()
	}

	locked, err := s.userRepo.LockByID(ctx, dbTx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, apperror.ErrNotFound("user")
	}

	updated, err := s.walletRepo.AdjustBalance(ctx, dbTx, wallet.ID, tour.Price.Neg())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	details := fmt.Sprintf("booking for tour %s", tour.Name)
	txn := &domain.Transaction{
		ID:        uuid.New(),
		WalletID:  wallet.ID,
		Amount:    tour.Price.Neg(),
		Type:      domain.TransactionTypeDebit,
		Category:  domain.CategoryTourBooking,
		Status:    domain.TransactionStatusCompleted,
		Details:   &details,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, err
	}

	booking := &domain.TourBooking{
		ID:         uuid.New(),
		UserID:     req.UserID,
		TourID:     tour.ID,
		AmountPaid: tour.Price,
		Status:     domain.TransactionStatusCompleted,
		CreatedAt:  now,
	}
	if err := s.tourRepo.CreateBooking(ctx, dbTx, booking); err != nil {
		return nil, err
	}

	award := s.policy(domain.ActivityBooking)
	if award > 0 {
		pt := &domain.PointsTransaction{
			ID:           uuid.New(),
			UserID:       req.UserID,
			ActivityType: domain.ActivityBooking,
			Details:      &details,
			Points:       award,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.pointsRepo.Append(ctx, dbTx, pt); err != nil {
			return nil, err
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	if award > 0 {
		if err := s.cache.Invalidate(ctx, req.UserID); err != nil {
			s.log.Warn().Err(err).Str("user_id", req.UserID.String()).Msg("points cache invalidation failed")
		}
	}

	s.log.Info().
		Str("booking_id", booking.ID.String()).
		Str("tour_id", tour.ID.String()).
		Str("wallet_id", wallet.ID.String()).
		Str("amount", tour.Price.String()).
		Int64("points_earned", award).
		Msg("tour booked")

	return &ports.BookTourResult{Booking: booking, Wallet: updated, PointsEarned: award}, nil
}

// ListTours returns a page of available tours, oldest first.
func (s *BookingServiceImpl) ListTours(ctx context.Context, offset, limit int) ([]domain.Tour, error) {
	return s.tourRepo.List(ctx, offset, limit)
}

// ListBookings returns a page of the user's bookings, oldest first.
func (s *BookingServiceImpl) ListBookings(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.TourBooking, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check user: %w", err))
	}
	if !exists {
		return nil, apperror.ErrNotFound("user")
	}
	return s.tourRepo.ListBookingsByUser(ctx, userID, offset, limit)
}
