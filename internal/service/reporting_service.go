package service

import (
	"context"
	"fmt"

	"tripwallet/internal/core/domain"
	"tripwallet/internal/core/ports"
	"tripwallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultPageSize = 50

// ReportingServiceImpl implements ports.ReportingService. All reads come
// straight from the transaction log; summaries are recomputed per call so
// they always agree with the history that produced them.
type ReportingServiceImpl struct {
	txRepo     ports.TransactionRepository
	walletRepo ports.WalletRepository
	userRepo   ports.UserRepository
	log        zerolog.Logger
}

// NewReportingService creates a new ReportingServiceImpl.
func NewReportingService(
	txRepo ports.TransactionRepository,
	walletRepo ports.WalletRepository,
	userRepo ports.UserRepository,
	log zerolog.Logger,
) *ReportingServiceImpl {
	return &ReportingServiceImpl{
		txRepo:     txRepo,
		walletRepo: walletRepo,
		userRepo:   userRepo,
		log:        log,
	}
}

// WalletSummary aggregates one wallet's transaction history.
func (s *ReportingServiceImpl) WalletSummary(ctx context.Context, walletID uuid.UUID) (*domain.WalletSummary, error) {
	if err := s.requireWallet(ctx, walletID); err != nil {
		return nil, err
	}
	return s.txRepo.SummaryByWallet(ctx, walletID)
}

// UserSummary aggregates transaction history across all the user's wallets.
// A user with no wallets gets an all-zero summary.
func (s *ReportingServiceImpl) UserSummary(ctx context.Context, userID uuid.UUID) (*domain.WalletSummary, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.txRepo.SummaryByUser(ctx, userID)
}

// WalletTransactions returns a stable page of a wallet's history, oldest first.
func (s *ReportingServiceImpl) WalletTransactions(ctx context.Context, walletID uuid.UUID, offset, limit int) ([]domain.Transaction, error) {
	if err := s.requireWallet(ctx, walletID); err != nil {
		return nil, err
	}
	offset, limit = normalizePage(offset, limit)
	return s.txRepo.ListByWallet(ctx, walletID, offset, limit)
}

// UserTransactions returns a stable page across all the user's wallets.
func (s *ReportingServiceImpl) UserTransactions(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Transaction, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	offset, limit = normalizePage(offset, limit)
	return s.txRepo.ListByUser(ctx, userID, offset, limit)
}

// Transaction fetches a single transaction by ID.
func (s *ReportingServiceImpl) Transaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	return txn, nil
}

func (s *ReportingServiceImpl) requireWallet(ctx context.Context, walletID uuid.UUID) error {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("check wallet: %w", err))
	}
	if wallet == nil {
		return apperror.ErrNotFound("wallet")
	}
	return nil
}

func (s *ReportingServiceImpl) requireUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("check user: %w", err))
	}
	if !exists {
		return apperror.ErrNotFound("user")
	}
	return nil
}

func normalizePage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 200 {
		limit = defaultPageSize
	}
	return offset, limit
}
