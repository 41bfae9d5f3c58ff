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

// WalletServiceImpl implements ports.WalletService. Every balance mutation and
// its transaction record commit as one atomic unit under a wallet row lock.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	userRepo   ports.UserRepository
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	userRepo ports.UserRepository,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		userRepo:   userRepo,
		transactor: transactor,
		log:        log,
	}
}

// OpenWallet creates a zero-balance wallet for an existing user.
func (s *WalletServiceImpl) OpenWallet(ctx context.Context, userID uuid.UUID, currency string) (*domain.Wallet, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check user: %w", err))
	}
	if !exists {
		return nil, apperror.ErrNotFound("user")
	}

	if currency == "" {
		currency = domain.DefaultCurrency
	}

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("user_id", userID.String()).
		Str("currency", currency).
		Msg("wallet opened")

	return wallet, nil
}

// GetWallet fetches a wallet by ID.
func (s *WalletServiceImpl) GetWallet(ctx context.Context, walletID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}
	return wallet, nil
}

// ListWallets fetches all wallets owned by a user.
func (s *WalletServiceImpl) ListWallets(ctx context.Context, userID uuid.UUID) ([]domain.Wallet, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("check user: %w", err))
	}
	if !exists {
		return nil, apperror.ErrNotFound("user")
	}
	return s.walletRepo.ListByUser(ctx, userID)
}

// Fund credits a wallet and records the funding transaction atomically.
func (s *WalletServiceImpl) Fund(ctx context.Context, req ports.FundRequest) (*ports.FundResult, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, req.WalletID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, apperror.ErrNotFound("wallet")
	}

	updated, err := s.walletRepo.AdjustBalance(ctx, dbTx, wallet.ID, req.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var details *string
	if req.Source != "" {
		details = &req.Source
	}
	txn := &domain.Transaction{
		ID:        uuid.New(),
		WalletID:  wallet.ID,
		Amount:    req.Amount,
		Type:      domain.TransactionTypeCredit,
		Category:  domain.CategoryWalletFunding,
		Status:    domain.TransactionStatusCompleted,
		Details:   details,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("wallet_id", wallet.ID.String()).
		Str("tx_id", txn.ID.String()).
		Str("amount", req.Amount.String()).
		Msg("wallet funded")

	return &ports.FundResult{Wallet: updated, Transaction: txn}, nil
}

// Transfer moves funds between two wallets, debiting one and crediting the
// other with a transaction record for each leg, all in one atomic unit.
func (s *WalletServiceImpl) Transfer(ctx context.Context, req ports.TransferRequest) (*ports.TransferResult, error) {
	if req.FromWalletID == req.ToWalletID {
		return nil, apperror.ErrInvalidOperation("cannot transfer to the same wallet")
	}
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock both wallets in ascending UUID order so two opposing transfers
	// cannot deadlock on each other.
	firstID, secondID := req.FromWalletID, req.ToWalletID
	if secondID.String() < firstID.String() {
		firstID, secondID = secondID, firstID
	}

	first, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, firstID)
	if err != nil {
		return nil, err
	}
	second, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, secondID)
	if err != nil {
		return nil, err
	}

	from, to := first, second
	if firstID != req.FromWalletID {
		from, to = second, first
	}
	if from == nil {
		return nil, apperror.ErrNotFound("source wallet")
	}
	if to == nil {
		return nil, apperror.ErrNotFound("destination wallet")
	}

	if !from.CanDebit(req.Amount) {
		return nil, apperror.ErrInsufficientFunds()
	}

	updatedFrom, err := s.walletRepo.AdjustBalance(ctx, dbTx, from.ID, req.Amount.Neg())
	if err != nil {
		return nil, err
	}
	updatedTo, err := s.walletRepo.AdjustBalance(ctx, dbTx, to.ID, req.Amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	outDetails := fmt.Sprintf("transfer to wallet %s", to.ID)
	inDetails := fmt.Sprintf("transfer from wallet %s", from.ID)

	debit := &domain.Transaction{
		ID:        uuid.New(),
		WalletID:  from.ID,
		Amount:    req.Amount.Neg(),
		Type:      domain.TransactionTypeDebit,
		Category:  domain.CategoryWalletTransfer,
		Status:    domain.TransactionStatusCompleted,
		Details:   &outDetails,
		CreatedAt: now,
		UpdatedAt: now,
	}
	credit := &domain.Transaction{
		ID:        uuid.New(),
		WalletID:  to.ID,
		Amount:    req.Amount,
		Type:      domain.TransactionTypeCredit,
		Category:  domain.CategoryWalletTransfer,
		Status:    domain.TransactionStatusCompleted,
		Details:   &inDetails,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.txRepo.Create(ctx, dbTx, debit); err != nil {
		return nil, err
	}
	if err := s.txRepo.Create(ctx, dbTx, credit); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("from_wallet", from.ID.String()).
		Str("to_wallet", to.ID.String()).
		Str("amount", req.Amount.String()).
		Msg("transfer completed")

	return &ports.TransferResult{From: updatedFrom, To: updatedTo}, nil
}

// UpdateTransactionStatus moves an existing transaction to a new lifecycle
// state. The amount, type and category stay immutable.
func (s *WalletServiceImpl) UpdateTransactionStatus(ctx context.Context, transactionID uuid.UUID, status domain.TransactionStatus) (*domain.Transaction, error) {
	if !domain.ValidStatus(status) {
		return nil, apperror.ErrInvalidOperation(fmt.Sprintf("unknown transaction status %q", status))
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.txRepo.UpdateStatus(ctx, dbTx, transactionID, status); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	txn, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("reload transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("transaction")
	}

	s.log.Info().
		Str("tx_id", transactionID.String()).
		Str("status", string(status)).
		Msg("transaction status updated")

	return txn, nil
}
