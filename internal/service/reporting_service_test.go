package service

import (
	"context"
	"errors"
	"testing"

	"tripwallet/internal/core/domain"
	"tripwallet/internal/core/ports/mocks"
	"tripwallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type reportingTestDeps struct {
	svc        *ReportingServiceImpl
	txRepo     *mocks.MockTransactionRepository
	walletRepo *mocks.MockWalletRepository
	userRepo   *mocks.MockUserRepository
	ctrl       *gomock.Controller
}

func setupReportingService(t *testing.T) *reportingTestDeps {
	ctrl := gomock.NewController(t)
	d := &reportingTestDeps{
		txRepo:     mocks.NewMockTransactionRepository(ctrl),
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		userRepo:   mocks.NewMockUserRepository(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewReportingService(d.txRepo, d.walletRepo, d.userRepo, zerolog.Nop())
	return d
}

func TestReportingService_WalletSummary(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()
	summary := &domain.WalletSummary{
		TotalCredits:   decimal.NewFromInt(150),
		TotalDebits:    decimal.NewFromInt(-40),
		CurrentBalance: decimal.NewFromInt(110),
	}

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(&domain.Wallet{ID: walletID}, nil)
	d.txRepo.EXPECT().SummaryByWallet(ctx, walletID).Return(summary, nil)

	result, err := d.svc.WalletSummary(ctx, walletID)
	require.NoError(t, err)
	assert.True(t, result.CurrentBalance.Equal(summary.TotalCredits.Add(summary.TotalDebits)))
}

func TestReportingService_WalletSummary_UnknownWallet(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(nil, nil)

	_, err := d.svc.WalletSummary(ctx, walletID)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "WAL_004", appErr.Code)
}

func TestReportingService_UserSummary_NoWallets(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	userID := uuid.New()
	zero := &domain.WalletSummary{
		TotalCredits:   decimal.Zero,
		TotalDebits:    decimal.Zero,
		CurrentBalance: decimal.Zero,
	}

	d.userRepo.EXPECT().Exists(ctx, userID).Return(true, nil)
	d.txRepo.EXPECT().SummaryByUser(ctx, userID).Return(zero, nil)

	result, err := d.svc.UserSummary(ctx, userID)
	require.NoError(t, err)
	assert.True(t, result.CurrentBalance.IsZero())
}

func TestReportingService_WalletTransactions_PageDefaults(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	walletID := uuid.New()

	d.walletRepo.EXPECT().GetByID(ctx, walletID).Return(&domain.Wallet{ID: walletID}, nil)
	// Out-of-range paging collapses to the defaults.
	d.txRepo.EXPECT().ListByWallet(ctx, walletID, 0, defaultPageSize).Return(nil, nil)

	_, err := d.svc.WalletTransactions(ctx, walletID, -3, 0)
	require.NoError(t, err)
}

func TestReportingService_Transaction_NotFound(t *testing.T) {
	d := setupReportingService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	id := uuid.New()

	d.txRepo.EXPECT().GetByID(ctx, id).Return(nil, nil)

	_, err := d.svc.Transaction(ctx, id)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "WAL_004", appErr.Code)
}
