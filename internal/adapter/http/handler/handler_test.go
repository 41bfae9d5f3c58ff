package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tripwallet/internal/adapter/http/dto"
	"tripwallet/internal/adapter/http/middleware"
	"tripwallet/internal/core/domain"
	"tripwallet/internal/core/ports"
	"tripwallet/internal/core/ports/mocks"
	"tripwallet/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func jsonRequest(t *testing.T, method, target string, body any) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func authenticate(c *gin.Context, userID uuid.UUID) {
	c.Set(middleware.CtxUserID, userID)
	c.Set(middleware.CtxEmail, "ama@example.com")
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %s", w.Body.String())
	return data
}

// --- Auth Handler Tests ---

func TestRegister_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	userID := uuid.New()
	mockAuth.EXPECT().Register(gomock.Any(), ports.RegisterRequest{
		Name:     "Ama Mensah",
		Email:    "ama@example.com",
		Password: "password123",
	}).Return(&domain.User{
		ID:    userID,
		Name:  "Ama Mensah",
		Email: "ama@example.com",
	}, nil)

	w, c := jsonRequest(t, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{
		Name:     "Ama Mensah",
		Email:    "ama@example.com",
		Password: "password123",
	})

	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, userID.String(), data["user_id"])
	assert.Equal(t, "ama@example.com", data["email"])
}

func TestRegister_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	// Empty body => binding error, service never called
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_EmailExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrEmailExists())

	w, c := jsonRequest(t, http.MethodPost, "/", dto.RegisterRequest{
		Name:     "Ama",
		Email:    "taken@example.com",
		Password: "password123",
	})

	h.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	expiry := time.Now().Add(24 * time.Hour)
	mockAuth.EXPECT().Login(gomock.Any(), "ama@example.com", "password123").Return("jwt-token-123", expiry, nil)

	w, c := jsonRequest(t, http.MethodPost, "/", dto.LoginRequest{
		Email:    "ama@example.com",
		Password: "password123",
	})

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "jwt-token-123", data["token"])
	assert.Equal(t, float64(expiry.Unix()), data["expiry"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), "bad@example.com", "bad-password").
		Return("", time.Time{}, apperror.ErrInvalidCredentials())

	w, c := jsonRequest(t, http.MethodPost, "/", dto.LoginRequest{
		Email:    "bad@example.com",
		Password: "bad-password",
	})

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Wallet Handler Tests ---

func TestOpenWallet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet, nil)

	userID := uuid.New()
	walletID := uuid.New()
	mockWallet.EXPECT().OpenWallet(gomock.Any(), userID, "GHS").Return(&domain.Wallet{
		ID:       walletID,
		UserID:   userID,
		Balance:  decimal.Zero,
		Currency: "GHS",
	}, nil)

	w, c := jsonRequest(t, http.MethodPost, "/", dto.OpenWalletRequest{Currency: "GHS"})
	authenticate(c, userID)

	h.Open(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, walletID.String(), data["id"])
	assert.Equal(t, "0", data["balance"])
	assert.Equal(t, "GHS", data["currency"])
}

func TestOpenWallet_MissingAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet, nil)

	w, c := jsonRequest(t, http.MethodPost, "/", dto.OpenWalletRequest{})

	h.Open(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFund_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet, nil)

	userID := uuid.New()
	walletID := uuid.New()
	amount := decimal.RequireFromString("150.75")

	mockWallet.EXPECT().Fund(gomock.Any(), ports.FundRequest{
		WalletID: walletID,
		Amount:   amount,
		Source:   "card",
	}).Return(&ports.FundResult{
		Wallet: &domain.Wallet{ID: walletID, UserID: userID, Balance: amount, Currency: "GHS"},
		Transaction: &domain.Transaction{
			ID:       uuid.New(),
			WalletID: walletID,
			Amount:   amount,
			Type:     domain.TransactionTypeCredit,
			Category: domain.CategoryWalletFunding,
			Status:   domain.TransactionStatusCompleted,
		},
	}, nil)

	w, c := jsonRequest(t, http.MethodPost, "/", dto.FundRequest{Amount: "150.75", Source: "card"})
	authenticate(c, userID)
	c.Params = gin.Params{{Key: "id", Value: walletID.String()}}

	h.Fund(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	wallet := data["wallet"].(map[string]interface{})
	txn := data["transaction"].(map[string]interface{})
	assert.Equal(t, "150.75", wallet["balance"])
	assert.Equal(t, "credit", txn["transaction_type"])
	assert.Equal(t, "wallet_funding", txn["transaction_category"])
}

func TestFund_InvalidWalletID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet, nil)

	w, c := jsonRequest(t, http.MethodPost, "/", dto.FundRequest{Amount: "10"})
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.Fund(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFund_NegativeAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet, nil)

	// Fails the decimal_amount binding rule, service never called.
	w, c := jsonRequest(t, http.MethodPost, "/", dto.FundRequest{Amount: "-25.00"})
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

	h.Fund(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransfer_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet, nil)

	fromID := uuid.New()
	toID := uuid.New()
	amount := decimal.NewFromInt(50)

	mockWallet.EXPECT().Transfer(gomock.Any(), ports.TransferRequest{
		FromWalletID: fromID,
		ToWalletID:   toID,
		Amount:       amount,
	}).Return(&ports.TransferResult{
		From: &domain.Wallet{ID: fromID, Balance: decimal.NewFromInt(50), Currency: "GHS"},
		To:   &domain.Wallet{ID: toID, Balance: decimal.NewFromInt(80), Currency: "GHS"},
	}, nil)

	w, c := jsonRequest(t, http.MethodPost, "/", dto.TransferRequest{
		ToWalletID: toID.String(),
		Amount:     "50",
	})
	c.Params = gin.Params{{Key: "id", Value: fromID.String()}}

	h.Transfer(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	from := data["from"].(map[string]interface{})
	to := data["to"].(map[string]interface{})
	assert.Equal(t, "50", from["balance"])
	assert.Equal(t, "80", to["balance"])
}

func TestTransfer_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet, nil)

	fromID := uuid.New()
	mockWallet.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrInsufficientFunds())

	w, c := jsonRequest(t, http.MethodPost, "/", dto.TransferRequest{
		ToWalletID: uuid.NewString(),
		Amount:     "9999",
	})
	c.Params = gin.Params{{Key: "id", Value: fromID.String()}}

	h.Transfer(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestGetWallet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet, nil)

	walletID := uuid.New()
	mockWallet.EXPECT().GetWallet(gomock.Any(), walletID).Return(nil, apperror.ErrNotFound("wallet"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: walletID.String()}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWalletSummary_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewWalletHandler(nil, mockReporting)

	walletID := uuid.New()
	mockReporting.EXPECT().WalletSummary(gomock.Any(), walletID).Return(&domain.WalletSummary{
		TotalCredits:   decimal.NewFromInt(150),
		TotalDebits:    decimal.NewFromInt(-40),
		CurrentBalance: decimal.NewFromInt(110),
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: walletID.String()}}

	h.Summary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "150", data["total_credits"])
	assert.Equal(t, "-40", data["total_debits"])
	assert.Equal(t, "110", data["current_balance"])
}

func TestUpdateTransactionStatus_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet, nil)

	txnID := uuid.New()
	mockWallet.EXPECT().UpdateTransactionStatus(gomock.Any(), txnID, domain.TransactionStatusFailed).
		Return(&domain.Transaction{
			ID:       txnID,
			WalletID: uuid.New(),
			Amount:   decimal.NewFromInt(10),
			Type:     domain.TransactionTypeCredit,
			Category: domain.CategoryWalletFunding,
			Status:   domain.TransactionStatusFailed,
		}, nil)

	w, c := jsonRequest(t, http.MethodPatch, "/", dto.UpdateStatusRequest{Status: "failed"})
	c.Params = gin.Params{{Key: "id", Value: txnID.String()}}

	h.UpdateTransactionStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "failed", data["status"])
}

// --- Points Handler Tests ---

func TestEarnPoints_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPoints := mocks.NewMockPointsService(ctrl)
	h := NewPointsHandler(mockPoints)

	userID := uuid.New()
	mockPoints.EXPECT().Earn(gomock.Any(), ports.EarnRequest{
		UserID:       userID,
		ActivityType: "booking",
	}).Return(&ports.EarnResult{
		Transaction: &domain.PointsTransaction{
			ID:           uuid.New(),
			UserID:       userID,
			ActivityType: "booking",
			Points:       10,
		},
		Balance: 25,
	}, nil)

	w, c := jsonRequest(t, http.MethodPost, "/", dto.EarnRequest{ActivityType: "booking"})
	authenticate(c, userID)

	h.Earn(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(25), data["balance"])
	txn := data["transaction"].(map[string]interface{})
	assert.Equal(t, float64(10), txn["points"])
}

func TestRedeemPoints_InsufficientPoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPoints := mocks.NewMockPointsService(ctrl)
	h := NewPointsHandler(mockPoints)

	userID := uuid.New()
	mockPoints.EXPECT().Redeem(gomock.Any(), ports.RedeemRequest{
		UserID:     userID,
		Points:     500,
		RewardType: "discount",
	}).Return(nil, apperror.ErrInsufficientPoints())

	w, c := jsonRequest(t, http.MethodPost, "/", dto.RedeemRequest{Points: 500, RewardType: "discount"})
	authenticate(c, userID)

	h.Redeem(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestPointsBalance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPoints := mocks.NewMockPointsService(ctrl)
	h := NewPointsHandler(mockPoints)

	userID := uuid.New()
	mockPoints.EXPECT().Balance(gomock.Any(), userID).Return(int64(42), nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	authenticate(c, userID)

	h.Balance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(42), data["balance"])
	assert.Equal(t, userID.String(), data["user_id"])
}

func TestPointsHistory_PageParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPoints := mocks.NewMockPointsService(ctrl)
	h := NewPointsHandler(mockPoints)

	userID := uuid.New()
	mockPoints.EXPECT().History(gomock.Any(), userID, 20, 10).Return([]domain.PointsTransaction{
		{ID: uuid.New(), UserID: userID, ActivityType: "booking", Points: 10},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?offset=20&limit=10", nil)
	authenticate(c, userID)

	h.History(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

// --- Tour Handler Tests ---

func TestBookTour_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBooking := mocks.NewMockBookingService(ctrl)
	h := NewTourHandler(mockBooking)

	userID := uuid.New()
	walletID := uuid.New()
	tourID := uuid.New()

	mockBooking.EXPECT().BookTour(gomock.Any(), ports.BookTourRequest{
		UserID:   userID,
		WalletID: walletID,
		TourID:   tourID,
	}).Return(&ports.BookTourResult{
		Booking: &domain.TourBooking{
			ID:         uuid.New(),
			UserID:     userID,
			TourID:     tourID,
			AmountPaid: decimal.NewFromInt(80),
			Status:     domain.TransactionStatusCompleted,
		},
		Wallet:       &domain.Wallet{ID: walletID, UserID: userID, Balance: decimal.NewFromInt(20), Currency: "GHS"},
		PointsEarned: 10,
	}, nil)

	w, c := jsonRequest(t, http.MethodPost, "/", dto.BookTourRequest{WalletID: walletID.String()})
	authenticate(c, userID)
	c.Params = gin.Params{{Key: "id", Value: tourID.String()}}

	h.Book(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(10), data["points_earned"])
	booking := data["booking"].(map[string]interface{})
	wallet := data["wallet"].(map[string]interface{})
	assert.Equal(t, "80", booking["amount_paid"])
	assert.Equal(t, "20", wallet["balance"])
}

func TestBookTour_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBooking := mocks.NewMockBookingService(ctrl)
	h := NewTourHandler(mockBooking)

	userID := uuid.New()
	mockBooking.EXPECT().BookTour(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrInsufficientFunds())

	w, c := jsonRequest(t, http.MethodPost, "/", dto.BookTourRequest{WalletID: uuid.NewString()})
	authenticate(c, userID)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

	h.Book(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestListTours_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBooking := mocks.NewMockBookingService(ctrl)
	h := NewTourHandler(mockBooking)

	mockBooking.EXPECT().ListTours(gomock.Any(), 0, 50).Return([]domain.Tour{
		{
			ID:         uuid.New(),
			Name:       "Cape Coast Castle",
			Location:   "Cape Coast",
			Vendor:     "Heritage Tours",
			DistanceKm: decimal.NewFromInt(144),
			Price:      decimal.NewFromInt(80),
		},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp["data"].([]interface{})
	require.Len(t, items, 1)
	tour := items[0].(map[string]interface{})
	assert.Equal(t, "Cape Coast Castle", tour["name"])
	assert.Equal(t, "80", tour["price"])
}

// --- Transaction Handler Tests ---

func TestListMyTransactions_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewTransactionHandler(mockReporting)

	userID := uuid.New()
	mockReporting.EXPECT().UserTransactions(gomock.Any(), userID, 0, 50).Return(nil, errors.New("db down"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	authenticate(c, userID)

	h.ListMine(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetTransaction_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReporting := mocks.NewMockReportingService(ctrl)
	h := NewTransactionHandler(mockReporting)

	txnID := uuid.New()
	mockReporting.EXPECT().Transaction(gomock.Any(), txnID).Return(&domain.Transaction{
		ID:       txnID,
		WalletID: uuid.New(),
		Amount:   decimal.NewFromInt(-30),
		Type:     domain.TransactionTypeDebit,
		Category: domain.CategoryTourBooking,
		Status:   domain.TransactionStatusCompleted,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: txnID.String()}}

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "-30", data["amount"])
	assert.Equal(t, "tour_booking", data["transaction_category"])
}

// --- Health Check Tests ---

type fakeChecker struct {
	name string
	err  error
}

func (f fakeChecker) Ping(context.Context) error { return f.err }
func (f fakeChecker) Name() string               { return f.name }

func TestHealthCheck_AllHealthy(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(fakeChecker{name: "postgres"}, fakeChecker{name: "redis"})(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(
		fakeChecker{name: "postgres"},
		fakeChecker{name: "redis", err: errors.New("connection refused")},
	)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	redis := deps["redis"].(map[string]interface{})
	assert.Equal(t, "unhealthy", redis["status"])
}
