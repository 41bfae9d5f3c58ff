package handler

import (
	"strconv"

	"tripwallet/internal/adapter/http/dto"
	"tripwallet/internal/adapter/http/middleware"
	"tripwallet/internal/core/domain"
	"tripwallet/internal/core/ports"
	"tripwallet/pkg/apperror"
	"tripwallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet lifecycle and the funding/transfer engine.
type WalletHandler struct {
	walletSvc    ports.WalletService
	reportingSvc ports.ReportingService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService, reportingSvc ports.ReportingService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc, reportingSvc: reportingSvc}
}

// currentUserID extracts the authenticated user ID set by the JWT middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.CtxUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// pathUUID parses a UUID path parameter.
func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.Validation("invalid " + name)
	}
	return id, nil
}

// pageParams reads offset/limit query parameters with defaults.
func pageParams(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	return offset, limit
}

// Open handles POST /api/v1/wallets.
func (h *WalletHandler) Open(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.OpenWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	wallet, err := h.walletSvc.OpenWallet(c.Request.Context(), userID, req.Currency)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.FromWallet(wallet))
}

// List handles GET /api/v1/wallets.
func (h *WalletHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	wallets, err := h.walletSvc.ListWallets(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWallets(wallets))
}

// Get handles GET /api/v1/wallets/:id.
func (h *WalletHandler) Get(c *gin.Context) {
	walletID, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	wallet, err := h.walletSvc.GetWallet(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromWallet(wallet))
}

// Fund handles POST /api/v1/wallets/:id/fund.
func (h *WalletHandler) Fund(c *gin.Context) {
	walletID, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.FundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	result, err := h.walletSvc.Fund(c.Request.Context(), ports.FundRequest{
		WalletID: walletID,
		Amount:   amount,
		Source:   req.Source,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FundResponse{
		Wallet:      dto.FromWallet(result.Wallet),
		Transaction: dto.FromTransaction(result.Transaction),
	})
}

// Transfer handles POST /api/v1/wallets/:id/transfer.
func (h *WalletHandler) Transfer(c *gin.Context) {
	fromID, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	toID, err := uuid.Parse(req.ToWalletID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid to_wallet_id"))
		return
	}
	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	result, err := h.walletSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		FromWalletID: fromID,
		ToWalletID:   toID,
		Amount:       amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TransferResponse{
		From: dto.FromWallet(result.From),
		To:   dto.FromWallet(result.To),
	})
}

// Summary handles GET /api/v1/wallets/:id/summary.
func (h *WalletHandler) Summary(c *gin.Context) {
	walletID, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.reportingSvc.WalletSummary(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromSummary(summary))
}

// Transactions handles GET /api/v1/wallets/:id/transactions.
func (h *WalletHandler) Transactions(c *gin.Context) {
	walletID, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	offset, limit := pageParams(c)
	txns, err := h.reportingSvc.WalletTransactions(c.Request.Context(), walletID, offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromTransactions(txns))
}

// UpdateTransactionStatus handles PATCH /api/v1/transactions/:id/status.
func (h *WalletHandler) UpdateTransactionStatus(c *gin.Context) {
	txnID, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	txn, err := h.walletSvc.UpdateTransactionStatus(c.Request.Context(), txnID, domain.TransactionStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromTransaction(txn))
}
