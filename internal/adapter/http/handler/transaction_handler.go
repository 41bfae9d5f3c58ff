package handler

import (
	"tripwallet/internal/adapter/http/dto"
	"tripwallet/internal/core/ports"
	"tripwallet/pkg/apperror"
	"tripwallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// TransactionHandler handles the read-only transaction history endpoints.
type TransactionHandler struct {
	reportingSvc ports.ReportingService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(reportingSvc ports.ReportingService) *TransactionHandler {
	return &TransactionHandler{reportingSvc: reportingSvc}
}

// Get handles GET /api/v1/transactions/:id.
func (h *TransactionHandler) Get(c *gin.Context) {
	txnID, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	txn, err := h.reportingSvc.Transaction(c.Request.Context(), txnID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromTransaction(txn))
}

// ListMine handles GET /api/v1/transactions — the authenticated user's
// history across all their wallets.
func (h *TransactionHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	offset, limit := pageParams(c)
	txns, err := h.reportingSvc.UserTransactions(c.Request.Context(), userID, offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromTransactions(txns))
}

// MySummary handles GET /api/v1/transactions/summary — aggregate over all
// the authenticated user's wallets.
func (h *TransactionHandler) MySummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	summary, err := h.reportingSvc.UserSummary(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromSummary(summary))
}
