package handler

import (
	"tripwallet/internal/adapter/http/dto"
	"tripwallet/internal/core/ports"
	"tripwallet/pkg/apperror"
	"tripwallet/pkg/response"

	"github.com/gin-gonic/gin"
)

// PointsHandler handles the loyalty-points ledger endpoints.
type PointsHandler struct {
	pointsSvc ports.PointsService
}

// NewPointsHandler creates a new PointsHandler.
func NewPointsHandler(pointsSvc ports.PointsService) *PointsHandler {
	return &PointsHandler{pointsSvc: pointsSvc}
}

// Earn handles POST /api/v1/points/earn.
func (h *PointsHandler) Earn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.EarnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.pointsSvc.Earn(c.Request.Context(), ports.EarnRequest{
		UserID:       userID,
		ActivityType: req.ActivityType,
		Details:      req.Details,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.PointsMutationResponse{
		Transaction: dto.FromPointsTransaction(result.Transaction),
		Balance:     result.Balance,
	})
}

// Redeem handles POST /api/v1/points/redeem.
func (h *PointsHandler) Redeem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.pointsSvc.Redeem(c.Request.Context(), ports.RedeemRequest{
		UserID:     userID,
		Points:     req.Points,
		RewardType: req.RewardType,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.PointsMutationResponse{
		Transaction: dto.FromPointsTransaction(result.Transaction),
		Balance:     result.Balance,
	})
}

// Balance handles GET /api/v1/points/balance.
func (h *PointsHandler) Balance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	balance, err := h.pointsSvc.Balance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.PointsBalanceResponse{
		UserID:  userID.String(),
		Balance: balance,
	})
}

// History handles GET /api/v1/points/history.
func (h *PointsHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	offset, limit := pageParams(c)
	pts, err := h.pointsSvc.History(c.Request.Context(), userID, offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromPointsTransactions(pts))
}
