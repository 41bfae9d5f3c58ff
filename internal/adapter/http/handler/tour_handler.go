package handler

import (
	"tripwallet/internal/adapter/http/dto"
	"tripwallet/internal/core/ports"
	"tripwallet/pkg/apperror"
	"tripwallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TourHandler handles tour listing and booking endpoints.
type TourHandler struct {
	bookingSvc ports.BookingService
}

// NewTourHandler creates a new TourHandler.
func NewTourHandler(bookingSvc ports.BookingService) *TourHandler {
	return &TourHandler{bookingSvc: bookingSvc}
}

// List handles GET /api/v1/tours.
func (h *TourHandler) List(c *gin.Context) {
	offset, limit := pageParams(c)
	tours, err := h.bookingSvc.ListTours(c.Request.Context(), offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromTours(tours))
}

// Book handles POST /api/v1/tours/:id/book.
func (h *TourHandler) Book(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	tourID, err := pathUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.BookTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet_id"))
		return
	}

	result, err := h.bookingSvc.BookTour(c.Request.Context(), ports.BookTourRequest{
		UserID:   userID,
		WalletID: walletID,
		TourID:   tourID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.BookTourResponse{
		Booking:      dto.FromBooking(result.Booking),
		Wallet:       dto.FromWallet(result.Wallet),
		PointsEarned: result.PointsEarned,
	})
}

// Bookings handles GET /api/v1/bookings — the authenticated user's bookings.
func (h *TourHandler) Bookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	offset, limit := pageParams(c)
	bookings, err := h.bookingSvc.ListBookings(c.Request.Context(), userID, offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.FromBookings(bookings))
}
