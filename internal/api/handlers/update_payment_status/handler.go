package update_payment_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Fuzuri/CleanIT/internal/api/handlers"
	"github.com/Fuzuri/CleanIT/internal/service/bookings"
	"github.com/Fuzuri/CleanIT/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidStatus      = "status must be one of: pending, paid, cancelled"
	msgPaymentNotFound    = "no payment record for this booking"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/{bookingId}/payment-status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/payment-status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.UpdatePaymentStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/payment-status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdatePaymentStatus(r.Context(), bookingID, &req); err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("POST /admin/bookings/{id}/payment-status - Invalid status %q: booking_id=%d", req.Status, bookingID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrPaymentNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/payment-status - Payment not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		default:
			h.logger.Error("POST /admin/bookings/{id}/payment-status - Failed to update status: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/payment-status - Status updated: booking_id=%d, status=%s", bookingID, req.Status)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
