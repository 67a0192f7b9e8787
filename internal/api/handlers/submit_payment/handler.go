package submit_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Fuzuri/CleanIT/internal/api/handlers"
	submitPayment "github.com/Fuzuri/CleanIT/internal/usecase/submit_payment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBookingID   = "invalid booking id"
	msgInvalidInput       = "all address fields and payment method are required"
	msgBookingNotFound    = "booking not found"
)

type Handler struct {
	useCase SubmitPaymentUseCase
	logger  Logger
}

func NewHandler(useCase SubmitPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req SubmitPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, submitPayment.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/payment - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, submitPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payment - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("POST /bookings/{id}/payment - Failed to submit payment: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payment - Payment saved: payment_id=%d, booking_id=%d, method=%s",
		result.PaymentID, bookingID, result.PaymentMethod)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
