package create_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Fuzuri/CleanIT/internal/api/handlers"
	createBooking "github.com/Fuzuri/CleanIT/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidServiceID   = "invalid service id"
	msgInvalidInput       = "name, email, phone and date are required"
	msgServiceNotFound    = "service not found"
	msgPricingNotFound    = "pricing option does not belong to this service"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/services/{serviceId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /services/{id}/bookings - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(serviceID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /services/{id}/bookings - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /services/{id}/bookings - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrPricingNotFound):
			h.logger.Warn("POST /services/{id}/bookings - Pricing not found: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgPricingNotFound)

		default:
			h.logger.Error("POST /services/{id}/bookings - Failed to create booking: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services/{id}/bookings - Booking created: booking_id=%d, service_id=%d, total=%.2f",
		result.ID, serviceID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
