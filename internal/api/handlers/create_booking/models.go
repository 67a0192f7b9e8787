package create_booking

import (
	"time"

	createBooking "github.com/Fuzuri/CleanIT/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model.
// Итоговая цена в запросе не принимается: сервер считает ее сам.
type CreateBookingRequest struct {
	PricingID     *int64 `json:"pricingId,omitempty"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Date          string `json:"date"` // "2026-09-01"
	BedroomQty    *int   `json:"bedroomQty,omitempty"`
	BathQty       *int   `json:"bathQty,omitempty"`
	Hours         *int   `json:"hours,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	ServiceID     int64   `json:"serviceId"`
	ServiceName   string  `json:"serviceName"`
	PricingID     *int64  `json:"pricingId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	Date          string  `json:"date"`
	BedroomQty    int     `json:"bedroomQty"`
	BathQty       int     `json:"bathQty"`
	Hours         int     `json:"hours"`
	Notes         string  `json:"notes,omitempty"`
	TotalPrice    float64 `json:"totalPrice"`
	CreatedAt     string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(serviceID int64) *createBooking.Request {
	return &createBooking.Request{
		ServiceID:     serviceID,
		PricingID:     r.PricingID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Date:          r.Date,
		BedroomQty:    r.BedroomQty,
		BathQty:       r.BathQty,
		Hours:         r.Hours,
		Notes:         r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		ServiceID:     resp.ServiceID,
		ServiceName:   resp.ServiceName,
		PricingID:     resp.PricingID,
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		CustomerPhone: resp.CustomerPhone,
		Date:          resp.Date,
		BedroomQty:    resp.BedroomQty,
		BathQty:       resp.BathQty,
		Hours:         resp.Hours,
		Notes:         resp.Notes,
		TotalPrice:    resp.TotalPrice,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
