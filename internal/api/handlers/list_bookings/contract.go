package list_bookings

import (
	"context"

	"github.com/Fuzuri/CleanIT/internal/service/bookings/models"
)

type BookingService interface {
	ListBookings(ctx context.Context) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
