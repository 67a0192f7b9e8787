package get_confirmation

import (
	"context"

	"github.com/Fuzuri/CleanIT/internal/service/bookings/models"
)

type BookingService interface {
	GetConfirmation(ctx context.Context, bookingID int64) (*models.ConfirmationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
