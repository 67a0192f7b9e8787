package get_booking_page

import (
	"context"

	"github.com/Fuzuri/CleanIT/internal/service/catalog/models"
)

type CatalogService interface {
	GetBookingPage(ctx context.Context, serviceID int64) (*models.BookingPageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
