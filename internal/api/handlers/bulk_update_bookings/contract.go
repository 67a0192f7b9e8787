package bulk_update_bookings

import (
	"context"

	"github.com/Fuzuri/CleanIT/internal/service/bookings/models"
)

type BookingService interface {
	BulkUpdate(ctx context.Context, req *models.BulkUpdateRequest) (*models.BulkUpdateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
