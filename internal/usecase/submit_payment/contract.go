package submit_payment

import (
	"context"

	"github.com/Fuzuri/CleanIT/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Upsert(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
