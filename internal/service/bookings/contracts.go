package bookings

import (
	"context"
	"time"

	"github.com/Fuzuri/CleanIT/internal/domain"
	bookingRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/booking"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context) ([]*domain.Booking, error)
	Recent(ctx context.Context, limit uint64) ([]*domain.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	Update(ctx context.Context, id int64, b *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	ListOptionViews(ctx context.Context) ([]bookingRepo.OptionView, error)
	DeleteOptionsByBooking(ctx context.Context, bookingID int64) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	ListAll(ctx context.Context) ([]*domain.Payment, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.PaymentStatus, paidAt *time.Time) error
	DeleteByBookingID(ctx context.Context, bookingID int64) error
	SumAmountByStatus(ctx context.Context, status domain.PaymentStatus) (float64, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetAll(ctx context.Context) ([]*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	CountServices(ctx context.Context) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
