package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fuzuri/CleanIT/internal/domain"
	bookingRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/booking"
	catalogRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/catalog"
	paymentRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/payment"
	"github.com/Fuzuri/CleanIT/internal/service/bookings/models"
	"github.com/Fuzuri/CleanIT/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings    map[int64]*domain.Booking
	options     []bookingRepo.OptionView
	deleteOrder *[]string
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) List(_ context.Context) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) Recent(_ context.Context, limit uint64) ([]*domain.Booking, error) {
	all, _ := f.List(context.Background())
	if uint64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeBookingRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) CountCreatedSince(_ context.Context, _ time.Time) (int64, error) {
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) Update(_ context.Context, id int64, b *domain.Booking) error {
	existing, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	existing.CustomerName = b.CustomerName
	existing.CustomerEmail = b.CustomerEmail
	existing.CustomerPhone = b.CustomerPhone
	existing.Date = b.Date
	existing.BedroomQty = b.BedroomQty
	existing.BathQty = b.BathQty
	existing.Hours = b.Hours
	existing.Notes = b.Notes
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.bookings, id)
	if f.deleteOrder != nil {
		*f.deleteOrder = append(*f.deleteOrder, "booking")
	}
	return nil
}

func (f *fakeBookingRepo) ListOptionViews(_ context.Context) ([]bookingRepo.OptionView, error) {
	return f.options, nil
}

func (f *fakeBookingRepo) DeleteOptionsByBooking(_ context.Context, _ int64) error {
	if f.deleteOrder != nil {
		*f.deleteOrder = append(*f.deleteOrder, "options")
	}
	return nil
}

type fakePaymentRepo struct {
	payments    map[int64]*domain.Payment
	deleteOrder *[]string
	lastPaidAt  *time.Time
}

func (f *fakePaymentRepo) GetByBookingID(_ context.Context, bookingID int64) (*domain.Payment, error) {
	p, ok := f.payments[bookingID]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakePaymentRepo) ListAll(_ context.Context) ([]*domain.Payment, error) {
	out := make([]*domain.Payment, 0, len(f.payments))
	for _, p := range f.payments {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, bookingID int64, status domain.PaymentStatus, paidAt *time.Time) error {
	p, ok := f.payments[bookingID]
	if !ok {
		return paymentRepo.ErrPaymentNotFound
	}
	p.PaymentStatus = status
	p.PaidAt = paidAt
	f.lastPaidAt = paidAt
	return nil
}

func (f *fakePaymentRepo) DeleteByBookingID(_ context.Context, bookingID int64) error {
	delete(f.payments, bookingID)
	if f.deleteOrder != nil {
		*f.deleteOrder = append(*f.deleteOrder, "payment")
	}
	return nil
}

func (f *fakePaymentRepo) SumAmountByStatus(_ context.Context, status domain.PaymentStatus) (float64, error) {
	var sum float64
	for _, p := range f.payments {
		if p.PaymentStatus == status {
			sum += p.Amount
		}
	}
	return sum, nil
}

type fakeCatalog struct {
	services map[int64]*domain.Service
}

func (f *fakeCatalog) GetAll(_ context.Context) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0, len(f.services))
	for _, s := range f.services {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeCatalog) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeCatalog) CountServices(_ context.Context) (int64, error) {
	return int64(len(f.services)), nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testFixtures() (*fakeBookingRepo, *fakePaymentRepo, *fakeCatalog, *Service) {
	bRepo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: {
			ID: 1, ServiceID: 10, PricingID: ptr.Ptr(int64(100)),
			CustomerName: "Ana Cruz", CustomerEmail: "ana@example.com", CustomerPhone: "0917",
			Date: "2026-09-01", BedroomQty: 2, BathQty: 1, TotalPrice: 550,
			CreatedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		},
	}}
	pRepo := &fakePaymentRepo{payments: map[int64]*domain.Payment{}}
	cRepo := &fakeCatalog{services: map[int64]*domain.Service{
		10: {
			ID: 10, Name: "Regular Cleaning", BasePrice: 500,
			Pricing: []domain.PricingRule{
				{ID: 100, ServiceID: 10, RuleType: domain.RuleFlatRate, Label: "Standard Service", Price: 550},
				{ID: 101, ServiceID: 10, RuleType: domain.RuleCustom, Label: "Special arrangement", Price: 0},
			},
		},
	}}
	svc := NewService(bRepo, pRepo, cRepo, fakeTxManager{}, nopLogger{})
	return bRepo, pRepo, cRepo, svc
}

func TestGetConfirmation_NotFound(t *testing.T) {
	_, _, _, svc := testFixtures()

	_, err := svc.GetConfirmation(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetConfirmation_WithoutPayment(t *testing.T) {
	_, _, _, svc := testFixtures()

	resp, err := svc.GetConfirmation(context.Background(), 1)
	require.NoError(t, err)

	assert.Nil(t, resp.Payment)
	assert.Equal(t, "Regular Cleaning", resp.Booking.ServiceName)
	require.NotNil(t, resp.Booking.PricingID)
	assert.Equal(t, "100", *resp.Booking.PricingID)
	require.NotNil(t, resp.Booking.PricingLabel)
	assert.Equal(t, "Standard Service", *resp.Booking.PricingLabel)
}

func TestGetConfirmation_CustomRuleGetsSuffix(t *testing.T) {
	bRepo, _, _, svc := testFixtures()
	bRepo.bookings[1].PricingID = ptr.Ptr(int64(101))

	resp, err := svc.GetConfirmation(context.Background(), 1)
	require.NoError(t, err)

	require.NotNil(t, resp.Booking.PricingID)
	assert.Equal(t, "101_custom", *resp.Booking.PricingID)
}

func TestGetConfirmation_WithPayment(t *testing.T) {
	_, pRepo, _, svc := testFixtures()
	pRepo.payments[1] = &domain.Payment{
		ID: 5, BookingID: 1, PaymentMethod: domain.MethodGCash,
		PaymentStatus: domain.PaymentPending, Amount: 550,
		CreatedAt: time.Date(2026, 8, 20, 11, 0, 0, 0, time.UTC),
	}

	resp, err := svc.GetConfirmation(context.Background(), 1)
	require.NoError(t, err)

	require.NotNil(t, resp.Payment)
	assert.Equal(t, "GCASH", resp.Payment.PaymentMethod)
	assert.Equal(t, "pending", resp.Payment.PaymentStatus)
}

func TestListBookings_SynthesizesRoomLinesAndMethod(t *testing.T) {
	_, _, _, svc := testFixtures()

	resp, err := svc.ListBookings(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	view := resp.Bookings[0]
	assert.Equal(t, "Regular Cleaning", view.ServiceName)
	assert.Equal(t, models.PaymentMethodNotProvided, view.PaymentMethod)
	assert.Nil(t, view.Payment)

	// Количества комнат попадают в список опций отдельными строками
	labels := make([]string, 0, len(view.Options))
	for _, opt := range view.Options {
		labels = append(labels, opt.Label)
	}
	assert.Contains(t, labels, "Bedrooms")
	assert.Contains(t, labels, "Bathrooms")
}

func TestDashboard_Totals(t *testing.T) {
	_, pRepo, _, svc := testFixtures()
	pRepo.payments[1] = &domain.Payment{BookingID: 1, PaymentStatus: domain.PaymentPaid, Amount: 550}

	resp, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.TotalBookings)
	assert.Equal(t, int64(1), resp.TotalServices)
	assert.Equal(t, 550.0, resp.TotalRevenue)
	require.Len(t, resp.RecentBookings, 1)
	assert.Equal(t, "Regular Cleaning", resp.RecentBookings[0].ServiceName)
}

func TestUpdatePaymentStatus_InvalidStatus(t *testing.T) {
	_, _, _, svc := testFixtures()

	err := svc.UpdatePaymentStatus(context.Background(), 1, &models.UpdatePaymentStatusRequest{Status: "refunded"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdatePaymentStatus_PaidStampsPaidAt(t *testing.T) {
	_, pRepo, _, svc := testFixtures()
	pRepo.payments[1] = &domain.Payment{BookingID: 1, PaymentStatus: domain.PaymentPending}

	err := svc.UpdatePaymentStatus(context.Background(), 1, &models.UpdatePaymentStatusRequest{Status: "paid"})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentPaid, pRepo.payments[1].PaymentStatus)
	assert.NotNil(t, pRepo.payments[1].PaidAt)

	// Возврат в pending сбрасывает отметку времени оплаты
	err = svc.UpdatePaymentStatus(context.Background(), 1, &models.UpdatePaymentStatusRequest{Status: "pending"})
	require.NoError(t, err)
	assert.Nil(t, pRepo.payments[1].PaidAt)
}

func TestUpdatePaymentStatus_NoPaymentRecord(t *testing.T) {
	_, _, _, svc := testFixtures()

	err := svc.UpdatePaymentStatus(context.Background(), 1, &models.UpdatePaymentStatusRequest{Status: "paid"})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestUpdateBooking_Validation(t *testing.T) {
	_, _, _, svc := testFixtures()

	req := &models.UpdateBookingRequest{
		CustomerName: "Ana Cruz", CustomerEmail: "ana@example.com",
		CustomerPhone: "0917", Date: "01-09-2026",
	}
	err := svc.UpdateBooking(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateBooking_Overwrites(t *testing.T) {
	bRepo, _, _, svc := testFixtures()

	req := &models.UpdateBookingRequest{
		CustomerName: "Maria Santos", CustomerEmail: "maria@example.com",
		CustomerPhone: "0918", Date: "2026-09-05", BedroomQty: 3, BathQty: 2,
	}
	require.NoError(t, svc.UpdateBooking(context.Background(), 1, req))

	updated := bRepo.bookings[1]
	assert.Equal(t, "Maria Santos", updated.CustomerName)
	assert.Equal(t, 3, updated.BedroomQty)
	// Цена при редактировании не пересчитывается
	assert.Equal(t, 550.0, updated.TotalPrice)
}

func TestDeleteBooking_CascadeOrder(t *testing.T) {
	bRepo, pRepo, _, svc := testFixtures()
	var order []string
	bRepo.deleteOrder = &order
	pRepo.deleteOrder = &order
	pRepo.payments[1] = &domain.Payment{BookingID: 1}

	require.NoError(t, svc.DeleteBooking(context.Background(), 1))

	// Сначала зависимые записи, затем само бронирование
	assert.Equal(t, []string{"payment", "options", "booking"}, order)
	assert.Empty(t, bRepo.bookings)
}

func TestBulkUpdate_UnknownAction(t *testing.T) {
	_, _, _, svc := testFixtures()

	_, err := svc.BulkUpdate(context.Background(), &models.BulkUpdateRequest{
		BookingIDs: []int64{1}, Action: "archive",
	})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestBulkUpdate_BestEffort(t *testing.T) {
	_, pRepo, _, svc := testFixtures()
	pRepo.payments[1] = &domain.Payment{BookingID: 1, PaymentStatus: domain.PaymentPending}

	resp, err := svc.BulkUpdate(context.Background(), &models.BulkUpdateRequest{
		BookingIDs: []int64{1, 99}, Action: "mark_paid",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Processed)
	assert.Equal(t, []int64{99}, resp.FailedIDs)
	assert.Equal(t, domain.PaymentPaid, pRepo.payments[1].PaymentStatus)
}
