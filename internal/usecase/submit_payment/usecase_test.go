package submit_payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fuzuri/CleanIT/internal/domain"
	bookingRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

type fakePaymentRepo struct {
	stored map[int64]*domain.Payment
}

func (f *fakePaymentRepo) Upsert(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	existing, ok := f.stored[p.BookingID]

	saved := *p
	if ok {
		// Как в реальном upsert: статус и ID существующей записи сохраняются
		saved.ID = existing.ID
		saved.PaymentStatus = existing.PaymentStatus
	} else {
		saved.ID = int64(len(f.stored) + 1)
		saved.PaymentStatus = domain.PaymentPending
	}

	f.stored[p.BookingID] = &saved
	return &saved, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase() (*UseCase, *fakePaymentRepo) {
	bRepo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: {ID: 1, ServiceID: 10, TotalPrice: 675},
	}}
	pRepo := &fakePaymentRepo{stored: make(map[int64]*domain.Payment)}
	return NewUseCase(bRepo, pRepo, "09171112233", nopLogger{}), pRepo
}

func validRequest() *Request {
	return &Request{
		BookingID:     1,
		StreetAddress: "123 Mabini St",
		City:          "Quezon City",
		Province:      "Metro Manila",
		Region:        "NCR",
		PaymentMethod: "Cash",
	}
}

func TestExecute_CashInstruction(t *testing.T) {
	uc, pRepo := newTestUseCase()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 675.0, resp.Amount)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, "Please ready your cash (₱675.00) when the crew arrives.", resp.Instruction)
	require.Contains(t, pRepo.stored, int64(1))
}

func TestExecute_CardInstruction(t *testing.T) {
	uc, _ := newTestUseCase()

	req := validRequest()
	req.PaymentMethod = "Card"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Please wait, you will be redirected to our secure card payment gateway.", resp.Instruction)
}

func TestExecute_GCashInstructionUsesConfiguredNumber(t *testing.T) {
	uc, _ := newTestUseCase()

	req := validRequest()
	req.PaymentMethod = "GCASH"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Please send ₱675.00 to GCASH Number: 09171112233.", resp.Instruction)
}

func TestExecute_UnknownMethodStillPersisted(t *testing.T) {
	uc, pRepo := newTestUseCase()

	req := validRequest()
	req.PaymentMethod = "Barter"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, InstructionInvalidMethod, resp.Instruction)
	require.Contains(t, pRepo.stored, int64(1))
	assert.Equal(t, domain.PaymentMethod("Barter"), pRepo.stored[1].PaymentMethod)
}

func TestExecute_MissingFieldsRejectedWithoutWrites(t *testing.T) {
	uc, pRepo := newTestUseCase()

	for _, mutate := range []func(*Request){
		func(r *Request) { r.StreetAddress = " " },
		func(r *Request) { r.City = "" },
		func(r *Request) { r.Province = "" },
		func(r *Request) { r.Region = "" },
		func(r *Request) { r.PaymentMethod = "" },
	} {
		req := validRequest()
		mutate(req)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	assert.Empty(t, pRepo.stored)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc, _ := newTestUseCase()

	req := validRequest()
	req.BookingID = 99

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ResubmitKeepsStatus(t *testing.T) {
	uc, pRepo := newTestUseCase()
	pRepo.stored[1] = &domain.Payment{ID: 7, BookingID: 1, PaymentStatus: domain.PaymentPaid, Amount: 675}

	req := validRequest()
	req.StreetAddress = "456 Rizal Ave"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Адрес обновился, статус оплаты не тронут
	assert.Equal(t, "456 Rizal Ave", resp.StreetAddress)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, int64(7), resp.PaymentID)
}
