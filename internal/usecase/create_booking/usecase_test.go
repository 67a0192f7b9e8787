package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fuzuri/CleanIT/internal/domain"
	catalogRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/catalog"
	"github.com/Fuzuri/CleanIT/pkg/ptr"
)

type fakeCatalogRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

type fakeBookingRepo struct {
	created *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	created := *b
	created.ID = 1
	created.CreatedAt = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	f.created = &created
	return &created, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testService() *domain.Service {
	return &domain.Service{
		ID:        1,
		Name:      "Regular Cleaning",
		BasePrice: 500,
		Pricing: []domain.PricingRule{
			{ID: 10, ServiceID: 1, RuleType: domain.RulePerRoom, RoomType: domain.RoomBedroom, Label: "Extra Bedroom", Price: 50},
			{ID: 11, ServiceID: 1, RuleType: domain.RulePerRoom, RoomType: domain.RoomBathroom, Label: "Extra Bathroom", Price: 75},
			{ID: 12, ServiceID: 1, RuleType: domain.RuleFlatTier, Label: "Studio", Price: 800},
		},
	}
}

func newTestUseCase(services ...*domain.Service) (*UseCase, *fakeBookingRepo) {
	cRepo := &fakeCatalogRepo{services: make(map[int64]*domain.Service)}
	for _, s := range services {
		cRepo.services[s.ID] = s
	}
	bRepo := &fakeBookingRepo{}
	return NewUseCase(cRepo, bRepo, fakeTxManager{}, nopLogger{}), bRepo
}

func validRequest() *Request {
	return &Request{
		ServiceID:     1,
		CustomerName:  "Ana Cruz",
		CustomerEmail: "ana@example.com",
		CustomerPhone: "09171234567",
		Date:          "2026-09-01",
	}
}

func TestExecute_DefaultsApplied(t *testing.T) {
	uc, bRepo := newTestUseCase(testService())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultBedroomQty, resp.BedroomQty)
	assert.Equal(t, domain.DefaultBathQty, resp.BathQty)
	assert.Equal(t, domain.DefaultHours, resp.Hours)
	// С дефолтными количествами итог равен базовой цене
	assert.Equal(t, 500.0, resp.TotalPrice)
	require.NotNil(t, bRepo.created)
	assert.Nil(t, bRepo.created.PricingID)
}

func TestExecute_PerRoomPricing(t *testing.T) {
	uc, _ := newTestUseCase(testService())

	req := validRequest()
	req.BedroomQty = ptr.Ptr(3)
	req.BathQty = ptr.Ptr(2)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 500 + 50*(3-1) + 75*(2-1)
	assert.Equal(t, 675.0, resp.TotalPrice)
}

func TestExecute_FlatTierOverwritesTotal(t *testing.T) {
	uc, _ := newTestUseCase(testService())

	req := validRequest()
	req.BedroomQty = ptr.Ptr(4)
	req.PricingID = ptr.Ptr(int64(12))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 800.0, resp.TotalPrice)
	require.NotNil(t, resp.PricingID)
	assert.Equal(t, int64(12), *resp.PricingID)
}

func TestExecute_MissingRequiredFields(t *testing.T) {
	uc, _ := newTestUseCase(testService())

	for _, mutate := range []func(*Request){
		func(r *Request) { r.CustomerName = "  " },
		func(r *Request) { r.CustomerEmail = "" },
		func(r *Request) { r.CustomerPhone = "" },
		func(r *Request) { r.Date = "" },
	} {
		req := validRequest()
		mutate(req)

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestExecute_BadDateFormat(t *testing.T) {
	uc, _ := newTestUseCase(testService())

	req := validRequest()
	req.Date = "01/09/2026"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NegativeQuantity(t *testing.T) {
	uc, _ := newTestUseCase(testService())

	req := validRequest()
	req.BedroomQty = ptr.Ptr(-1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ForeignPricingRejected(t *testing.T) {
	uc, _ := newTestUseCase(testService())

	req := validRequest()
	req.PricingID = ptr.Ptr(int64(999))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPricingNotFound)
}
