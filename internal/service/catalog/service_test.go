package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fuzuri/CleanIT/internal/domain"
	catalogRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/catalog"
	"github.com/Fuzuri/CleanIT/internal/service/catalog/models"
	"github.com/Fuzuri/CleanIT/pkg/ptr"
)

type fakeCatalogRepo struct {
	services     map[int64]*domain.Service
	nextRuleID   int64
	createdRules int
}

func newFakeCatalogRepo(services ...*domain.Service) *fakeCatalogRepo {
	repo := &fakeCatalogRepo{services: make(map[int64]*domain.Service), nextRuleID: 100}
	for _, s := range services {
		repo.services[s.ID] = s
	}
	return repo
}

func (f *fakeCatalogRepo) GetAll(_ context.Context) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0, len(f.services))
	for _, s := range f.services {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeCatalogRepo) CountRulesByService(_ context.Context, serviceID int64) (int64, error) {
	s, ok := f.services[serviceID]
	if !ok {
		return 0, nil
	}
	return int64(len(s.Pricing)), nil
}

func (f *fakeCatalogRepo) CreateService(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	created := *svc
	created.ID = int64(len(f.services) + 1)
	f.services[created.ID] = &created
	return &created, nil
}

func (f *fakeCatalogRepo) CreateRule(_ context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	created := *rule
	created.ID = f.nextRuleID
	f.nextRuleID++
	f.createdRules++
	if s, ok := f.services[rule.ServiceID]; ok {
		s.Pricing = append(s.Pricing, created)
	}
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

func newTestService(repo *fakeCatalogRepo) *Service {
	return NewService(repo, fakeTxManager{}, nopLogger{})
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeCatalogRepo())

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetBookingPage_CreatesDefaultRuleOnce(t *testing.T) {
	repo := newFakeCatalogRepo(&domain.Service{ID: 1, Name: "Deep Cleaning", BasePrice: 1000})
	svc := newTestService(repo)

	page, err := svc.GetBookingPage(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, page.Service.Pricing, 1)
	rule := page.Service.Pricing[0]
	assert.Equal(t, string(domain.RuleFlatRate), rule.RuleType)
	assert.Equal(t, domain.DefaultRuleLabel, rule.Label)
	assert.Equal(t, 1000.0, rule.Price)

	// Повторный запрос страницы не плодит дубликаты правила
	_, err = svc.GetBookingPage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.createdRules)
}

func TestGetBookingPage_KeepsExistingRules(t *testing.T) {
	repo := newFakeCatalogRepo(&domain.Service{
		ID:        1,
		Name:      "Regular Cleaning",
		BasePrice: 500,
		Pricing: []domain.PricingRule{
			{ID: 10, ServiceID: 1, RuleType: domain.RulePerRoom, RoomType: domain.RoomBedroom, Label: "Extra Bedroom", Price: 50},
		},
	})
	svc := newTestService(repo)

	page, err := svc.GetBookingPage(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 0, repo.createdRules)
	require.Len(t, page.Service.Pricing, 1)
	assert.Equal(t, "Extra Bedroom", page.Service.Pricing[0].Label)
}

func TestGetBookingPage_GroupsRulesByType(t *testing.T) {
	repo := newFakeCatalogRepo(&domain.Service{
		ID:        7,
		Name:      "Full Service",
		BasePrice: 500,
		Pricing: []domain.PricingRule{
			{ID: 1, ServiceID: 7, RuleType: domain.RulePerRoom, RoomType: domain.RoomBedroom, Label: "Extra Bedroom", Price: 50},
			{ID: 2, ServiceID: 7, RuleType: domain.RulePerRoom, RoomType: domain.RoomBathroom, Label: "Extra Bathroom", Price: 75},
			{ID: 3, ServiceID: 7, RuleType: domain.RuleHourly, Label: "Per Hour", Price: 120},
			{ID: 4, ServiceID: 7, RuleType: domain.RuleFlatTier, Label: "Studio", Price: 800},
			{ID: 5, ServiceID: 7, RuleType: domain.RuleFlatTier, Label: "Two Bedroom", Price: 1200},
			{ID: 6, ServiceID: 7, RuleType: domain.RuleCustom, Label: "Move-out special", Price: 0},
		},
	})
	svc := newTestService(repo)

	page, err := svc.GetBookingPage(context.Background(), 7)
	require.NoError(t, err)

	view := page.Pricing
	require.NotNil(t, view.BedroomPrice)
	assert.Equal(t, 50.0, *view.BedroomPrice)
	require.NotNil(t, view.BathroomPrice)
	assert.Equal(t, 75.0, *view.BathroomPrice)
	require.NotNil(t, view.HourlyPrice)
	assert.Equal(t, 120.0, *view.HourlyPrice)
	assert.Equal(t, ptr.Ptr(int64(3)), view.HourlyPricingID)
	require.Len(t, view.FlatTiers, 2)
	assert.Equal(t, "Studio", view.FlatTiers[0].Label)
	assert.Empty(t, view.FlatRate)
	require.NotNil(t, view.CustomLabel)
	assert.Equal(t, "Move-out special", *view.CustomLabel)
	// Первое правило по порядку следования становится базовым
	assert.Equal(t, ptr.Ptr(int64(1)), view.BasePricingID)
}

func TestAddService_Validation(t *testing.T) {
	svc := newTestService(newFakeCatalogRepo())

	_, err := svc.AddService(context.Background(), &models.AddServiceRequest{Name: " ", BasePrice: 100})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddService(context.Background(), &models.AddServiceRequest{Name: "Window Cleaning", BasePrice: -5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddService_Creates(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := newTestService(repo)

	created, err := svc.AddService(context.Background(), &models.AddServiceRequest{Name: "Window Cleaning", BasePrice: 300})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Window Cleaning", created.Name)
	assert.Equal(t, 300.0, created.BasePrice)
}
