package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Fuzuri/CleanIT/internal/domain"
	"github.com/Fuzuri/CleanIT/pkg/ptr"
)

func regularCleaning() *domain.Service {
	return &domain.Service{
		ID:        1,
		Name:      "Regular Cleaning",
		BasePrice: 500,
		Pricing: []domain.PricingRule{
			{ID: 10, ServiceID: 1, RuleType: domain.RulePerRoom, RoomType: domain.RoomBedroom, Label: "Extra Bedroom", Price: 50},
			{ID: 11, ServiceID: 1, RuleType: domain.RulePerRoom, RoomType: domain.RoomBathroom, Label: "Extra Bathroom", Price: 75},
			{ID: 12, ServiceID: 1, RuleType: domain.RuleHourly, Label: "Hourly Rate", Price: 20},
		},
	}
}

func TestCalculate_DefaultsEqualBasePrice(t *testing.T) {
	svc := regularCleaning()

	total := Calculate(svc, DefaultInput())

	assert.Equal(t, 500.0, total)
}

func TestCalculate_PerRoomChargesExcessOverOne(t *testing.T) {
	svc := regularCleaning()

	in := DefaultInput()
	in.BedroomQty = 3

	// 2 платные спальни сверх первой: 500 + 2*50
	assert.Equal(t, 600.0, Calculate(svc, in))
}

func TestCalculate_PerRoomBedroomAndBathroomAddUp(t *testing.T) {
	svc := regularCleaning()

	in := DefaultInput()
	in.BedroomQty = 2
	in.BathQty = 3

	assert.Equal(t, 500.0+50+2*75, Calculate(svc, in))
}

func TestCalculate_SingleRoomContributesNothing(t *testing.T) {
	svc := regularCleaning()

	in := DefaultInput()
	in.BedroomQty = 1
	in.BathQty = 1

	assert.Equal(t, 500.0, Calculate(svc, in))
}

func TestCalculate_ZeroQuantityContributesNothing(t *testing.T) {
	svc := regularCleaning()

	in := DefaultInput()
	in.BedroomQty = 0
	in.BathQty = 0

	assert.Equal(t, 500.0, Calculate(svc, in))
}

func TestCalculate_HourlyChargesEveryHour(t *testing.T) {
	svc := regularCleaning()

	in := DefaultInput()
	in.Hours = 3

	assert.Equal(t, 500.0+3*20, Calculate(svc, in))
}

func TestCalculate_ZeroHoursContributesNothing(t *testing.T) {
	svc := regularCleaning()

	in := DefaultInput()
	in.Hours = 0

	assert.Equal(t, 500.0, Calculate(svc, in))
}

func TestCalculate_FlatTierOverwritesTotal(t *testing.T) {
	svc := &domain.Service{
		ID:        2,
		BasePrice: 1000,
		Pricing: []domain.PricingRule{
			{ID: 10, ServiceID: 2, RuleType: domain.RuleFlatTier, Label: "Studio", Price: 800},
			{ID: 11, ServiceID: 2, RuleType: domain.RuleFlatTier, Label: "Two Bedroom", Price: 1200},
		},
	}

	in := DefaultInput()
	in.PricingID = ptr.Ptr(int64(11))

	// Перезапись, не сложение - базовая цена и комнаты не влияют
	assert.Equal(t, 1200.0, Calculate(svc, in))
}

func TestCalculate_FlatOverwriteIgnoresEarlierAdditions(t *testing.T) {
	svc := &domain.Service{
		ID:        2,
		BasePrice: 1000,
		Pricing: []domain.PricingRule{
			{ID: 9, ServiceID: 2, RuleType: domain.RulePerRoom, RoomType: domain.RoomBedroom, Label: "Extra Bedroom", Price: 100},
			{ID: 10, ServiceID: 2, RuleType: domain.RuleFlatTier, Label: "Studio", Price: 800},
		},
	}

	in := DefaultInput()
	in.BedroomQty = 4
	in.PricingID = ptr.Ptr(int64(10))

	assert.Equal(t, 800.0, Calculate(svc, in))
}

func TestCalculate_DuplicateFlatRulesLastMatchWins(t *testing.T) {
	svc := &domain.Service{
		ID:        3,
		BasePrice: 500,
		Pricing: []domain.PricingRule{
			{ID: 20, ServiceID: 3, RuleType: domain.RuleFlatRate, Label: "Promo", Price: 300},
			{ID: 20, ServiceID: 3, RuleType: domain.RuleFlatRate, Label: "Promo (updated)", Price: 350},
		},
	}

	in := DefaultInput()
	in.PricingID = ptr.Ptr(int64(20))

	assert.Equal(t, 350.0, Calculate(svc, in))
}

func TestCalculate_NilPricingIDSkipsFlatRules(t *testing.T) {
	svc := &domain.Service{
		ID:        4,
		BasePrice: 500,
		Pricing: []domain.PricingRule{
			{ID: 30, ServiceID: 4, RuleType: domain.RulePerRoom, RoomType: domain.RoomBedroom, Label: "Extra Bedroom", Price: 100},
			{ID: 31, ServiceID: 4, RuleType: domain.RuleFlatTier, Label: "Whole House", Price: 9999},
		},
	}

	in := DefaultInput()
	in.BedroomQty = 2

	// End-to-end свойство: base 500 + одна дополнительная спальня по 100
	assert.Equal(t, 600.0, Calculate(svc, in))
}

func TestCalculate_CustomRuleDoesNotAffectTotal(t *testing.T) {
	svc := &domain.Service{
		ID:        5,
		BasePrice: 3000,
		Pricing: []domain.PricingRule{
			{ID: 40, ServiceID: 5, RuleType: domain.RuleCustom, Label: "Quote on inspection", Price: 0},
		},
	}

	in := DefaultInput()
	in.PricingID = ptr.Ptr(int64(40))

	assert.Equal(t, 3000.0, Calculate(svc, in))
}
