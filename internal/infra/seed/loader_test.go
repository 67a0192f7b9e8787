package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fuzuri/CleanIT/internal/domain"
)

func writeSeed(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const validServices = `[
  {"id": 1, "name": "Regular Cleaning", "base_price": 500, "description": "Routine cleaning"},
  {"id": 2, "name": "Deep Cleaning", "base_price": 1000}
]`

const validPricing = `[
  {"service_id": 1, "rule_type": "per_room", "label": "Extra Bedroom", "price": 50},
  {"service_id": 1, "rule_type": "per_room", "room_type": "bathroom", "label": "Extra Washroom", "price": 75},
  {"service_id": 2, "rule_type": "flat_tier", "label": "Studio", "price": 800, "min_quantity": 1, "max_quantity": 1}
]`

func TestLoadFiles_Valid(t *testing.T) {
	servicesPath := writeSeed(t, "services.json", validServices)
	pricingPath := writeSeed(t, "pricing.json", validPricing)

	services, rules, err := LoadFiles(servicesPath, pricingPath)
	require.NoError(t, err)

	require.Len(t, services, 2)
	assert.Equal(t, int64(1), services[0].ID)
	assert.Equal(t, "Regular Cleaning", services[0].Name)
	assert.Equal(t, 500.0, services[0].BasePrice)

	require.Len(t, rules, 3)
	assert.Equal(t, domain.RulePerRoom, rules[0].RuleType)
}

func TestLoadFiles_RoomTypeDerivedFromLabel(t *testing.T) {
	servicesPath := writeSeed(t, "services.json", validServices)
	pricingPath := writeSeed(t, "pricing.json", validPricing)

	_, rules, err := LoadFiles(servicesPath, pricingPath)
	require.NoError(t, err)

	// Без явного room_type тег выводится из label
	assert.Equal(t, domain.RoomBedroom, rules[0].RoomType)
	// Явный room_type имеет приоритет над текстом label
	assert.Equal(t, domain.RoomBathroom, rules[1].RoomType)
	// Не per_room правила тег не получают
	assert.Equal(t, domain.RoomNone, rules[2].RoomType)
}

func TestLoadFiles_MissingRequiredServiceField(t *testing.T) {
	servicesPath := writeSeed(t, "services.json", `[{"id": 1, "name": "No price"}]`)
	pricingPath := writeSeed(t, "pricing.json", `[]`)

	_, _, err := LoadFiles(servicesPath, pricingPath)
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestLoadFiles_MissingRequiredPricingField(t *testing.T) {
	servicesPath := writeSeed(t, "services.json", validServices)
	pricingPath := writeSeed(t, "pricing.json", `[{"service_id": 1, "label": "No type", "price": 10}]`)

	_, _, err := LoadFiles(servicesPath, pricingPath)
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestLoadFiles_UnknownRuleTypeRejected(t *testing.T) {
	servicesPath := writeSeed(t, "services.json", validServices)
	pricingPath := writeSeed(t, "pricing.json", `[{"service_id": 1, "rule_type": "per_window", "label": "Windows", "price": 10}]`)

	_, _, err := LoadFiles(servicesPath, pricingPath)
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestLoadFiles_MalformedJSON(t *testing.T) {
	servicesPath := writeSeed(t, "services.json", `{not json`)
	pricingPath := writeSeed(t, "pricing.json", `[]`)

	_, _, err := LoadFiles(servicesPath, pricingPath)
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestLoadFiles_UnreadableFile(t *testing.T) {
	pricingPath := writeSeed(t, "pricing.json", `[]`)

	_, _, err := LoadFiles(filepath.Join(t.TempDir(), "missing.json"), pricingPath)
	assert.ErrorIs(t, err, ErrReadSource)
}
