// Package seed начальная загрузка каталога услуг из внешних JSON файлов
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Fuzuri/CleanIT/internal/config"
	"github.com/Fuzuri/CleanIT/internal/domain"
)

// serviceRecord запись услуги в seed-файле; указатели отличают
// отсутствующее поле от нулевого значения
type serviceRecord struct {
	ID          *int64   `json:"id"`
	Name        *string  `json:"name"`
	BasePrice   *float64 `json:"base_price"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
}

// pricingRecord запись правила ценообразования в seed-файле
type pricingRecord struct {
	ServiceID   *int64   `json:"service_id"`
	RuleType    *string  `json:"rule_type"`
	RoomType    string   `json:"room_type"`
	Label       *string  `json:"label"`
	Price       *float64 `json:"price"`
	MinQuantity int      `json:"min_quantity"`
	MaxQuantity int      `json:"max_quantity"`
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	CountServices(ctx context.Context) (int64, error)
	ReplaceAll(ctx context.Context, services []domain.Service, rules []domain.PricingRule) error
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

// Seeder загружает каталог из seed-файлов согласно политике конфигурации
type Seeder struct {
	repo      CatalogRepository
	txManager TransactionManager
	logger    Logger
}

// NewSeeder создает новый экземпляр загрузчика каталога
func NewSeeder(repo CatalogRepository, txManager TransactionManager, logger Logger) *Seeder {
	return &Seeder{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// Run читает seed-файлы и применяет их согласно политике:
//   - if_empty: загрузка только при пустой таблице услуг (контракт по умолчанию)
//   - replace: полная замена каталога при каждом старте
//
// Ошибки чтения или валидации фатальны для старта сервиса.
func (s *Seeder) Run(ctx context.Context, cfg config.CatalogConfig) error {
	services, rules, err := LoadFiles(cfg.ServicesFile, cfg.PricingFile)
	if err != nil {
		return err
	}

	if cfg.SeedPolicy == config.SeedIfEmpty {
		count, err := s.repo.CountServices(ctx)
		if err != nil {
			return fmt.Errorf("seed: failed to count services: %w", err)
		}
		if count > 0 {
			s.logger.Info("Catalog already has %d services, seed skipped (policy=%s)", count, cfg.SeedPolicy)
			return nil
		}
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.repo.ReplaceAll(txCtx, services, rules)
	})
	if err != nil {
		return fmt.Errorf("seed: failed to load catalog: %w", err)
	}

	s.logger.Info("Catalog seeded: %d services, %d pricing rules (policy=%s)",
		len(services), len(rules), cfg.SeedPolicy)
	return nil
}

// LoadFiles читает и валидирует оба seed-файла
func LoadFiles(servicesPath, pricingPath string) ([]domain.Service, []domain.PricingRule, error) {
	services, err := loadServices(servicesPath)
	if err != nil {
		return nil, nil, err
	}

	rules, err := loadPricingRules(pricingPath)
	if err != nil {
		return nil, nil, err
	}

	return services, rules, nil
}

func loadServices(path string) ([]domain.Service, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadSource, path, err)
	}

	var records []serviceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSeed, path, err)
	}

	services := make([]domain.Service, 0, len(records))
	for i, rec := range records {
		if rec.ID == nil || rec.Name == nil || rec.BasePrice == nil {
			return nil, fmt.Errorf("%w: %s: record %d is missing id, name or base_price", ErrInvalidSeed, path, i)
		}
		if *rec.BasePrice < 0 {
			return nil, fmt.Errorf("%w: %s: record %d has negative base_price", ErrInvalidSeed, path, i)
		}

		services = append(services, domain.Service{
			ID:          *rec.ID,
			Name:        *rec.Name,
			Description: rec.Description,
			BasePrice:   *rec.BasePrice,
			ImageURL:    rec.ImageURL,
		})
	}

	return services, nil
}

func loadPricingRules(path string) ([]domain.PricingRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadSource, path, err)
	}

	var records []pricingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSeed, path, err)
	}

	rules := make([]domain.PricingRule, 0, len(records))
	for i, rec := range records {
		if rec.ServiceID == nil || rec.RuleType == nil || rec.Label == nil || rec.Price == nil {
			return nil, fmt.Errorf("%w: %s: record %d is missing service_id, rule_type, label or price", ErrInvalidSeed, path, i)
		}

		ruleType := domain.RuleType(*rec.RuleType)
		if !domain.ValidRuleType(ruleType) {
			return nil, fmt.Errorf("%w: %s: record %d has unknown rule_type %q", ErrInvalidSeed, path, i, *rec.RuleType)
		}

		rules = append(rules, domain.PricingRule{
			ServiceID:   *rec.ServiceID,
			RuleType:    ruleType,
			RoomType:    resolveRoomType(ruleType, rec.RoomType, *rec.Label),
			Label:       *rec.Label,
			Price:       *rec.Price,
			MinQuantity: rec.MinQuantity,
			MaxQuantity: rec.MaxQuantity,
		})
	}

	return rules, nil
}

// resolveRoomType возвращает тег комнаты для per_room правил.
// Старые seed-файлы не содержат room_type, для них тег выводится
// из текста label один раз при загрузке.
func resolveRoomType(ruleType domain.RuleType, explicit string, label string) domain.RoomType {
	if ruleType != domain.RulePerRoom {
		return domain.RoomNone
	}

	switch domain.RoomType(explicit) {
	case domain.RoomBedroom, domain.RoomBathroom:
		return domain.RoomType(explicit)
	}

	switch {
	case strings.Contains(label, "Bedroom"):
		return domain.RoomBedroom
	case strings.Contains(label, "Bathroom"):
		return domain.RoomBathroom
	default:
		return domain.RoomNone
	}
}
