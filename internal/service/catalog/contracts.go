package catalog

import (
	"context"

	"github.com/Fuzuri/CleanIT/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetAll(ctx context.Context) ([]*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	CountRulesByService(ctx context.Context, serviceID int64) (int64, error)
	CreateService(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	CreateRule(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error)
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
