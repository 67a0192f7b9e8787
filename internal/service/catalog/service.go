package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Fuzuri/CleanIT/internal/domain"
	catalogRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/catalog"
	"github.com/Fuzuri/CleanIT/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	repo      CatalogRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo CatalogRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// List возвращает все услуги каталога с их правилами ценообразования
func (s *Service) List(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// GetByID возвращает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc), nil
}

// GetBookingPage возвращает данные страницы бронирования услуги.
// Для услуги без единого правила ценообразования лениво создается
// правило flat_rate "Standard Service" с ценой base_price, после чего
// страница строится уже по полному набору правил. Операция идемпотентна:
// правило создается не более одного раза на услугу.
func (s *Service) GetBookingPage(ctx context.Context, serviceID int64) (*models.BookingPageResponse, error) {
	svc, err := s.repo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetBookingPage: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetBookingPage: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: GetBookingPage - repository error: %v", ErrInternal, err)
	}

	if !svc.HasPricingRules() {
		if err := s.ensureDefaultRule(ctx, svc); err != nil {
			return nil, err
		}
	}

	return &models.BookingPageResponse{
		Service: *models.FromDomainService(svc),
		Pricing: models.BuildPricingView(svc),
	}, nil
}

// AddService добавляет новую услугу в каталог
func (s *Service) AddService(ctx context.Context, req *models.AddServiceRequest) (*models.ServiceResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		s.logger.Warn("AddService: empty service name rejected")
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.BasePrice < 0 {
		s.logger.Warn("AddService: negative base price rejected: %.2f", req.BasePrice)
		return nil, fmt.Errorf("%w: base price must not be negative", ErrInvalidInput)
	}

	created, err := s.repo.CreateService(ctx, &domain.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		BasePrice:   req.BasePrice,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		s.logger.Error("AddService: repository error for service %q: %v", req.Name, err)
		return nil, fmt.Errorf("%w: AddService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddService: created service id=%d name=%q", created.ID, created.Name)
	return models.FromDomainService(created), nil
}

// ensureDefaultRule создает для услуги правило по умолчанию в транзакции
// и дописывает его в svc.Pricing. Перед вставкой счетчик правил проверяется
// повторно внутри транзакции, чтобы параллельные запросы не создали дубликат.
func (s *Service) ensureDefaultRule(ctx context.Context, svc *domain.Service) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		count, err := s.repo.CountRulesByService(txCtx, svc.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		rule, err := s.repo.CreateRule(txCtx, &domain.PricingRule{
			ServiceID: svc.ID,
			RuleType:  domain.RuleFlatRate,
			Label:     domain.DefaultRuleLabel,
			Price:     svc.BasePrice,
		})
		if err != nil {
			return err
		}

		svc.Pricing = append(svc.Pricing, *rule)
		s.logger.Info("ensureDefaultRule: created default rule id=%d for service id=%d", rule.ID, svc.ID)
		return nil
	})
	if err != nil {
		s.logger.Error("ensureDefaultRule: failed for service id=%d: %v", svc.ID, err)
		return fmt.Errorf("%w: ensureDefaultRule - repository error: %v", ErrInternal, err)
	}

	return nil
}
