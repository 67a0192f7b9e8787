package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Fuzuri/CleanIT/internal/domain"
	catalogRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/catalog"
	"github.com/Fuzuri/CleanIT/internal/pricing"
)

// UseCase use case для создания бронирования
type UseCase struct {
	catalogRepo CatalogRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
// Итоговая цена считается на сервере по правилам услуги и фиксируется
// в бронировании; клиентская цена игнорируется. Выбранная опция цены
// (PricingID) опциональна, но если передана, должна принадлежать услуге.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, date=%s, customer=%q",
		req.ServiceID, req.Date, req.CustomerName)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу с правилами ценообразования
	service, err := uc.catalogRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Проверяем принадлежность выбранной опции услуге
	if req.PricingID != nil && service.RuleByID(*req.PricingID) == nil {
		uc.logger.Warn("CreateBooking: pricing id=%d does not belong to service id=%d",
			*req.PricingID, req.ServiceID)
		return nil, ErrPricingNotFound
	}

	// 4. Подставляем значения по умолчанию и считаем итоговую цену
	input := pricing.Input{
		BedroomQty: intOrDefault(req.BedroomQty, domain.DefaultBedroomQty),
		BathQty:    intOrDefault(req.BathQty, domain.DefaultBathQty),
		Hours:      intOrDefault(req.Hours, domain.DefaultHours),
		PricingID:  req.PricingID,
	}
	totalPrice := pricing.Calculate(service, input)

	booking := &domain.Booking{
		ServiceID:     req.ServiceID,
		PricingID:     req.PricingID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Date:          req.Date,
		BedroomQty:    input.BedroomQty,
		BathQty:       input.BathQty,
		Hours:         input.Hours,
		Notes:         req.Notes,
		TotalPrice:    totalPrice,
	}

	// 5. Сохраняем бронирование в транзакции
	var result *domain.Booking
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%.2f", result.ID, result.TotalPrice)

	return &Response{
		ID:            result.ID,
		ServiceID:     result.ServiceID,
		ServiceName:   service.Name,
		PricingID:     result.PricingID,
		CustomerName:  result.CustomerName,
		CustomerEmail: result.CustomerEmail,
		CustomerPhone: result.CustomerPhone,
		Date:          result.Date,
		BedroomQty:    result.BedroomQty,
		BathQty:       result.BathQty,
		Hours:         result.Hours,
		Notes:         result.Notes,
		TotalPrice:    result.TotalPrice,
		CreatedAt:     result.CreatedAt,
	}, nil
}
