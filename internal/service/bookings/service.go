package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Fuzuri/CleanIT/internal/domain"
	bookingRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/booking"
	catalogRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/catalog"
	paymentRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/payment"
	"github.com/Fuzuri/CleanIT/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: страница подтверждения
// для клиентов и операции админки
type Service struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	catalogRepo CatalogRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		catalogRepo: catalogRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetConfirmation возвращает страницу подтверждения бронирования.
// Чистое чтение: данные платежа отдаются как есть, независимо от статуса.
// Отсутствие платежа не ошибка, клиент мог не дойти до страницы оплаты.
func (s *Service) GetConfirmation(ctx context.Context, bookingID int64) (*models.ConfirmationResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetConfirmation: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetConfirmation: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetConfirmation - repository error: %v", ErrInternal, err)
	}

	view, err := s.buildConfirmationView(ctx, booking)
	if err != nil {
		return nil, err
	}

	resp := &models.ConfirmationResponse{Booking: *view}

	payment, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	switch {
	case err == nil:
		resp.Payment = models.FromDomainPayment(payment)
	case errors.Is(err, paymentRepo.ErrPaymentNotFound):
		// Платежа еще нет, страница показывает только бронирование
	default:
		s.logger.Error("GetConfirmation: payment repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetConfirmation - payment repository error: %v", ErrInternal, err)
	}

	return resp, nil
}

// ListBookings возвращает все бронирования для админки, отсортированные
// от новых к старым, вместе с опциями и платежами
func (s *Service) ListBookings(ctx context.Context) (*models.BookingListResponse, error) {
	bookingsList, err := s.bookingRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	serviceNames, err := s.serviceNames(ctx)
	if err != nil {
		return nil, err
	}

	optionRows, err := s.bookingRepo.ListOptionViews(ctx)
	if err != nil {
		s.logger.Error("ListBookings: failed to load booking options: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - failed to load options: %v", ErrInternal, err)
	}
	optionsMap := make(map[int64][]models.OptionLine)
	for _, row := range optionRows {
		optionsMap[row.BookingID] = append(optionsMap[row.BookingID], models.OptionLine{
			Label:    row.Label,
			Price:    row.Price,
			Quantity: row.Quantity,
		})
	}

	payments, err := s.paymentRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListBookings: failed to load payments: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - failed to load payments: %v", ErrInternal, err)
	}
	paymentsMap := make(map[int64]*domain.Payment, len(payments))
	for _, p := range payments {
		paymentsMap[p.BookingID] = p
	}

	views := make([]models.AdminBookingView, 0, len(bookingsList))
	for _, b := range bookingsList {
		opts := optionsMap[b.ID]

		// Количества комнат показываются в одном списке с опциями
		if b.BedroomQty > 0 {
			opts = append(opts, models.OptionLine{Label: "Bedrooms", Quantity: b.BedroomQty})
		}
		if b.BathQty > 0 {
			opts = append(opts, models.OptionLine{Label: "Bathrooms", Quantity: b.BathQty})
		}
		if opts == nil {
			opts = make([]models.OptionLine, 0)
		}

		view := models.AdminBookingView{
			ID:            b.ID,
			ServiceID:     b.ServiceID,
			ServiceName:   serviceNames[b.ServiceID],
			CustomerName:  b.CustomerName,
			CustomerEmail: b.CustomerEmail,
			CustomerPhone: b.CustomerPhone,
			Date:          b.Date,
			BedroomQty:    b.BedroomQty,
			BathQty:       b.BathQty,
			Hours:         b.Hours,
			Notes:         b.Notes,
			TotalPrice:    b.TotalPrice,
			CreatedAt:     b.CreatedAt.Format(domain.TimestampFormat),
			Options:       opts,
			PaymentMethod: models.PaymentMethodNotProvided,
		}

		if p, ok := paymentsMap[b.ID]; ok {
			view.Payment = models.FromDomainPayment(p)
			view.PaymentMethod = string(p.PaymentMethod)
		}

		views = append(views, view)
	}

	return &models.BookingListResponse{Bookings: views}, nil
}

// Dashboard возвращает сводку для админского дашборда: счетчики, выручка
// по оплаченным платежам и пять последних бронирований
func (s *Service) Dashboard(ctx context.Context) (*models.DashboardResponse, error) {
	totalBookings, err := s.bookingRepo.CountAll(ctx)
	if err != nil {
		s.logger.Error("Dashboard: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - failed to count bookings: %v", ErrInternal, err)
	}

	totalServices, err := s.catalogRepo.CountServices(ctx)
	if err != nil {
		s.logger.Error("Dashboard: failed to count services: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - failed to count services: %v", ErrInternal, err)
	}

	totalRevenue, err := s.paymentRepo.SumAmountByStatus(ctx, domain.PaymentPaid)
	if err != nil {
		s.logger.Error("Dashboard: failed to sum revenue: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - failed to sum revenue: %v", ErrInternal, err)
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	newToday, err := s.bookingRepo.CountCreatedSince(ctx, midnight)
	if err != nil {
		s.logger.Error("Dashboard: failed to count today's bookings: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - failed to count today's bookings: %v", ErrInternal, err)
	}

	recent, err := s.bookingRepo.Recent(ctx, 5)
	if err != nil {
		s.logger.Error("Dashboard: failed to load recent bookings: %v", err)
		return nil, fmt.Errorf("%w: Dashboard - failed to load recent bookings: %v", ErrInternal, err)
	}

	serviceNames, err := s.serviceNames(ctx)
	if err != nil {
		return nil, err
	}

	recentViews := make([]models.RecentBookingView, 0, len(recent))
	for _, b := range recent {
		recentViews = append(recentViews, models.RecentBookingView{
			ID:           b.ID,
			CustomerName: b.CustomerName,
			Date:         b.Date,
			ServiceName:  serviceNames[b.ServiceID],
		})
	}

	return &models.DashboardResponse{
		TotalBookings:    totalBookings,
		TotalServices:    totalServices,
		TotalRevenue:     totalRevenue,
		NewBookingsToday: newToday,
		RecentBookings:   recentViews,
	}, nil
}

// UpdatePaymentStatus меняет статус платежа бронирования.
// Допустимы только статусы pending, paid и cancelled; перевод в paid
// проставляет paid_at, любой другой статус его сбрасывает.
func (s *Service) UpdatePaymentStatus(ctx context.Context, bookingID int64, req *models.UpdatePaymentStatusRequest) error {
	status := domain.PaymentStatus(req.Status)
	if !domain.ValidPaymentStatus(status) {
		s.logger.Warn("UpdatePaymentStatus: invalid status %q for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	var paidAt *time.Time
	if status == domain.PaymentPaid {
		now := time.Now()
		paidAt = &now
	}

	if err := s.paymentRepo.UpdateStatus(ctx, bookingID, status, paidAt); err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("UpdatePaymentStatus: no payment for booking id=%d", bookingID)
			return ErrPaymentNotFound
		}
		s.logger.Error("UpdatePaymentStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdatePaymentStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePaymentStatus: booking id=%d payment status set to %s", bookingID, status)
	return nil
}

// UpdateBooking перезаписывает редактируемые поля бронирования.
// Итоговая цена не пересчитывается.
func (s *Service) UpdateBooking(ctx context.Context, bookingID int64, req *models.UpdateBookingRequest) error {
	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("UpdateBooking: invalid request for booking id=%d: %v", bookingID, err)
		return err
	}

	b := &domain.Booking{
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Date:          req.Date,
		BedroomQty:    req.BedroomQty,
		BathQty:       req.BathQty,
		Hours:         req.Hours,
		Notes:         req.Notes,
	}

	if err := s.bookingRepo.Update(ctx, bookingID, b); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateBooking: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateBooking: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateBooking - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateBooking: booking id=%d updated", bookingID)
	return nil
}

// DeleteBooking удаляет бронирование вместе с платежом и опциями
// в одной транзакции
func (s *Service) DeleteBooking(ctx context.Context, bookingID int64) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.paymentRepo.DeleteByBookingID(txCtx, bookingID); err != nil {
			return err
		}
		if err := s.bookingRepo.DeleteOptionsByBooking(txCtx, bookingID); err != nil {
			return err
		}
		return s.bookingRepo.Delete(txCtx, bookingID)
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("DeleteBooking: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("DeleteBooking: failed for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: DeleteBooking - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBooking: booking id=%d deleted", bookingID)
	return nil
}

// BulkUpdate выполняет массовую операцию над списком бронирований.
// Операция best-effort: сбой на одном ID не прерывает остальные,
// неудавшиеся ID возвращаются в ответе.
func (s *Service) BulkUpdate(ctx context.Context, req *models.BulkUpdateRequest) (*models.BulkUpdateResponse, error) {
	action := domain.BulkAction(req.Action)
	if !domain.ValidBulkAction(action) {
		s.logger.Warn("BulkUpdate: unknown action %q", req.Action)
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, req.Action)
	}

	resp := &models.BulkUpdateResponse{FailedIDs: make([]int64, 0)}
	for _, id := range req.BookingIDs {
		var err error
		switch action {
		case domain.BulkMarkPaid:
			err = s.UpdatePaymentStatus(ctx, id, &models.UpdatePaymentStatusRequest{Status: string(domain.PaymentPaid)})
		case domain.BulkCancel:
			err = s.UpdatePaymentStatus(ctx, id, &models.UpdatePaymentStatusRequest{Status: string(domain.PaymentCancelled)})
		case domain.BulkDelete:
			err = s.DeleteBooking(ctx, id)
		}

		if err != nil {
			s.logger.Warn("BulkUpdate: action=%s failed for booking id=%d: %v", action, id, err)
			resp.FailedIDs = append(resp.FailedIDs, id)
			continue
		}
		resp.Processed++
	}

	s.logger.Info("BulkUpdate: action=%s processed=%d failed=%d", action, resp.Processed, len(resp.FailedIDs))
	return resp, nil
}

// Вспомогательные методы

func (s *Service) serviceNames(ctx context.Context) (map[int64]string, error) {
	services, err := s.catalogRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("serviceNames: catalog repository error: %v", err)
		return nil, fmt.Errorf("%w: failed to load services: %v", ErrInternal, err)
	}

	names := make(map[int64]string, len(services))
	for _, svc := range services {
		names[svc.ID] = svc.Name
	}
	return names, nil
}

func (s *Service) buildConfirmationView(ctx context.Context, b *domain.Booking) (*models.ConfirmationBookingView, error) {
	view := &models.ConfirmationBookingView{
		ID:            b.ID,
		ServiceID:     b.ServiceID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Date:          b.Date,
		BedroomQty:    b.BedroomQty,
		BathQty:       b.BathQty,
		Hours:         b.Hours,
		Notes:         b.Notes,
		TotalPrice:    b.TotalPrice,
		CreatedAt:     b.CreatedAt.Format(domain.TimestampFormat),
	}

	svc, err := s.catalogRepo.GetByID(ctx, b.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			// Услугу могли удалить из каталога, бронирование все равно показываем
			s.logger.Warn("buildConfirmationView: service id=%d not found for booking id=%d", b.ServiceID, b.ID)
			return view, nil
		}
		s.logger.Error("buildConfirmationView: catalog repository error for booking id=%d: %v", b.ID, err)
		return nil, fmt.Errorf("%w: failed to load service: %v", ErrInternal, err)
	}

	view.ServiceName = svc.Name

	if b.PricingID != nil {
		if rule := svc.RuleByID(*b.PricingID); rule != nil {
			pricingID := models.ConfirmationPricingID(rule)
			view.PricingID = &pricingID
			view.PricingLabel = &rule.Label
			view.PricingPrice = &rule.Price
		}
	}

	return view, nil
}

func validateUpdateRequest(req *models.UpdateBookingRequest) error {
	switch {
	case strings.TrimSpace(req.CustomerName) == "":
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	case strings.TrimSpace(req.CustomerEmail) == "":
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	case strings.TrimSpace(req.CustomerPhone) == "":
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	case strings.TrimSpace(req.Date) == "":
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := time.Parse(domain.DateFormat, req.Date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	if req.BedroomQty < 0 || req.BathQty < 0 || req.Hours < 0 {
		return fmt.Errorf("%w: quantities must not be negative", ErrInvalidInput)
	}
	if len(req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
