package submit_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Fuzuri/CleanIT/internal/domain"
	bookingRepo "github.com/Fuzuri/CleanIT/internal/infra/storage/booking"
)

// InstructionInvalidMethod показывается, когда способ оплаты не распознан.
// Платеж при этом уже сохранен и может быть исправлен повторной отправкой.
const InstructionInvalidMethod = "Invalid payment method."

// UseCase use case оформления оплаты бронирования
type UseCase struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	gcashNumber string
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	gcashNumber string,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		gcashNumber: gcashNumber,
		logger:      logger,
	}
}

// Execute выполняет use case оформления оплаты.
// Адрес и способ оплаты обязательны, при ошибке валидации запись не
// создается. Сумма копируется из итога бронирования, клиентская сумма
// игнорируется. Повторная отправка обновляет адрес, способ и сумму
// существующей записи одним атомарным upsert, не трогая статус платежа.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitPayment: booking=%d, method=%q", req.BookingID, req.PaymentMethod)

	// 1. Валидация входных данных до любых записей
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitPayment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование ради суммы к оплате
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("SubmitPayment: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("SubmitPayment: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Атомарный upsert платежа
	payment, err := uc.paymentRepo.Upsert(ctx, &domain.Payment{
		BookingID:     req.BookingID,
		StreetAddress: strings.TrimSpace(req.StreetAddress),
		City:          strings.TrimSpace(req.City),
		Province:      strings.TrimSpace(req.Province),
		Region:        strings.TrimSpace(req.Region),
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		Amount:        booking.TotalPrice,
	})
	if err != nil {
		uc.logger.Error("SubmitPayment: failed to upsert payment for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to upsert payment: %v", ErrInternal, err)
	}

	uc.logger.Info("SubmitPayment: payment id=%d saved for booking id=%d, amount=%.2f",
		payment.ID, payment.BookingID, payment.Amount)

	return &Response{
		PaymentID:     payment.ID,
		BookingID:     payment.BookingID,
		StreetAddress: payment.StreetAddress,
		City:          payment.City,
		Province:      payment.Province,
		Region:        payment.Region,
		PaymentMethod: string(payment.PaymentMethod),
		PaymentStatus: string(payment.PaymentStatus),
		Amount:        payment.Amount,
		Instruction:   uc.instruction(payment.PaymentMethod, payment.Amount),
	}, nil
}

// instruction возвращает текст инструкции по оплате для клиента.
// Текст чисто презентационный и не влияет на сохраненные данные.
func (uc *UseCase) instruction(method domain.PaymentMethod, amount float64) string {
	switch method {
	case domain.MethodCash:
		return fmt.Sprintf("Please ready your cash (₱%.2f) when the crew arrives.", amount)
	case domain.MethodCard:
		return "Please wait, you will be redirected to our secure card payment gateway."
	case domain.MethodGCash:
		return fmt.Sprintf("Please send ₱%.2f to GCASH Number: %s.", amount, uc.gcashNumber)
	default:
		return InstructionInvalidMethod
	}
}
