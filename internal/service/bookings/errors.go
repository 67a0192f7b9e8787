package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrPaymentNotFound возвращается, когда у бронирования нет записи платежа
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус платежа
	ErrInvalidStatus = errors.New("invalid payment status")

	// ErrInvalidAction возвращается при неизвестной массовой операции
	ErrInvalidAction = errors.New("invalid bulk action")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings service: internal error")
)
