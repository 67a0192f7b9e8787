package submit_payment

import (
	submitPayment "github.com/Fuzuri/CleanIT/internal/usecase/submit_payment"
)

// SubmitPaymentRequest HTTP request model
type SubmitPaymentRequest struct {
	StreetAddress string `json:"streetAddress"`
	City          string `json:"city"`
	Province      string `json:"province"`
	Region        string `json:"region"`
	PaymentMethod string `json:"paymentMethod"`
}

// PaymentResponse HTTP response model с инструкцией по оплате
type PaymentResponse struct {
	PaymentID     int64   `json:"paymentId"`
	BookingID     int64   `json:"bookingId"`
	StreetAddress string  `json:"streetAddress"`
	City          string  `json:"city"`
	Province      string  `json:"province"`
	Region        string  `json:"region"`
	PaymentMethod string  `json:"paymentMethod"`
	PaymentStatus string  `json:"paymentStatus"`
	Amount        float64 `json:"amount"`
	Instruction   string  `json:"instruction"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitPaymentRequest) ToUseCaseRequest(bookingID int64) *submitPayment.Request {
	return &submitPayment.Request{
		BookingID:     bookingID,
		StreetAddress: r.StreetAddress,
		City:          r.City,
		Province:      r.Province,
		Region:        r.Region,
		PaymentMethod: r.PaymentMethod,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitPayment.Response) *PaymentResponse {
	return &PaymentResponse{
		PaymentID:     resp.PaymentID,
		BookingID:     resp.BookingID,
		StreetAddress: resp.StreetAddress,
		City:          resp.City,
		Province:      resp.Province,
		Region:        resp.Region,
		PaymentMethod: resp.PaymentMethod,
		PaymentStatus: resp.PaymentStatus,
		Amount:        resp.Amount,
		Instruction:   resp.Instruction,
	}
}
