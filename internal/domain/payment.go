package domain

import "time"

// PaymentMethod represents how the customer pays for a booking
type PaymentMethod string

const (
	MethodCash  PaymentMethod = "Cash"
	MethodCard  PaymentMethod = "Card"
	MethodGCash PaymentMethod = "GCASH"
)

// PaymentStatus represents the state of a payment record
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment tracks address, method and status for a booking.
// At most one payment exists per booking (unique booking_id); Amount is copied
// from the booking total at submission time and never re-derived.
type Payment struct {
	ID        int64
	BookingID int64

	StreetAddress string
	City          string
	Province      string
	Region        string

	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Amount        float64

	PaidAt    *time.Time
	CreatedAt time.Time
}

// IsPaid returns true if the payment has been marked paid
func (p *Payment) IsPaid() bool {
	return p.PaymentStatus == PaymentPaid
}

// ValidPaymentMethod returns true if the method is one of the accepted kinds
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodCard, MethodGCash:
		return true
	default:
		return false
	}
}

// ValidPaymentStatus returns true if the status is one of the recognized states
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentCancelled:
		return true
	default:
		return false
	}
}
