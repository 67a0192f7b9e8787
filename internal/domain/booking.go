package domain

import "time"

// Booking represents a customer's request for a service at a computed total price.
// TotalPrice is snapshotted at creation time and never recomputed, so later
// catalog price changes do not affect existing bookings.
type Booking struct {
	ID        int64
	ServiceID int64
	PricingID *int64 // primary pricing rule; nil when the customer picked no flat option

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Date          string // service date, YYYY-MM-DD
	BedroomQty    int
	BathQty       int
	Hours         int
	Notes         string

	TotalPrice float64
	CreatedAt  time.Time
}

// BookingOption links a booking to an additional pricing rule beyond the primary one.
// Not written by the booking flow; read by admin views.
type BookingOption struct {
	ID        int64
	BookingID int64
	PricingID int64
	Quantity  int
}

// BulkAction is an admin bulk operation over a set of bookings
type BulkAction string

const (
	BulkMarkPaid BulkAction = "mark_paid"
	BulkCancel   BulkAction = "cancel"
	BulkDelete   BulkAction = "delete"
)

// ValidBulkAction returns true if the action is one of the recognized bulk operations
func ValidBulkAction(a BulkAction) bool {
	switch a {
	case BulkMarkPaid, BulkCancel, BulkDelete:
		return true
	default:
		return false
	}
}
