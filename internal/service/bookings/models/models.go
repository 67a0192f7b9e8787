package models

import (
	"fmt"

	"github.com/Fuzuri/CleanIT/internal/domain"
)

// PaymentMethodNotProvided подставляется в админских списках, когда
// клиент еще не дошел до страницы оплаты
const PaymentMethodNotProvided = "Not provided"

// Request модели

// UpdatePaymentStatusRequest запрос на смену статуса платежа бронирования
type UpdatePaymentStatusRequest struct {
	Status string `json:"status"`
}

// UpdateBookingRequest запрос на редактирование бронирования админом.
// Итоговая цена не пересчитывается: TotalPrice фиксируется при создании.
type UpdateBookingRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Date          string `json:"date"`
	BedroomQty    int    `json:"bedroomQty"`
	BathQty       int    `json:"bathQty"`
	Hours         int    `json:"hours"`
	Notes         string `json:"notes"`
}

// BulkUpdateRequest запрос на массовую операцию над бронированиями
type BulkUpdateRequest struct {
	BookingIDs []int64 `json:"bookingIds"`
	Action     string  `json:"action"`
}

// Response модели

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID            int64   `json:"id"`
	BookingID     int64   `json:"bookingId"`
	StreetAddress string  `json:"streetAddress"`
	City          string  `json:"city"`
	Province      string  `json:"province"`
	Region        string  `json:"region"`
	PaymentMethod string  `json:"paymentMethod"`
	PaymentStatus string  `json:"paymentStatus"`
	Amount        float64 `json:"amount"`
	PaidAt        *string `json:"paidAt"`
	CreatedAt     string  `json:"createdAt"`
}

// OptionLine строка дополнительной опции бронирования в админском списке
type OptionLine struct {
	Label    string  `json:"label"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// AdminBookingView бронирование в админском списке со связанными данными
type AdminBookingView struct {
	ID            int64            `json:"id"`
	ServiceID     int64            `json:"serviceId"`
	ServiceName   string           `json:"serviceName"`
	CustomerName  string           `json:"customerName"`
	CustomerEmail string           `json:"customerEmail"`
	CustomerPhone string           `json:"customerPhone"`
	Date          string           `json:"date"`
	BedroomQty    int              `json:"bedroomQty"`
	BathQty       int              `json:"bathQty"`
	Hours         int              `json:"hours"`
	Notes         string           `json:"notes,omitempty"`
	TotalPrice    float64          `json:"totalPrice"`
	CreatedAt     string           `json:"createdAt"`
	Options       []OptionLine     `json:"options"`
	Payment       *PaymentResponse `json:"payment"`
	PaymentMethod string           `json:"paymentMethod"`
}

// BookingListResponse ответ со списком бронирований для админки
type BookingListResponse struct {
	Bookings []AdminBookingView `json:"bookings"`
}

// RecentBookingView краткая строка недавнего бронирования на дашборде
type RecentBookingView struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customerName"`
	Date         string `json:"date"`
	ServiceName  string `json:"serviceName"`
}

// DashboardResponse сводка для админского дашборда
type DashboardResponse struct {
	TotalBookings    int64               `json:"totalBookings"`
	TotalServices    int64               `json:"totalServices"`
	TotalRevenue     float64             `json:"totalRevenue"`
	NewBookingsToday int64               `json:"newBookingsToday"`
	RecentBookings   []RecentBookingView `json:"recentBookings"`
}

// BulkUpdateResponse итог массовой операции: сколько обработано и какие ID не удалось
type BulkUpdateResponse struct {
	Processed int     `json:"processed"`
	FailedIDs []int64 `json:"failedIds"`
}

// ConfirmationBookingView бронирование на странице подтверждения.
// PricingID строковый: для custom правила к ID добавляется суффикс "_custom",
// чтобы клиент мог отличить индивидуальную договоренность от опции каталога.
type ConfirmationBookingView struct {
	ID            int64    `json:"id"`
	ServiceID     int64    `json:"serviceId"`
	ServiceName   string   `json:"serviceName"`
	PricingID     *string  `json:"pricingId"`
	PricingLabel  *string  `json:"pricingLabel"`
	PricingPrice  *float64 `json:"pricingPrice"`
	CustomerName  string   `json:"customerName"`
	CustomerEmail string   `json:"customerEmail"`
	CustomerPhone string   `json:"customerPhone"`
	Date          string   `json:"date"`
	BedroomQty    int      `json:"bedroomQty"`
	BathQty       int      `json:"bathQty"`
	Hours         int      `json:"hours"`
	Notes         string   `json:"notes,omitempty"`
	TotalPrice    float64  `json:"totalPrice"`
	CreatedAt     string   `json:"createdAt"`
}

// ConfirmationResponse ответ страницы подтверждения бронирования
type ConfirmationResponse struct {
	Booking ConfirmationBookingView `json:"booking"`
	Payment *PaymentResponse        `json:"payment"`
}

// Конвертация domain -> response

// FromDomainPayment конвертирует доменный платеж в response модель
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	var paidAt *string
	if p.PaidAt != nil {
		formatted := p.PaidAt.Format(domain.TimestampFormat)
		paidAt = &formatted
	}

	return &PaymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		StreetAddress: p.StreetAddress,
		City:          p.City,
		Province:      p.Province,
		Region:        p.Region,
		PaymentMethod: string(p.PaymentMethod),
		PaymentStatus: string(p.PaymentStatus),
		Amount:        p.Amount,
		PaidAt:        paidAt,
		CreatedAt:     p.CreatedAt.Format(domain.TimestampFormat),
	}
}

// ConfirmationPricingID строит строковый идентификатор выбранного правила
// для страницы подтверждения
func ConfirmationPricingID(rule *domain.PricingRule) string {
	if rule.RuleType == domain.RuleCustom {
		return fmt.Sprintf("%d_custom", rule.ID)
	}
	return fmt.Sprintf("%d", rule.ID)
}
