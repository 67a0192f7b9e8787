package models

import (
	"github.com/Fuzuri/CleanIT/internal/domain"
)

// Request модели

// AddServiceRequest запрос на добавление услуги в каталог
type AddServiceRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BasePrice   float64 `json:"basePrice"`
	ImageURL    string  `json:"imageUrl"`
}

// Response модели

// PricingRuleResponse ответ с данными правила ценообразования
type PricingRuleResponse struct {
	ID          int64   `json:"id"`
	ServiceID   int64   `json:"serviceId"`
	RuleType    string  `json:"ruleType"`
	RoomType    string  `json:"roomType,omitempty"`
	Label       string  `json:"label"`
	Price       float64 `json:"price"`
	MinQuantity int     `json:"minQuantity,omitempty"`
	MaxQuantity int     `json:"maxQuantity,omitempty"`
}

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	BasePrice   float64               `json:"basePrice"`
	ImageURL    string                `json:"imageUrl,omitempty"`
	Pricing     []PricingRuleResponse `json:"pricing"`
	CreatedAt   string                `json:"createdAt"`
}

// ServiceListResponse ответ со списком услуг каталога
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FlatOption плоская опция цены (flat_rate или flat_tier) для страницы бронирования
type FlatOption struct {
	PricingID int64   `json:"pricingId"`
	Label     string  `json:"label"`
	Price     float64 `json:"price"`
}

// PricingView сгруппированные по типу правила цены для страницы бронирования.
// Поля-указатели равны nil, когда у услуги нет правила соответствующего типа.
type PricingView struct {
	BedroomPrice    *float64     `json:"bedroomPrice"`
	BathroomPrice   *float64     `json:"bathroomPrice"`
	HourlyPrice     *float64     `json:"hourlyPrice"`
	HourlyPricingID *int64       `json:"hourlyPricingId"`
	FlatRate        []FlatOption `json:"flatRate"`
	FlatTiers       []FlatOption `json:"flatTiers"`
	CustomLabel     *string      `json:"customLabel"`
	BasePricingID   *int64       `json:"basePricingId"`
}

// BookingPageResponse данные страницы бронирования услуги
type BookingPageResponse struct {
	Service ServiceResponse `json:"service"`
	Pricing PricingView     `json:"pricing"`
}

// Конвертация domain -> response

// FromDomainRule конвертирует доменное правило в response модель
func FromDomainRule(r *domain.PricingRule) PricingRuleResponse {
	return PricingRuleResponse{
		ID:          r.ID,
		ServiceID:   r.ServiceID,
		RuleType:    string(r.RuleType),
		RoomType:    string(r.RoomType),
		Label:       r.Label,
		Price:       r.Price,
		MinQuantity: r.MinQuantity,
		MaxQuantity: r.MaxQuantity,
	}
}

// FromDomainService конвертирует доменную услугу в response модель
func FromDomainService(s *domain.Service) *ServiceResponse {
	pricing := make([]PricingRuleResponse, 0, len(s.Pricing))
	for i := range s.Pricing {
		pricing = append(pricing, FromDomainRule(&s.Pricing[i]))
	}

	return &ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		BasePrice:   s.BasePrice,
		ImageURL:    s.ImageURL,
		Pricing:     pricing,
		CreatedAt:   s.CreatedAt.Format(domain.TimestampFormat),
	}
}

// FromDomainServiceList конвертирует список доменных услуг в response модель
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, *FromDomainService(s))
	}
	return &ServiceListResponse{Services: out}
}

// BuildPricingView группирует правила услуги по типам для страницы бронирования.
// Первое правило с id становится basePricingId, повторные правила одного типа
// перезаписывают скалярные поля (порядок следования сохраняет репозиторий).
func BuildPricingView(s *domain.Service) PricingView {
	view := PricingView{
		FlatRate:  make([]FlatOption, 0),
		FlatTiers: make([]FlatOption, 0),
	}

	for i := range s.Pricing {
		rule := &s.Pricing[i]

		switch rule.RuleType {
		case domain.RulePerRoom:
			switch rule.RoomType {
			case domain.RoomBedroom:
				view.BedroomPrice = &rule.Price
			case domain.RoomBathroom:
				view.BathroomPrice = &rule.Price
			}
		case domain.RuleFlatTier:
			view.FlatTiers = append(view.FlatTiers, FlatOption{
				PricingID: rule.ID,
				Label:     rule.Label,
				Price:     rule.Price,
			})
		case domain.RuleFlatRate:
			view.FlatRate = append(view.FlatRate, FlatOption{
				PricingID: rule.ID,
				Label:     rule.Label,
				Price:     rule.Price,
			})
		case domain.RuleHourly:
			view.HourlyPrice = &rule.Price
			view.HourlyPricingID = &rule.ID
		case domain.RuleCustom:
			view.CustomLabel = &rule.Label
		}

		if view.BasePricingID == nil {
			view.BasePricingID = &rule.ID
		}
	}

	return view
}
