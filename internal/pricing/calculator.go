// Package pricing вычисление итоговой стоимости бронирования по правилам услуги
package pricing

import "github.com/Fuzuri/CleanIT/internal/domain"

// Input параметры расчета стоимости
type Input struct {
	BedroomQty int    // количество спален (первая покрыта базовой ценой)
	BathQty    int    // количество ванных (первая покрыта базовой ценой)
	Hours      int    // количество часов для hourly-правил
	PricingID  *int64 // выбранное flat-правило; nil - без flat-корректировок
}

// DefaultInput возвращает Input со значениями по умолчанию
func DefaultInput() Input {
	return Input{
		BedroomQty: domain.DefaultBedroomQty,
		BathQty:    domain.DefaultBathQty,
		Hours:      domain.DefaultHours,
	}
}

// Calculate считает итоговую стоимость услуги.
// Правила применяются в порядке их следования у услуги, итог стартует с базовой цены:
//   - per_room: за каждую комнату сверх первой добавляется Price (первая входит в базу)
//   - hourly: при Hours > 0 добавляется Price * Hours (каждый час тарифицируется)
//   - flat_rate / flat_tier: если PricingID совпадает с правилом, итог ПЕРЕЗАПИСЫВАЕТСЯ
//     его ценой (при дублях побеждает последнее совпавшее правило)
//   - custom: на расчет не влияет
func Calculate(service *domain.Service, in Input) float64 {
	total := service.BasePrice

	for _, rule := range service.Pricing {
		switch rule.RuleType {
		case domain.RulePerRoom:
			if rule.RoomType == domain.RoomBedroom && in.BedroomQty > 1 {
				total += rule.Price * float64(in.BedroomQty-1)
			}
			if rule.RoomType == domain.RoomBathroom && in.BathQty > 1 {
				total += rule.Price * float64(in.BathQty-1)
			}

		case domain.RuleHourly:
			if in.Hours > 0 {
				total += rule.Price * float64(in.Hours)
			}

		case domain.RuleFlatRate, domain.RuleFlatTier:
			if in.PricingID != nil && rule.ID == *in.PricingID {
				total = rule.Price
			}
		}
	}

	return total
}
