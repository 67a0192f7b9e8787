package domain

import "time"

// RuleType represents the kind of pricing adjustment a rule applies
type RuleType string

const (
	RulePerRoom  RuleType = "per_room"
	RuleHourly   RuleType = "hourly"
	RuleFlatRate RuleType = "flat_rate"
	RuleFlatTier RuleType = "flat_tier"
	RuleCustom   RuleType = "custom"
)

// RoomType tags a per_room rule with the room it prices.
// Replaces matching on the "Bedroom"/"Bathroom" label text, which broke on renames.
type RoomType string

const (
	RoomBedroom  RoomType = "bedroom"
	RoomBathroom RoomType = "bathroom"
	RoomNone     RoomType = ""
)

// Service represents an offered cleaning service with its pricing rules
type Service struct {
	ID          int64
	Name        string
	Description string
	BasePrice   float64
	ImageURL    string
	Pricing     []PricingRule
	CreatedAt   time.Time
}

// HasPricingRules returns true if the service has at least one pricing rule
func (s *Service) HasPricingRules() bool {
	return len(s.Pricing) > 0
}

// RuleByID returns the service's pricing rule with the given id, or nil
func (s *Service) RuleByID(id int64) *PricingRule {
	for i := range s.Pricing {
		if s.Pricing[i].ID == id {
			return &s.Pricing[i]
		}
	}
	return nil
}

// PricingRule represents a single priced adjustment attached to a service
type PricingRule struct {
	ID          int64
	ServiceID   int64
	RuleType    RuleType
	RoomType    RoomType
	Label       string
	Price       float64
	MinQuantity int
	MaxQuantity int
}

// IsFlat returns true for rules that overwrite the total instead of adding to it
func (r *PricingRule) IsFlat() bool {
	return r.RuleType == RuleFlatRate || r.RuleType == RuleFlatTier
}

// ValidRuleType returns true if the rule type is one of the recognized kinds
func ValidRuleType(t RuleType) bool {
	switch t {
	case RulePerRoom, RuleHourly, RuleFlatRate, RuleFlatTier, RuleCustom:
		return true
	default:
		return false
	}
}
