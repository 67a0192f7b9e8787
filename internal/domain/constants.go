package domain

// Defaults applied when a booking request omits quantities
const (
	DefaultBedroomQty = 1
	DefaultBathQty    = 1
	DefaultHours      = 0
)

// DefaultRuleLabel is the label of the flat_rate rule auto-created for a
// service that is first accessed with no pricing rules
const DefaultRuleLabel = "Standard Service"

// Time format constants
const (
	DateFormat      = "2006-01-02"          // YYYY-MM-DD
	TimestampFormat = "2006-01-02 15:04:05" // created_at in views and exports
)

// MaxNotesLength bounds the free-text notes field on a booking
const MaxNotesLength = 500
