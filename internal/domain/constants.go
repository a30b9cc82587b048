package domain

// Default values
const (
	DefaultTimezone               = "UTC"
	DefaultDurationMinutes        = 60
	DefaultCurrency               = "USD"
	DefaultSlotGranularityMinutes = 30
	DefaultMinLeadTimeMinutes     = 720 // 12 hours
	DefaultAvailabilityDays       = 14
	DefaultListLimit              = 50
)

// Business validation constants
const (
	PublicIDLength      = 12
	MaxAvailabilityDays = 90
	MaxListLimit        = 200
	MaxFullNameLength   = 160
	MaxEmailLength      = 254
	MaxCompanyLength    = 200
	MaxRoleLength       = 120
	MaxPhoneLength      = 30
	MaxTimezoneLength   = 64
	MaxMeetingURLLength = 1024
	MaxSlugLength       = 160
	MaxServiceNameLen   = 200
	MaxReasonLength     = 200
	MaxDayMinutes       = 24 * 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
