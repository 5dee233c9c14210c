package domain

// Default configuration values
const (
	DefaultStartHour               = 9
	DefaultEndHour                 = 18
	DefaultBreakStartHour          = 12
	DefaultBreakEndHour            = 13
	DefaultIntervalMinutes         = 40
	DefaultSessionMinutes          = 40
	DefaultMaxDaysAhead            = 30
	DefaultReminderLeadMinutes     = 30
	DefaultMinBookingBufferMinutes = 5
	DefaultPrayerHalfWidthMinutes  = 10
	DefaultPrefetchDays            = 30
)

// Business validation constants
const (
	MinSessionMinutes    = 5
	MaxSessionMinutes    = 480
	MinPatientNameLength = 2
	MaxPatientNameLength = 100
	MaxAddressLength     = 500
	MaxPhoneLength       = 20
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
