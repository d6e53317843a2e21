package domain

// Default configuration values
const (
	DefaultHorizonDays          = 35
	DefaultLowSlotsThreshold    = 3
	DefaultSameDayCutoffMinutes = 15
	DefaultUnassignedBlocksAll  = true
	DefaultRequiresProfessional = false
)

// Business validation constants
const (
	MinHorizonDays          = 1
	MaxHorizonDays          = 365 // 1 year
	MinLowSlotsThreshold    = 1
	MaxLowSlotsThreshold    = 50
	MinSameDayCutoffMinutes = 0
	MaxSameDayCutoffMinutes = 1440 // 1 day

	MaxClientNameLength     = 200
	MaxClientPhoneLength    = 32
	MaxClientDocumentLength = 64
	MaxClientEmailLength    = 254
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
