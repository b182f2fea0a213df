package constants

import "math"

const (
	// Setting keys, as persisted via Settings / exposed through `weekplan settings`.
	SettingStartHour         = "start_hour"
	SettingEndHour           = "end_hour"
	SettingAlpha             = "alpha"
	SettingBeta              = "beta"
	SettingGamma             = "gamma"
	SettingGammaContiguity   = "gamma_contiguity"
	SettingDailyLimitSlots   = "daily_limit_slots"
	SettingHardTaskThreshold = "hard_task_threshold"
	SettingTimeLimitSeconds  = "time_limit_seconds"
	SettingTimezone          = "timezone"
	SettingVariant           = "variant"

	// Grid defaults (§4.1).
	DefaultStartHour = 8
	DefaultEndHour   = 22
	SlotMinutes      = 15
	TotalDays        = 7

	// Objective defaults (§4.4).
	DefaultAlpha           = 1.0
	DefaultBeta            = 0.1
	DefaultGamma           = 1.0
	DefaultGammaContiguity = 0.05

	// Per-slot weight defaults (§4.4).
	LeisureWeightEvening     = 1.5
	LeisureWeightBase        = 1.0
	LeisureWeightEveningHour = 18

	StressMultiplierWorkday     = 1.2
	StressMultiplierBase        = 1.0
	StressMultiplierWorkdayFrom = 9
	StressMultiplierWorkdayTo   = 17

	DefaultHardTaskThreshold = 4
	DefaultTimeLimitSeconds  = 30

	DefaultTimezone = "Local" // use the system local timezone by default
	DefaultVariant  = VariantBase
)

// PiSuccessThreshold is the minimum modeled success probability (§4.3, §9) a
// task must clear to be admitted.
const PiSuccessThreshold = 0.7

// PiLogConstant is ln(10/3), the closed form of -ln(1-PiSuccessThreshold),
// used by the Pi admissibility predicate: duration_minutes >= difficulty *
// priority * PiLogConstant. It is derived from PiSuccessThreshold at start-up
// rather than written as a truncated decimal.
var PiLogConstant = -math.Log(1 - PiSuccessThreshold)
