package models

import (
	"fmt"

	"github.com/weekplan/weekplan/internal/constants"
)

// MapToSettings converts a map of key-value pairs (as read from storage, or
// supplied via the `weekplan settings` flags) into a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		var err error
		switch key {
		case constants.SettingStartHour:
			_, err = fmt.Sscanf(value, "%d", &settings.StartHour)
		case constants.SettingEndHour:
			_, err = fmt.Sscanf(value, "%d", &settings.EndHour)
		case constants.SettingAlpha:
			_, err = fmt.Sscanf(value, "%g", &settings.Alpha)
		case constants.SettingBeta:
			_, err = fmt.Sscanf(value, "%g", &settings.Beta)
		case constants.SettingGamma:
			_, err = fmt.Sscanf(value, "%g", &settings.Gamma)
		case constants.SettingGammaContiguity:
			_, err = fmt.Sscanf(value, "%g", &settings.GammaContiguity)
		case constants.SettingDailyLimitSlots:
			var v int
			if _, scanErr := fmt.Sscanf(value, "%d", &v); scanErr == nil {
				settings.DailyLimitSlots = &v
			} else {
				err = scanErr
			}
		case constants.SettingHardTaskThreshold:
			_, err = fmt.Sscanf(value, "%d", &settings.HardTaskThreshold)
		case constants.SettingTimeLimitSeconds:
			_, err = fmt.Sscanf(value, "%d", &settings.TimeLimitSeconds)
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingVariant:
			settings.Variant = constants.Variant(value)
		}
		if err != nil {
			return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs, the
// inverse of MapToSettings.
func SettingsToMap(settings Settings) map[string]string {
	m := map[string]string{
		constants.SettingStartHour:         fmt.Sprintf("%d", settings.StartHour),
		constants.SettingEndHour:           fmt.Sprintf("%d", settings.EndHour),
		constants.SettingAlpha:             fmt.Sprintf("%g", settings.Alpha),
		constants.SettingBeta:              fmt.Sprintf("%g", settings.Beta),
		constants.SettingGamma:             fmt.Sprintf("%g", settings.Gamma),
		constants.SettingGammaContiguity:   fmt.Sprintf("%g", settings.GammaContiguity),
		constants.SettingHardTaskThreshold: fmt.Sprintf("%d", settings.HardTaskThreshold),
		constants.SettingTimeLimitSeconds:  fmt.Sprintf("%d", settings.TimeLimitSeconds),
		constants.SettingTimezone:          settings.Timezone,
		constants.SettingVariant:           string(settings.Variant),
	}
	if settings.DailyLimitSlots != nil {
		m[constants.SettingDailyLimitSlots] = fmt.Sprintf("%d", *settings.DailyLimitSlots)
	}
	return m
}

// ApplyDefaultSettings fills in zero-valued fields with their documented
// defaults (§4.1, §4.4).
func ApplyDefaultSettings(settings *Settings) {
	if settings.StartHour == 0 && settings.EndHour == 0 {
		settings.StartHour = constants.DefaultStartHour
		settings.EndHour = constants.DefaultEndHour
	}
	if settings.Alpha == 0 {
		settings.Alpha = constants.DefaultAlpha
	}
	if settings.Beta == 0 {
		settings.Beta = constants.DefaultBeta
	}
	if settings.Gamma == 0 {
		settings.Gamma = constants.DefaultGamma
	}
	if settings.GammaContiguity == 0 {
		settings.GammaContiguity = constants.DefaultGammaContiguity
	}
	if settings.HardTaskThreshold == 0 {
		settings.HardTaskThreshold = constants.DefaultHardTaskThreshold
	}
	if settings.TimeLimitSeconds == 0 {
		settings.TimeLimitSeconds = constants.DefaultTimeLimitSeconds
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.Variant == "" {
		settings.Variant = constants.DefaultVariant
	}
}
