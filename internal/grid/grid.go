// Package grid implements the Time Grid (§4.1): a bijection between naive
// local datetimes and a finite, 15-minute-resolution slot index space
// covering a fixed 7-day horizon restricted to a configurable daily window.
package grid

import (
	"fmt"
	"time"

	"github.com/weekplan/weekplan/internal/constants"
)

// ErrOutOfRange is returned by SlotToDateTime for a slot index outside
// [0, TotalSlots].
var ErrOutOfRange = fmt.Errorf("slot out of range")

// Config is the immutable, per-solve grid (§3 GridConfig). Day0Midnight is
// the explicit anchor §5/§9 asks for in place of a process-wide singleton:
// callers compute "today" once (e.g. via time.Now().In(loc) truncated to
// midnight) and pass it in, so the grid carries no global state.
type Config struct {
	StartHour     int // 0-23
	EndHour       int // 1-24, StartHour < EndHour
	Day0Midnight  time.Time
	SlotsPerDay   int
	TotalDays     int
	TotalSlots    int
}

// NewConfig validates (startHour, endHour) and derives SlotsPerDay/TotalSlots
// (§3, §4.1). day0Midnight must already be truncated to local midnight.
func NewConfig(startHour, endHour int, day0Midnight time.Time) (Config, error) {
	if startHour < 0 || startHour > 23 {
		return Config{}, fmt.Errorf("%w: start_hour %d not in [0,23]", ErrConfiguration, startHour)
	}
	if endHour < 1 || endHour > 24 {
		return Config{}, fmt.Errorf("%w: end_hour %d not in [1,24]", ErrConfiguration, endHour)
	}
	if startHour >= endHour {
		return Config{}, fmt.Errorf("%w: start_hour %d must be before end_hour %d", ErrConfiguration, startHour, endHour)
	}

	slotsPerDay := 4 * (endHour - startHour)
	return Config{
		StartHour:    startHour,
		EndHour:      endHour,
		Day0Midnight: day0Midnight,
		SlotsPerDay:  slotsPerDay,
		TotalDays:    constants.TotalDays,
		TotalSlots:   constants.TotalDays * slotsPerDay,
	}, nil
}

// ErrConfiguration signals a GridConfig that cannot be built (§4.1, §7).
var ErrConfiguration = fmt.Errorf("invalid grid configuration")

// SlotToDateTime returns the local start time of slot (§4.1). slot ==
// TotalSlots is the sentinel "exclusive end of horizon" value; anything else
// outside [0, TotalSlots] fails with ErrOutOfRange.
func (c Config) SlotToDateTime(slot int) (time.Time, error) {
	if slot == c.TotalSlots {
		return c.Day0Midnight.
			AddDate(0, 0, c.TotalDays).
			Add(time.Duration(c.StartHour) * time.Hour), nil
	}
	if slot < 0 || slot >= c.TotalSlots {
		return time.Time{}, fmt.Errorf("%w: slot %d not in [0,%d]", ErrOutOfRange, slot, c.TotalSlots)
	}

	dayIndex := slot / c.SlotsPerDay
	slotInDay := slot % c.SlotsPerDay

	return c.Day0Midnight.
		AddDate(0, 0, dayIndex).
		Add(time.Duration(c.StartHour)*time.Hour + time.Duration(slotInDay*constants.SlotMinutes)*time.Minute), nil
}

// DateTimeToSlot converts a naive local datetime to the containing slot
// index, applying the clamping rules of §4.1 / §8 properties 12-13.
func (c Config) DateTimeToSlot(dt time.Time) int {
	day0Start := c.Day0Midnight.Add(time.Duration(c.StartHour) * time.Hour)
	horizonEnd := c.Day0Midnight.AddDate(0, 0, c.TotalDays)

	if dt.Before(day0Start) {
		return 0
	}
	if !dt.Before(horizonEnd) {
		return c.TotalSlots - 1
	}

	elapsedDays := int(dt.Sub(c.Day0Midnight).Hours() / 24)
	if elapsedDays < 0 {
		elapsedDays = 0
	}
	if elapsedDays > c.TotalDays-1 {
		elapsedDays = c.TotalDays - 1
	}

	dayMidnight := c.Day0Midnight.AddDate(0, 0, elapsedDays)
	minutesSinceMidnight := int(dt.Sub(dayMidnight).Minutes())

	startMin := c.StartHour * 60
	endMin := c.EndHour * 60

	var slotInDay int
	switch {
	case minutesSinceMidnight < startMin:
		slotInDay = 0
	case minutesSinceMidnight >= endMin:
		slotInDay = c.SlotsPerDay - 1
	default:
		slotInDay = (minutesSinceMidnight - startMin) / constants.SlotMinutes
	}

	slot := elapsedDays*c.SlotsPerDay + slotInDay
	if slot < 0 {
		slot = 0
	}
	if slot > c.TotalSlots-1 {
		slot = c.TotalSlots - 1
	}
	return slot
}

// Day returns the 0-based day index ([0,TotalDays)) a slot falls in.
func (c Config) Day(slot int) int {
	return slot / c.SlotsPerDay
}

// Hour returns the wall-clock hour a slot starts in, without resolving a
// full datetime; used by the Preference Partition and the objective's
// per-slot weight functions.
func (c Config) Hour(slot int) int {
	slotInDay := slot % c.SlotsPerDay
	minutesFromStart := slotInDay * constants.SlotMinutes
	return c.StartHour + minutesFromStart/60
}
