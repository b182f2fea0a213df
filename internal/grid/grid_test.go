package grid

import (
	"testing"
	"time"
)

func mustConfig(t *testing.T, startHour, endHour int) Config {
	t.Helper()
	day0 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday
	c, err := NewConfig(startHour, endHour, day0)
	if err != nil {
		t.Fatalf("NewConfig(%d,%d) failed: %v", startHour, endHour, err)
	}
	return c
}

func TestNewConfig_Defaults(t *testing.T) {
	c := mustConfig(t, 8, 22)
	if c.SlotsPerDay != 56 {
		t.Errorf("SlotsPerDay = %d, want 56", c.SlotsPerDay)
	}
	if c.TotalSlots != 392 {
		t.Errorf("TotalSlots = %d, want 392", c.TotalSlots)
	}
	if c.TotalDays != 7 {
		t.Errorf("TotalDays = %d, want 7", c.TotalDays)
	}
}

func TestNewConfig_InvalidWindows(t *testing.T) {
	tests := []struct {
		name  string
		start int
		end   int
	}{
		{"start below range", -1, 22},
		{"start above range", 24, 22},
		{"end below range", 8, 0},
		{"end above range", 8, 25},
		{"start equals end", 10, 10},
		{"start after end", 12, 10},
	}
	day0 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewConfig(tt.start, tt.end, day0); err == nil {
				t.Errorf("NewConfig(%d, %d) = nil error, want ErrConfiguration", tt.start, tt.end)
			}
		})
	}
}

// TestRoundTrip covers §8 property 11: datetime_to_slot(slot_to_datetime(s)) == s.
func TestRoundTrip(t *testing.T) {
	c := mustConfig(t, 8, 22)
	for s := 0; s < c.TotalSlots; s++ {
		dt, err := c.SlotToDateTime(s)
		if err != nil {
			t.Fatalf("SlotToDateTime(%d) failed: %v", s, err)
		}
		if got := c.DateTimeToSlot(dt); got != s {
			t.Errorf("round trip for slot %d: got %d", s, got)
		}
	}
}

func TestSlotToDateTime_Sentinel(t *testing.T) {
	c := mustConfig(t, 8, 22)
	dt, err := c.SlotToDateTime(c.TotalSlots)
	if err != nil {
		t.Fatalf("SlotToDateTime(TotalSlots) failed: %v", err)
	}
	want := c.Day0Midnight.AddDate(0, 0, 7).Add(8 * time.Hour)
	if !dt.Equal(want) {
		t.Errorf("sentinel = %v, want %v", dt, want)
	}
}

func TestSlotToDateTime_OutOfRange(t *testing.T) {
	c := mustConfig(t, 8, 22)
	if _, err := c.SlotToDateTime(-1); err == nil {
		t.Error("SlotToDateTime(-1) should fail")
	}
	if _, err := c.SlotToDateTime(c.TotalSlots + 1); err == nil {
		t.Error("SlotToDateTime(TotalSlots+1) should fail")
	}
}

// TestClamping covers §8 property 12.
func TestClamping(t *testing.T) {
	c := mustConfig(t, 8, 22)

	before := c.Day0Midnight.Add(8 * time.Hour).Add(-time.Minute)
	if got := c.DateTimeToSlot(before); got != 0 {
		t.Errorf("DateTimeToSlot(day0Start - 1min) = %d, want 0", got)
	}

	after := c.Day0Midnight.AddDate(0, 0, 7).Add(time.Minute)
	if got := c.DateTimeToSlot(after); got != c.TotalSlots-1 {
		t.Errorf("DateTimeToSlot(horizonEnd + 1min) = %d, want %d", got, c.TotalSlots-1)
	}
}

func TestDateTimeToSlot_WithinWindowClamp(t *testing.T) {
	c := mustConfig(t, 8, 22)

	// before the daily window opens -> first slot of that day
	early := c.Day0Midnight.Add(3 * time.Hour) // 03:00, before 08:00
	if got := c.DateTimeToSlot(early); got != 0 {
		t.Errorf("DateTimeToSlot(03:00 day0) = %d, want 0", got)
	}

	// after the daily window closes -> last slot of that day
	late := c.Day0Midnight.Add(23 * time.Hour) // 23:00, after 22:00
	if got := c.DateTimeToSlot(late); got != c.SlotsPerDay-1 {
		t.Errorf("DateTimeToSlot(23:00 day0) = %d, want %d", got, c.SlotsPerDay-1)
	}
}

func TestHourAndDay(t *testing.T) {
	c := mustConfig(t, 8, 22)
	if h := c.Hour(0); h != 8 {
		t.Errorf("Hour(0) = %d, want 8", h)
	}
	if h := c.Hour(c.SlotsPerDay - 1); h != 21 {
		t.Errorf("Hour(last slot of day) = %d, want 21", h)
	}
	if d := c.Day(c.SlotsPerDay); d != 1 {
		t.Errorf("Day(first slot of day 1) = %d, want 1", d)
	}
}
