package grid

import (
	"testing"
	"time"

	"github.com/weekplan/weekplan/internal/constants"
)

func TestBuildPartition_Regions(t *testing.T) {
	day0 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	c, err := NewConfig(8, 22, day0)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	p := BuildPartition(c)

	for _, s := range p.Morning {
		if h := c.Hour(s); h < 8 || h >= 12 {
			t.Errorf("morning slot %d has hour %d, out of [8,12)", s, h)
		}
	}
	for _, s := range p.Afternoon {
		if h := c.Hour(s); h < 12 || h >= 16 {
			t.Errorf("afternoon slot %d has hour %d, out of [12,16)", s, h)
		}
	}
	for _, s := range p.Evening {
		if h := c.Hour(s); h < 16 || h >= 22 {
			t.Errorf("evening slot %d has hour %d, out of [16,22)", s, h)
		}
	}

	wantTotal := c.TotalDays * (4 * (12 - 8))
	if len(p.Morning) != wantTotal {
		t.Errorf("len(Morning) = %d, want %d", len(p.Morning), wantTotal)
	}
}

func TestBuildPartition_NarrowWindowEmptiesRegion(t *testing.T) {
	day0 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	// window [13,15) excludes morning and evening entirely.
	c, err := NewConfig(13, 15, day0)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	p := BuildPartition(c)
	if len(p.Morning) != 0 {
		t.Errorf("Morning should be empty for window [13,15), got %d slots", len(p.Morning))
	}
	if len(p.Evening) != 0 {
		t.Errorf("Evening should be empty for window [13,15), got %d slots", len(p.Evening))
	}
	if len(p.Afternoon) == 0 {
		t.Error("Afternoon should be non-empty for window [13,15)")
	}
}

func TestAllowedSlots_AnyIsEverySlot(t *testing.T) {
	day0 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	c, _ := NewConfig(8, 22, day0)
	p := BuildPartition(c)
	if got := len(p.AllowedSlots(constants.PreferenceAny)); got != c.TotalSlots {
		t.Errorf("AllowedSlots(any) len = %d, want %d", got, c.TotalSlots)
	}
}

func TestIsAllowed_MatchesSliceMembership(t *testing.T) {
	day0 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	c, _ := NewConfig(8, 22, day0)
	p := BuildPartition(c)

	morningSet := make(map[int]bool, len(p.Morning))
	for _, s := range p.Morning {
		morningSet[s] = true
	}
	for s := 0; s < c.TotalSlots; s++ {
		if got := p.IsAllowed(constants.PreferenceMorning, s); got != morningSet[s] {
			t.Errorf("IsAllowed(morning, %d) = %v, want %v", s, got, morningSet[s])
		}
	}
}
