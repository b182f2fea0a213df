package eligibility

import (
	"testing"
	"time"

	"github.com/weekplan/weekplan/internal/constants"
	"github.com/weekplan/weekplan/internal/grid"
	"github.com/weekplan/weekplan/internal/models"
)

func testGrid(t *testing.T) grid.Config {
	t.Helper()
	day0 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	c, err := grid.NewConfig(8, 22, day0)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	return c
}

// TestAdmissible_PiThreshold mirrors spec.md S3: priority 5, difficulty 5,
// duration 15 -> required minutes ceil(25*ln(10/3)) = 31.
func TestAdmissible_PiThreshold(t *testing.T) {
	required := MinDurationMinutes(5, 5)
	wantRequired := 25 * constants.PiLogConstant
	if required != wantRequired {
		t.Errorf("MinDurationMinutes(5,5) = %v, want %v", required, wantRequired)
	}
	if Admissible(15, 5, 5) {
		t.Error("duration 15 should fail the Pi predicate for difficulty=5 priority=5")
	}
	if !Admissible(31, 5, 5) {
		t.Error("duration 31 should clear the Pi predicate for difficulty=5 priority=5")
	}
}

func TestFilter_PiFilteredTask(t *testing.T) {
	g := testGrid(t)
	task := models.Task{
		ID:          "B",
		Name:        "short task",
		Priority:    5,
		Difficulty:  5,
		DurationMin: 15,
		Deadline:    g.Day0Midnight.AddDate(0, 0, 1),
		Preference:  constants.PreferenceAny,
		Active:      true,
	}
	eligible, filtered := Filter([]models.Task{task}, g)
	if len(eligible) != 0 {
		t.Fatalf("expected no eligible tasks, got %d", len(eligible))
	}
	if len(filtered) != 1 {
		t.Fatalf("expected 1 filtered task, got %d", len(filtered))
	}
	fr := filtered[0]
	if fr.Reason != constants.FilterReasonPi {
		t.Errorf("Reason = %v, want %v", fr.Reason, constants.FilterReasonPi)
	}
	if fr.RequiredMinutes != 31 {
		t.Errorf("RequiredMinutes = %d, want 31", fr.RequiredMinutes)
	}
	if fr.ActualMinutes != 15 {
		t.Errorf("ActualMinutes = %d, want 15", fr.ActualMinutes)
	}
}

func TestFilter_NonPositiveFields(t *testing.T) {
	g := testGrid(t)
	task := models.Task{
		ID: "z", Name: "zero difficulty", Priority: 1, Difficulty: 0,
		DurationMin: 60, Deadline: g.Day0Midnight.AddDate(0, 0, 1), Active: true,
	}
	_, filtered := Filter([]models.Task{task}, g)
	if len(filtered) != 1 || filtered[0].Reason != constants.FilterReasonNonPositive {
		t.Fatalf("expected non-positive filter reason, got %+v", filtered)
	}
}

func TestFilter_DeadlineTooEarly(t *testing.T) {
	g := testGrid(t)
	// 120 minutes = 8 slots, but deadline resolves to slot 3.
	task := models.Task{
		ID: "C", Name: "impossible deadline", Priority: 1, Difficulty: 1,
		DurationMin: 120,
		Deadline:    g.Day0Midnight.Add(8*time.Hour + 45*time.Minute),
		Preference:  constants.PreferenceAny,
		Active:      true,
	}
	eligible, filtered := Filter([]models.Task{task}, g)
	if len(eligible) != 0 {
		t.Fatalf("expected no eligible tasks, got %d", len(eligible))
	}
	if len(filtered) != 1 || filtered[0].Reason != constants.FilterReasonDeadline {
		t.Fatalf("expected deadline_too_early filter reason, got %+v", filtered)
	}
}

func TestFilter_AdmitsWellFormedTask(t *testing.T) {
	g := testGrid(t)
	task := models.Task{
		ID: "A", Name: "normal task", Priority: 2, Difficulty: 2,
		DurationMin: 60,
		Deadline:    g.Day0Midnight.Add(12 * time.Hour),
		Preference:  constants.PreferenceMorning,
		Active:      true,
	}
	eligible, filtered := Filter([]models.Task{task}, g)
	if len(filtered) != 0 {
		t.Fatalf("expected no filtered tasks, got %+v", filtered)
	}
	if len(eligible) != 1 {
		t.Fatalf("expected 1 eligible task, got %d", len(eligible))
	}
	et := eligible[0]
	if et.DurationSlots != 4 {
		t.Errorf("DurationSlots = %d, want 4", et.DurationSlots)
	}
}

func TestFilter_SkipsInactiveAndDeleted(t *testing.T) {
	g := testGrid(t)
	deletedAt := g.Day0Midnight
	tasks := []models.Task{
		{ID: "inactive", Priority: 1, Difficulty: 1, DurationMin: 60, Deadline: g.Day0Midnight.AddDate(0, 0, 1), Active: false},
		{ID: "deleted", Priority: 1, Difficulty: 1, DurationMin: 60, Deadline: g.Day0Midnight.AddDate(0, 0, 1), Active: true, DeletedAt: &deletedAt},
	}
	eligible, filtered := Filter(tasks, g)
	if len(eligible) != 0 || len(filtered) != 0 {
		t.Fatalf("inactive/deleted tasks should be skipped silently, got eligible=%d filtered=%d", len(eligible), len(filtered))
	}
}

func TestDurationToSlots_RoundsUp(t *testing.T) {
	tests := []struct {
		minutes int
		want    int
	}{
		{15, 1},
		{16, 2},
		{30, 2},
		{1, 1},
	}
	for _, tt := range tests {
		if got := durationToSlots(tt.minutes); got != tt.want {
			t.Errorf("durationToSlots(%d) = %d, want %d", tt.minutes, got, tt.want)
		}
	}
}
