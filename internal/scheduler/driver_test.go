package scheduler

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/weekplan/weekplan/internal/constants"
	"github.com/weekplan/weekplan/internal/grid"
	"github.com/weekplan/weekplan/internal/models"
)

func defaultSettings() models.Settings {
	s := models.Settings{}
	models.ApplyDefaultSettings(&s)
	return s
}

// day0 returns the same anchor Driver.Solve will compute internally for
// these settings, so a test's task/commitment times line up with the grid
// the driver actually builds.
func day0(t *testing.T, settings models.Settings) time.Time {
	t.Helper()
	return dayZeroMidnight(settings)
}

func TestDriver_S1_TrivialEmpty(t *testing.T) {
	d := NewDriver()
	settings := defaultSettings()
	g, _ := grid.NewConfig(8, 22, day0(t, settings))

	result, err := d.Solve(context.Background(), nil, nil, settings)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if result.Status != constants.StatusOptimal {
		t.Fatalf("status = %v, want Optimal", result.Status)
	}
	if len(result.Schedule) != 0 {
		t.Fatalf("expected empty schedule, got %d entries", len(result.Schedule))
	}
	wantLeisure := float64(g.TotalSlots) * 15
	if result.RawTotalLeisureMinutes != wantLeisure {
		t.Errorf("RawTotalLeisureMinutes = %v, want %v", result.RawTotalLeisureMinutes, wantLeisure)
	}
}

func TestDriver_S2_SingleMorningTask(t *testing.T) {
	d := NewDriver()
	settings := defaultSettings()
	g, _ := grid.NewConfig(settings.StartHour, settings.EndHour, day0(t, settings))

	task := models.Task{
		ID: "A", Name: "morning task", Priority: 2, Difficulty: 2,
		DurationMin: 60,
		Deadline:    g.Day0Midnight.Add(time.Duration(settings.EndHour) * time.Hour),
		Preference:  constants.PreferenceMorning,
		Active:      true,
	}

	result, err := d.Solve(context.Background(), []models.Task{task}, nil, settings)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if result.Status != constants.StatusOptimal {
		t.Fatalf("status = %v, want Optimal (message: %s)", result.Status, result.Message)
	}
	if len(result.Schedule) != 1 {
		t.Fatalf("expected 1 scheduled entry, got %d", len(result.Schedule))
	}
	entry := result.Schedule[0]
	if entry.StartSlot < 0 || entry.StartSlot > 13 {
		t.Errorf("StartSlot = %d, want within [0,13] (morning slots that fit 4 slots by noon)", entry.StartSlot)
	}
	if entry.EndSlot != entry.StartSlot+3 {
		t.Errorf("EndSlot = %d, want %d", entry.EndSlot, entry.StartSlot+3)
	}
	if result.CompletionRate != 1.0 {
		t.Errorf("CompletionRate = %v, want 1.0", result.CompletionRate)
	}
}

func TestDriver_S5_CommitmentBlocksTask(t *testing.T) {
	d := NewDriver()
	settings := defaultSettings()
	g, _ := grid.NewConfig(settings.StartHour, settings.EndHour, day0(t, settings))

	task := models.Task{
		ID: "D", Name: "any-pref task", Priority: 1, Difficulty: 1,
		DurationMin: 60,
		Deadline:    g.Day0Midnight.Add(time.Duration(settings.EndHour) * time.Hour),
		Preference:  constants.PreferenceAny,
		Active:      true,
	}
	commitment := models.Commitment{
		ID:    "class",
		Start: g.Day0Midnight.Add(9 * time.Hour),
		End:   g.Day0Midnight.Add(11 * time.Hour),
	}

	result, err := d.Solve(context.Background(), []models.Task{task}, []models.Commitment{commitment}, settings)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if result.Status != constants.StatusOptimal {
		t.Fatalf("status = %v, want Optimal", result.Status)
	}
	if len(result.Schedule) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Schedule))
	}
	entry := result.Schedule[0]
	blockedStart := g.DateTimeToSlot(commitment.Start)
	blockedEnd := g.DateTimeToSlot(commitment.End.Add(-time.Nanosecond))
	for s := entry.StartSlot; s <= entry.EndSlot; s++ {
		if s >= blockedStart && s <= blockedEnd {
			t.Errorf("task occupies blocked slot %d (blocked range [%d,%d])", s, blockedStart, blockedEnd)
		}
	}
}

func TestDriver_S6_HardTaskCapSpreadsAcrossDays(t *testing.T) {
	d := NewDriver()
	settings := defaultSettings()
	settings.HardTaskThreshold = 4
	g, _ := grid.NewConfig(settings.StartHour, settings.EndHour, day0(t, settings))

	deadline := g.Day0Midnight.AddDate(0, 0, 2).Add(time.Duration(settings.EndHour) * time.Hour)
	tasks := []models.Task{
		{ID: "hard1", Name: "hard 1", Priority: 3, Difficulty: 5, DurationMin: 60, Deadline: deadline, Preference: constants.PreferenceAny, Active: true},
		{ID: "hard2", Name: "hard 2", Priority: 3, Difficulty: 5, DurationMin: 60, Deadline: deadline, Preference: constants.PreferenceAny, Active: true},
	}

	result, err := d.Solve(context.Background(), tasks, nil, settings)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if result.Status != constants.StatusOptimal {
		t.Fatalf("status = %v, want Optimal (message: %s)", result.Status, result.Message)
	}
	if len(result.Schedule) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Schedule))
	}
	day1 := g.Day(result.Schedule[0].StartSlot)
	day2 := g.Day(result.Schedule[1].StartSlot)
	if day1 == day2 {
		t.Errorf("both hard tasks started on day %d, want different days", day1)
	}
}

// TestDriver_Invariants runs a mixed workload and checks the quantified
// invariants of §8 generically, rather than one scenario per property.
func TestDriver_Invariants(t *testing.T) {
	d := NewDriver()
	settings := defaultSettings()
	g, _ := grid.NewConfig(settings.StartHour, settings.EndHour, day0(t, settings))

	tasks := []models.Task{
		{ID: "t1", Name: "reading", Priority: 2, Difficulty: 2, DurationMin: 45, Deadline: g.Day0Midnight.AddDate(0, 0, 1), Preference: constants.PreferenceAny, Active: true},
		{ID: "t2", Name: "workout", Priority: 3, Difficulty: 2, DurationMin: 30, Deadline: g.Day0Midnight.AddDate(0, 0, 2), Preference: constants.PreferenceEvening, Active: true},
		{ID: "t3", Name: "project", Priority: 4, Difficulty: 3, DurationMin: 90, Deadline: g.Day0Midnight.AddDate(0, 0, 3), Preference: constants.PreferenceAfternoon, Active: true},
	}
	commitments := []models.Commitment{
		{ID: "meeting", Start: g.Day0Midnight.Add(10 * time.Hour), End: g.Day0Midnight.Add(11 * time.Hour)},
	}

	result, err := d.Solve(context.Background(), tasks, commitments, settings)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if result.Status != constants.StatusOptimal {
		t.Fatalf("status = %v, want Optimal (message: %s)", result.Status, result.Message)
	}

	blockedStart := g.DateTimeToSlot(commitments[0].Start)
	blockedEnd := g.DateTimeToSlot(commitments[0].End.Add(-time.Nanosecond))

	byID := map[string]models.Task{}
	for _, tk := range tasks {
		byID[tk.ID] = tk
	}

	for a := 0; a < len(result.Schedule); a++ {
		entry := result.Schedule[a]
		task := byID[entry.ID]
		wantDurationSlots := (task.DurationMin + 14) / 15
		if entry.EndSlot != entry.StartSlot+wantDurationSlots-1 {
			t.Errorf("entry %s: EndSlot = %d, want %d", entry.ID, entry.EndSlot, entry.StartSlot+wantDurationSlots-1)
		}
		if entry.StartSlot < 0 || entry.EndSlot >= g.TotalSlots {
			t.Errorf("entry %s: slot range [%d,%d] out of [0,%d)", entry.ID, entry.StartSlot, entry.EndSlot, g.TotalSlots)
		}
		for s := entry.StartSlot; s <= entry.EndSlot; s++ {
			if s >= blockedStart && s <= blockedEnd {
				t.Errorf("entry %s occupies blocked slot %d", entry.ID, s)
			}
		}
		deadlineSlot := g.DateTimeToSlot(task.Deadline)
		if entry.EndSlot > deadlineSlot {
			t.Errorf("entry %s: EndSlot %d exceeds deadline slot %d", entry.ID, entry.EndSlot, deadlineSlot)
		}
		if task.Preference != constants.PreferenceAny {
			part := grid.BuildPartition(g)
			if !part.IsAllowed(task.Preference, entry.StartSlot) {
				t.Errorf("entry %s: start slot %d not in allowed region for preference %s", entry.ID, entry.StartSlot, task.Preference)
			}
		}

		for b := a + 1; b < len(result.Schedule); b++ {
			other := result.Schedule[b]
			if entry.StartSlot <= other.EndSlot && other.StartSlot <= entry.EndSlot {
				t.Errorf("entries %s and %s overlap: [%d,%d] vs [%d,%d]", entry.ID, other.ID, entry.StartSlot, entry.EndSlot, other.StartSlot, other.EndSlot)
			}
		}
	}

	if result.CompletionRate != float64(len(result.Schedule))/float64(len(tasks)) {
		t.Errorf("CompletionRate = %v, want %v", result.CompletionRate, float64(len(result.Schedule))/float64(len(tasks)))
	}

	occupied := map[int]bool{}
	for _, e := range result.Schedule {
		for s := e.StartSlot; s <= e.EndSlot; s++ {
			occupied[s] = true
		}
	}
	freeCount := 0
	for s := 0; s < g.TotalSlots; s++ {
		if !occupied[s] && !(s >= blockedStart && s <= blockedEnd) {
			freeCount++
		}
	}
	wantRawLeisure := float64(freeCount) * 15
	if math.Abs(result.RawTotalLeisureMinutes-wantRawLeisure) > 1e-6 {
		t.Errorf("RawTotalLeisureMinutes = %v, want %v", result.RawTotalLeisureMinutes, wantRawLeisure)
	}
}

func TestDriver_ConfigurationError(t *testing.T) {
	d := NewDriver()
	settings := defaultSettings()
	settings.StartHour = 20
	settings.EndHour = 10 // invalid: start >= end

	result, err := d.Solve(context.Background(), nil, nil, settings)
	if err != nil {
		t.Fatalf("Solve returned error instead of ConfigurationError status: %v", err)
	}
	if result.Status != constants.StatusConfigurationError {
		t.Errorf("status = %v, want ConfigurationError", result.Status)
	}
}

func TestDriver_NoSchedulableTasks(t *testing.T) {
	d := NewDriver()
	settings := defaultSettings()
	g, _ := grid.NewConfig(settings.StartHour, settings.EndHour, day0(t, settings))

	task := models.Task{
		ID: "tiny", Name: "too short for its weight", Priority: 5, Difficulty: 5,
		DurationMin: 15, Deadline: g.Day0Midnight.AddDate(0, 0, 1), Active: true,
	}
	result, err := d.Solve(context.Background(), []models.Task{task}, nil, settings)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if result.Status != constants.StatusNoSchedulableTasks {
		t.Fatalf("status = %v, want NoSchedulableTasks", result.Status)
	}
	if len(result.FilteredTasks) != 1 {
		t.Errorf("expected 1 filtered task report, got %d", len(result.FilteredTasks))
	}
}

func TestDriver_Infeasible_ConflictingDeadlinesAndCap(t *testing.T) {
	d := NewDriver()
	settings := defaultSettings()
	settings.DailyLimitSlots = intPtr(2) // 30 minutes/day cap
	g, _ := grid.NewConfig(settings.StartHour, settings.EndHour, day0(t, settings))

	deadline := g.Day0Midnight.Add(time.Duration(settings.EndHour) * time.Hour) // must all land on day 0
	tasks := []models.Task{
		{ID: "a", Priority: 1, Difficulty: 1, DurationMin: 60, Deadline: deadline, Preference: constants.PreferenceAny, Active: true},
		{ID: "b", Priority: 1, Difficulty: 1, DurationMin: 60, Deadline: deadline, Preference: constants.PreferenceAny, Active: true},
	}
	result, err := d.Solve(context.Background(), tasks, nil, settings)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if result.Status != constants.StatusInfeasible {
		t.Fatalf("status = %v, want Infeasible (message: %s)", result.Status, result.Message)
	}
	if len(result.Schedule) != 0 {
		t.Errorf("expected empty schedule on infeasibility, got %d entries", len(result.Schedule))
	}
}

func TestDriver_DailyLimitRespected(t *testing.T) {
	d := NewDriver()
	settings := defaultSettings()
	settings.DailyLimitSlots = intPtr(8) // 120 minutes/day cap
	g, _ := grid.NewConfig(settings.StartHour, settings.EndHour, day0(t, settings))

	deadline := g.Day0Midnight.AddDate(0, 0, 3).Add(time.Duration(settings.EndHour) * time.Hour)
	tasks := []models.Task{
		{ID: "a", Priority: 1, Difficulty: 1, DurationMin: 60, Deadline: deadline, Preference: constants.PreferenceAny, Active: true},
		{ID: "b", Priority: 1, Difficulty: 1, DurationMin: 60, Deadline: deadline, Preference: constants.PreferenceAny, Active: true},
		{ID: "c", Priority: 1, Difficulty: 1, DurationMin: 60, Deadline: deadline, Preference: constants.PreferenceAny, Active: true},
	}
	result, err := d.Solve(context.Background(), tasks, nil, settings)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if result.Status != constants.StatusOptimal {
		t.Fatalf("status = %v, want Optimal (message: %s)", result.Status, result.Message)
	}

	perDay := map[int]int{}
	for _, e := range result.Schedule {
		for s := e.StartSlot; s <= e.EndSlot; s++ {
			perDay[g.Day(s)]++
		}
	}
	for day, count := range perDay {
		if count > 8 {
			t.Errorf("day %d has %d occupied slots, want <= 8", day, count)
		}
	}
}

func intPtr(v int) *int { return &v }
