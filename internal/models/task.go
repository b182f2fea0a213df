package models

import (
	"time"

	"github.com/weekplan/weekplan/internal/constants"
)

// Task is a single unit of work the caller wants scheduled during the
// horizon (§3).
type Task struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Priority    int                  `json:"priority"`   // 1-5
	Difficulty  int                  `json:"difficulty"` // 1-5
	DurationMin int                  `json:"duration_min"`
	Deadline    time.Time            `json:"deadline"` // naive local datetime, already resolved from a days-offset or ISO string
	Preference  constants.Preference `json:"preference"`
	Active      bool                 `json:"active"`
	DeletedAt   *time.Time           `json:"deleted_at,omitempty"`
}

// Commitment is an externally blocked interval (class, meal, meeting) that
// no task may occupy (§3).
type Commitment struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label,omitempty"`
}

// EligibleTask is a Task that passed the Pi admissibility predicate and
// deadline-feasibility check (§4.3), carrying the derived fields the Model
// Builder needs. DurationSlots and DeadlineSlot are already clamped per §3's
// invariants.
type EligibleTask struct {
	Task
	DurationSlots int
	DeadlineSlot  int
}

// FilterReport explains why a well-formed task was not scheduled (§3, §4.3).
type FilterReport struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Reason          constants.FilterReason `json:"reason"`
	Message         string                 `json:"message"`
	RequiredMinutes int                    `json:"required_duration_min,omitempty"`
	ActualMinutes   int                    `json:"actual_duration_min"`
}

// ScheduleEntry is one task placed on the grid by a successful solve (§3).
type ScheduleEntry struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Priority    int                  `json:"priority"`
	Difficulty  int                  `json:"difficulty"`
	StartSlot   int                  `json:"start_slot"`
	EndSlot     int                  `json:"end_slot"` // inclusive
	StartTime   time.Time            `json:"start_time"`
	EndTime     time.Time            `json:"end_time"`
	DurationMin int                  `json:"duration_min"`
	Preference  constants.Preference `json:"preference"`
}

// SolveResult is everything the caller gets back from one solve (§3, §6).
type SolveResult struct {
	Status                 constants.Status `json:"status"`
	Schedule               []ScheduleEntry  `json:"schedule"`
	RawTotalLeisureMinutes float64          `json:"raw_total_leisure_minutes"`
	WeightedLeisureScore   float64          `json:"weighted_leisure_score"`
	WeightedStressScore    float64          `json:"weighted_stress_score"`
	ContiguousLeisurePairs int              `json:"contiguous_leisure_pairs"`
	ObjectiveValue         float64          `json:"objective_value"`
	SolveSeconds           float64          `json:"solve_time_seconds"`
	CompletionRate         float64          `json:"completion_rate"`
	Message                string           `json:"message"`
	FilteredTasks          []FilterReport   `json:"filtered_tasks_info"`
}
