// Package validation performs structural checks on tasks, commitments, and
// settings before they reach the Eligibility Filter or Model Builder. It
// catches malformed input (§7's "per-task validation error"); deciding
// whether a well-formed task clears the Pi predicate is eligibility's job,
// not validation's.
package validation

import (
	"fmt"
	"sort"

	"github.com/weekplan/weekplan/internal/constants"
	"github.com/weekplan/weekplan/internal/models"
)

// ConflictType names the kind of structural problem found.
type ConflictType string

const (
	ConflictMissingField      ConflictType = "missing_field"
	ConflictOutOfRange        ConflictType = "out_of_range"
	ConflictInvalidDeadline   ConflictType = "invalid_deadline"
	ConflictDuplicateTaskID   ConflictType = "duplicate_task_id"
	ConflictInvertedInterval  ConflictType = "inverted_interval"
	ConflictInvalidPreference ConflictType = "invalid_preference"
	ConflictInvalidSettings   ConflictType = "invalid_settings"
)

// Conflict is one detected problem.
type Conflict struct {
	Type        ConflictType
	Description string
	ItemID      string
}

// ValidationResult collects every conflict found by one call.
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts reports whether any conflict was found.
func (vr ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport renders the conflicts as a human-readable list.
func (vr ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}
	report := "Conflicts detected:\n"
	for _, c := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", c.Description)
	}
	return report
}

// Validator validates request payloads before they reach the scheduler.
type Validator struct{}

// New returns a ready-to-use Validator.
func New() *Validator {
	return &Validator{}
}

// ValidateTasks checks structural well-formedness of a task list: required
// fields, numeric ranges, duplicate IDs, and recognized preference values.
// A task that is well-formed but fails the Pi predicate is not a conflict
// here (§7); that distinction belongs to the Eligibility Filter.
func (v *Validator) ValidateTasks(tasks []models.Task) ValidationResult {
	result := ValidationResult{}

	seenIDs := make(map[string]bool)
	for _, t := range tasks {
		if t.ID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingField,
				Description: fmt.Sprintf("task %q is missing an id", t.Name),
			})
			continue
		}
		if seenIDs[t.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTaskID,
				Description: fmt.Sprintf("duplicate task id %q", t.ID),
				ItemID:      t.ID,
			})
		}
		seenIDs[t.ID] = true

		if t.Name == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingField,
				Description: fmt.Sprintf("task %q is missing a name", t.ID),
				ItemID:      t.ID,
			})
		}
		if t.Priority < 1 || t.Priority > 5 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOutOfRange,
				Description: fmt.Sprintf("task %q priority %d is outside [1,5]", t.ID, t.Priority),
				ItemID:      t.ID,
			})
		}
		if t.Difficulty < 1 || t.Difficulty > 5 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOutOfRange,
				Description: fmt.Sprintf("task %q difficulty %d is outside [1,5]", t.ID, t.Difficulty),
				ItemID:      t.ID,
			})
		}
		if t.DurationMin <= 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOutOfRange,
				Description: fmt.Sprintf("task %q duration_min %d must be > 0", t.ID, t.DurationMin),
				ItemID:      t.ID,
			})
		}
		if t.Deadline.IsZero() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDeadline,
				Description: fmt.Sprintf("task %q has no deadline", t.ID),
				ItemID:      t.ID,
			})
		}
		if !validPreference(t.Preference) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidPreference,
				Description: fmt.Sprintf("task %q has unrecognized preference %q, degrades to any", t.ID, t.Preference),
				ItemID:      t.ID,
			})
		}
	}

	sort.Slice(result.Conflicts, func(i, j int) bool { return result.Conflicts[i].ItemID < result.Conflicts[j].ItemID })
	return result
}

// ValidateCommitments checks that every commitment has a positive-length
// interval. Malformed intervals are reported but, per §7, the caller should
// drop them and proceed rather than aborting the run.
func (v *Validator) ValidateCommitments(commitments []models.Commitment) ValidationResult {
	result := ValidationResult{}
	for _, c := range commitments {
		if !c.End.After(c.Start) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvertedInterval,
				Description: fmt.Sprintf("commitment %q end %s is not after start %s", c.ID, c.End, c.Start),
				ItemID:      c.ID,
			})
		}
	}
	return result
}

// ValidateSettings checks the grid and objective parameters a solve will
// run with (§4.1, §4.4, §7).
func (v *Validator) ValidateSettings(settings models.Settings) ValidationResult {
	result := ValidationResult{}

	if settings.StartHour < 0 || settings.StartHour > 23 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidSettings,
			Description: fmt.Sprintf("start_hour %d is outside [0,23]", settings.StartHour),
		})
	}
	if settings.EndHour < 1 || settings.EndHour > 24 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidSettings,
			Description: fmt.Sprintf("end_hour %d is outside [1,24]", settings.EndHour),
		})
	}
	if settings.StartHour >= settings.EndHour {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidSettings,
			Description: fmt.Sprintf("start_hour %d must be before end_hour %d", settings.StartHour, settings.EndHour),
		})
	}
	if settings.DailyLimitSlots != nil && *settings.DailyLimitSlots < 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidSettings,
			Description: fmt.Sprintf("daily_limit_slots %d must be >= 0", *settings.DailyLimitSlots),
		})
	}
	if settings.TimeLimitSeconds <= 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidSettings,
			Description: fmt.Sprintf("time_limit_seconds %d must be > 0", settings.TimeLimitSeconds),
		})
	}

	return result
}

func validPreference(p constants.Preference) bool {
	switch p {
	case constants.PreferenceAny, constants.PreferenceMorning, constants.PreferenceAfternoon, constants.PreferenceEvening, "":
		return true
	default:
		return false
	}
}
