// Package eligibility implements the Eligibility Filter (§4.3): it decides
// which tasks enter the solve and derives the slot-space fields the Model
// Builder needs for each admitted task.
package eligibility

import (
	"fmt"

	"github.com/weekplan/weekplan/internal/constants"
	"github.com/weekplan/weekplan/internal/grid"
	"github.com/weekplan/weekplan/internal/models"
)

// MinDurationMinutes returns the minimum duration a task of the given
// difficulty and priority must declare to clear the Pi >= 0.7 admissibility
// predicate (§4.3, §9): duration_minutes >= difficulty * priority * ln(10/3).
func MinDurationMinutes(difficulty, priority int) float64 {
	return float64(difficulty) * float64(priority) * constants.PiLogConstant
}

// Admissible reports whether a task's declared duration clears the Pi
// predicate for its difficulty and priority.
func Admissible(durationMin, difficulty, priority int) bool {
	return float64(durationMin) >= MinDurationMinutes(difficulty, priority)
}

// Filter partitions tasks into the eligible set the Model Builder consumes
// and a report explaining every exclusion (§4.3). Only Active tasks with a
// nil DeletedAt are considered; deleted/inactive tasks are silently skipped,
// not filtered-and-reported, since they were never candidates for this
// solve.
func Filter(tasks []models.Task, g grid.Config) ([]models.EligibleTask, []models.FilterReport) {
	eligible := make([]models.EligibleTask, 0, len(tasks))
	filtered := make([]models.FilterReport, 0)

	for _, t := range tasks {
		if !t.Active || t.DeletedAt != nil {
			continue
		}

		if t.Difficulty <= 0 || t.Priority <= 0 {
			filtered = append(filtered, models.FilterReport{
				ID:            t.ID,
				Name:          t.Name,
				Reason:        constants.FilterReasonNonPositive,
				Message:       fmt.Sprintf("difficulty and priority must be positive, got difficulty=%d priority=%d", t.Difficulty, t.Priority),
				ActualMinutes: t.DurationMin,
			})
			continue
		}

		required := MinDurationMinutes(t.Difficulty, t.Priority)
		if float64(t.DurationMin) < required {
			filtered = append(filtered, models.FilterReport{
				ID:              t.ID,
				Name:            t.Name,
				Reason:          constants.FilterReasonPi,
				Message:         fmt.Sprintf("duration_min %d below the %.1f minutes required for difficulty=%d priority=%d to clear Pi>=%.2f", t.DurationMin, required, t.Difficulty, t.Priority, constants.PiSuccessThreshold),
				RequiredMinutes: int(required + 0.999999), // ceil, since a caller can't schedule a fractional minute
				ActualMinutes:   t.DurationMin,
			})
			continue
		}

		durationSlots := durationToSlots(t.DurationMin)
		deadlineSlot := g.DateTimeToSlot(t.Deadline)

		// A task whose deadline falls before its own duration can elapse,
		// measured from the start of the horizon, can never be placed.
		if deadlineSlot < durationSlots-1 {
			filtered = append(filtered, models.FilterReport{
				ID:            t.ID,
				Name:          t.Name,
				Reason:        constants.FilterReasonDeadline,
				Message:       fmt.Sprintf("deadline falls at slot %d, before the %d slots the task needs can even elapse from the start of the horizon", deadlineSlot, durationSlots),
				ActualMinutes: t.DurationMin,
			})
			continue
		}

		eligible = append(eligible, models.EligibleTask{
			Task:          t,
			DurationSlots: durationSlots,
			DeadlineSlot:  deadlineSlot,
		})
	}

	return eligible, filtered
}

// durationToSlots rounds a duration in minutes up to the nearest whole
// number of 15-minute slots, so a task is never under-allocated time on the
// grid.
func durationToSlots(durationMin int) int {
	slots := durationMin / constants.SlotMinutes
	if durationMin%constants.SlotMinutes != 0 {
		slots++
	}
	if slots < 1 {
		slots = 1
	}
	return slots
}
