package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/weekplan/weekplan/internal/constants"
	"github.com/weekplan/weekplan/internal/eligibility"
	"github.com/weekplan/weekplan/internal/grid"
	"github.com/weekplan/weekplan/internal/milp"
	"github.com/weekplan/weekplan/internal/models"
)

// Driver is the Solver Driver (§4.5): it owns one model instance for the
// lifetime of a single solve and has no state that survives across calls.
type Driver struct{}

// NewDriver returns a ready-to-use Driver. Driver carries no fields; its
// methods are pure functions of their arguments, matching §5's "no shared
// mutable state beyond the explicit grid anchor" requirement.
func NewDriver() *Driver {
	return &Driver{}
}

// Solve runs one end-to-end solve: Eligibility Filter, Model Builder, MILP
// solve under a wall-clock time limit, and reconstruction into a
// SolveResult (§4.3-§4.5).
func (d *Driver) Solve(ctx context.Context, tasks []models.Task, commitments []models.Commitment, settings models.Settings) (models.SolveResult, error) {
	models.ApplyDefaultSettings(&settings)

	g, err := grid.NewConfig(settings.StartHour, settings.EndHour, dayZeroMidnight(settings))
	if err != nil {
		return models.SolveResult{Status: constants.StatusConfigurationError, Message: err.Error()}, nil
	}
	part := grid.BuildPartition(g)

	eligible, filteredReports := eligibility.Filter(tasks, g)

	if len(tasks) > 0 && len(eligible) == 0 {
		return models.SolveResult{
			Status:        constants.StatusNoSchedulableTasks,
			Message:       "no input task cleared the eligibility filter",
			FilteredTasks: filteredReports,
		}, nil
	}

	bm, err := buildModel(eligible, commitments, settings, g, part)
	if err != nil {
		return models.SolveResult{Status: constants.StatusConfigurationError, Message: err.Error()}, nil
	}

	timeLimit := time.Duration(settings.TimeLimitSeconds) * time.Second
	started := time.Now()
	solution, err := milp.Solve(ctx, bm.model, timeLimit)
	solveSeconds := time.Since(started).Seconds()
	if err != nil {
		return models.SolveResult{Status: constants.StatusError, Message: err.Error(), FilteredTasks: filteredReports}, nil
	}

	switch solution.Status {
	case milp.StatusInfeasible:
		return models.SolveResult{
			Status:        constants.StatusInfeasible,
			Message:       infeasibilityMessage(bm, settings),
			SolveSeconds:  solveSeconds,
			FilteredTasks: filteredReports,
		}, nil
	case milp.StatusUnbounded:
		return models.SolveResult{
			Status:        constants.StatusInfeasibleOrUnbounded,
			Message:       "solver reported an unbounded relaxation, which should not occur for this model",
			SolveSeconds:  solveSeconds,
			FilteredTasks: filteredReports,
		}, nil
	}

	result := reconstructResult(bm, solution, g, settings, len(tasks))
	result.SolveSeconds = solveSeconds
	result.FilteredTasks = filteredReports
	if solution.Status == milp.StatusTimeLimitReached {
		result.Status = constants.StatusTimeLimitReached
	}
	return result, nil
}

// dayZeroMidnight resolves the explicit grid anchor (§5, §9 design note):
// the caller's settings carry no anchor field today, so this derives one
// from the current local midnight rather than a process-wide singleton.
// Callers that need a fixed anchor (tests, reproducible solves) should
// build the grid.Config directly instead of going through Driver.Solve.
func dayZeroMidnight(settings models.Settings) time.Time {
	loc := time.Local
	if settings.Timezone != "" && settings.Timezone != constants.DefaultTimezone {
		if l, err := time.LoadLocation(settings.Timezone); err == nil {
			loc = l
		}
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

// reconstructResult implements §4.5 steps 3-6: scans each task's X row for
// its start slot, rebuilds ScheduleEntry records, sorts them, and computes
// the reported metrics from the solution vector.
func reconstructResult(bm *builtModel, solution milp.Solution, g grid.Config, settings models.Settings, inputTaskCount int) models.SolveResult {
	entries := make([]models.ScheduleEntry, 0, len(bm.tasks))
	var correctnessWarning string

	for i, task := range bm.tasks {
		startSlot := -1
		for _, s := range bm.feasibleStarts[i] {
			if solution.Values[bm.xIndex[[2]int{i, s}]] > 0.5 {
				startSlot = s
				break
			}
		}
		if startSlot == -1 {
			correctnessWarning = "a mandatory task had no start slot in the solution despite a found status; this should not happen"
			continue
		}

		endSlot := startSlot + task.DurationSlots - 1
		startTime, _ := g.SlotToDateTime(startSlot)
		endTime := startTime.Add(time.Duration(task.DurationSlots) * time.Duration(constants.SlotMinutes) * time.Minute)

		dayEndBoundary := time.Date(startTime.Year(), startTime.Month(), startTime.Day(), settings.EndHour, 0, 0, 0, startTime.Location())
		if endTime.After(dayEndBoundary) && startTime.Before(dayEndBoundary) {
			endTime = dayEndBoundary
			if correctnessWarning == "" {
				correctnessWarning = fmt.Sprintf("entry %s's computed end time crossed the daily window boundary and was clamped for reporting; its slot indices remain authoritative", task.ID)
			}
		}

		entries = append(entries, models.ScheduleEntry{
			ID:          task.ID,
			Name:        task.Name,
			Priority:    task.Priority,
			Difficulty:  task.Difficulty,
			StartSlot:   startSlot,
			EndSlot:     endSlot,
			StartTime:   startTime,
			EndTime:     endTime,
			DurationMin: task.DurationMin,
			Preference:  task.Preference,
		})
	}

	sort.Slice(entries, func(a, b int) bool { return entries[a].StartSlot < entries[b].StartSlot })

	rawLeisure := 0.0
	weightedLeisure := 0.0
	for s := 0; s < g.TotalSlots; s++ {
		l := solution.Values[bm.lIndex[s]]
		rawLeisure += l
		weightedLeisure += settings.Alpha * leisureWeight(settings, g, s) * l
	}

	deadlineProximity := usesDeadlineProximity(bm.variant)
	weightedStress := 0.0
	for i, task := range bm.tasks {
		for _, s := range bm.feasibleStarts[i] {
			if solution.Values[bm.xIndex[[2]int{i, s}]] <= 0.5 {
				continue
			}
			wS := stressMultiplier(settings, g, s)
			penalty := 1.0
			if deadlineProximity {
				penalty = 1 + settings.Gamma*late(s, task.DeadlineSlot, task.DurationSlots)
			}
			weightedStress += float64(task.Priority) * float64(task.Difficulty) * wS * penalty
		}
	}

	contiguousPairs := 0
	if usesContiguity(bm.variant) {
		for s := 0; s < g.TotalSlots-1; s++ {
			if solution.Values[bm.zIndex[s]] > 0.5 {
				contiguousPairs++
			}
		}
	}

	message := "solve completed"
	if correctnessWarning != "" {
		message = correctnessWarning
	}

	completionRate := 0.0
	if inputTaskCount > 0 {
		completionRate = float64(len(entries)) / float64(inputTaskCount)
	}

	return models.SolveResult{
		Status:                 constants.StatusOptimal,
		Schedule:               entries,
		RawTotalLeisureMinutes: rawLeisure,
		WeightedLeisureScore:   weightedLeisure,
		WeightedStressScore:    weightedStress,
		ContiguousLeisurePairs: contiguousPairs,
		ObjectiveValue:         solution.Objective,
		CompletionRate:         completionRate,
		Message:                message,
	}
}

// infeasibilityMessage names likely causes per §7's error handling design.
func infeasibilityMessage(bm *builtModel, settings models.Settings) string {
	msg := "no feasible schedule: check for tight deadlines, conflicting commitments"
	if settings.HardTaskThreshold > 0 {
		msg += ", the hard-task daily cap"
	}
	if settings.DailyLimitSlots != nil {
		msg += ", the daily slot limit"
	}
	return msg + "."
}
