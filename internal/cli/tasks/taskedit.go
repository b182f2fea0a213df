package tasks

import (
	"fmt"

	"github.com/weekplan/weekplan/internal/cli"
	"github.com/weekplan/weekplan/internal/constants"
)

type TaskEditCmd struct {
	ID         string  `arg:"" help:"Task ID."`
	Name       *string `help:"New task name."`
	Duration   *int    `short:"d" help:"New duration in minutes."`
	Deadline   *string `short:"D" help:"New deadline: a non-negative day offset, RFC3339, or \"YYYY-MM-DD HH:MM\"."`
	Priority   *int    `short:"p" help:"New priority (1-5)."`
	Difficulty *int    `short:"f" help:"New difficulty (1-5)."`
	Preference *string `short:"r" help:"New preferred part of day (any|morning|afternoon|evening)."`
	Active     *bool   `help:"Set active status."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task: %w", err)
	}

	if c.Name != nil {
		task.Name = *c.Name
	}
	if c.Duration != nil {
		if *c.Duration <= 0 {
			return fmt.Errorf("duration must be positive")
		}
		task.DurationMin = *c.Duration
	}
	if c.Deadline != nil {
		endHour := constants.DefaultEndHour
		if settings, err := ctx.Store.GetSettings(); err == nil && settings.EndHour != 0 {
			endHour = settings.EndHour
		}
		deadline, err := parseDeadline(*c.Deadline, endHour)
		if err != nil {
			return err
		}
		task.Deadline = deadline
	}
	if c.Priority != nil {
		if *c.Priority < 1 || *c.Priority > 5 {
			return fmt.Errorf("priority must be between 1 and 5")
		}
		task.Priority = *c.Priority
	}
	if c.Difficulty != nil {
		if *c.Difficulty < 1 || *c.Difficulty > 5 {
			return fmt.Errorf("difficulty must be between 1 and 5")
		}
		task.Difficulty = *c.Difficulty
	}
	if c.Preference != nil {
		pref := constants.Preference(*c.Preference)
		switch pref {
		case constants.PreferenceAny, constants.PreferenceMorning, constants.PreferenceAfternoon, constants.PreferenceEvening:
		default:
			return fmt.Errorf("preference must be one of any, morning, afternoon, evening")
		}
		task.Preference = pref
	}
	if c.Active != nil {
		task.Active = *c.Active
	}

	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	fmt.Printf("Task updated: %s\n", task.Name)
	return nil
}
