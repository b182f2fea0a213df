package tasks

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/weekplan/weekplan/internal/cli"
	"github.com/weekplan/weekplan/internal/constants"
	"github.com/weekplan/weekplan/internal/models"
)

type TaskAddCmd struct {
	Name       string `arg:"" help:"Task name."`
	Duration   int    `short:"d" help:"Duration in minutes." required:""`
	Deadline   string `short:"D" help:"Deadline: a non-negative day offset, RFC3339, YYYY-MM-DDTHH:MM:SS, or YYYY-MM-DD HH:MM." required:""`
	Priority   int    `short:"p" help:"Priority (1-5, higher is more important)." default:"3"`
	Difficulty int    `short:"f" help:"Difficulty (1-5, higher is harder)." default:"3"`
	Preference string `short:"r" help:"Preferred part of day (any|morning|afternoon|evening)." default:"any"`
}

func (c *TaskAddCmd) Validate() error {
	if c.Priority < 1 || c.Priority > 5 {
		return fmt.Errorf("priority must be between 1 and 5")
	}
	if c.Difficulty < 1 || c.Difficulty > 5 {
		return fmt.Errorf("difficulty must be between 1 and 5")
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be greater than zero")
	}
	if _, err := parseDeadline(c.Deadline, constants.DefaultEndHour); err != nil {
		return err
	}
	switch constants.Preference(c.Preference) {
	case constants.PreferenceAny, constants.PreferenceMorning, constants.PreferenceAfternoon, constants.PreferenceEvening:
	default:
		return fmt.Errorf("preference must be one of any, morning, afternoon, evening")
	}
	return nil
}

// parseDeadline accepts the same deadline forms §6 allows in the request
// payload: a non-negative integer days-offset from today, interpreted as
// end-of-day at endHour; or an ISO-8601 local datetime string. A string
// ending in "Z" or carrying an explicit offset is converted to the local
// zone and stripped of zone info, per §6; a naive string is treated as
// already-local.
func parseDeadline(s string, endHour int) (time.Time, error) {
	if days, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		if days < 0 {
			return time.Time{}, fmt.Errorf("deadline day offset must be non-negative, got %d", days)
		}
		now := time.Now().In(time.Local)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		return today.AddDate(0, 0, days).Add(time.Duration(endHour) * time.Hour), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(time.Local), nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid deadline %q (expected a non-negative day offset, RFC3339, \"YYYY-MM-DDTHH:MM:SS\", or \"YYYY-MM-DD HH:MM\")", s)
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	endHour := constants.DefaultEndHour
	if settings, err := ctx.Store.GetSettings(); err == nil && settings.EndHour != 0 {
		endHour = settings.EndHour
	}

	deadline, err := parseDeadline(c.Deadline, endHour)
	if err != nil {
		return err
	}

	task := models.Task{
		ID:          uuid.New().String(),
		Name:        c.Name,
		Priority:    c.Priority,
		Difficulty:  c.Difficulty,
		DurationMin: c.Duration,
		Deadline:    deadline,
		Preference:  constants.Preference(c.Preference),
		Active:      true,
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", c.Name, task.ID)
	return nil
}
