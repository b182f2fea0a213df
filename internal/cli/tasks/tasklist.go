package tasks

import (
	"fmt"

	"github.com/weekplan/weekplan/internal/cli"
	"github.com/weekplan/weekplan/internal/models"
)

type TaskListCmd struct {
	All bool `help:"Include soft-deleted tasks."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var list []models.Task
	var err error
	if c.All {
		list, err = ctx.Store.GetAllTasksIncludingDeleted()
	} else {
		list, err = ctx.Store.GetAllTasks()
	}
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(list) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	for _, task := range list {
		status := "active"
		if task.DeletedAt != nil {
			status = "deleted"
		} else if !task.Active {
			status = "inactive"
		}
		fmt.Printf("%s  %-30s  p%d/d%d  %4dmin  due %s  %-9s  [%s]\n",
			task.ID, task.Name, task.Priority, task.Difficulty, task.DurationMin,
			task.Deadline.Format("2006-01-02 15:04"), task.Preference, status)
	}
	return nil
}
